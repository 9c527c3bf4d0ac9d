// Package boxing tracks physical bottles through the competition warehouse:
// arrival, per-bottle scans and the packed-box transition.
package boxing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/events"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

// Querier is the subset of generated queries the boxing service depends on.
type Querier interface {
	GetSauceByID(ctx context.Context, id pgtype.UUID) (dbgen.Sauce, error)
	UpdateSauceStatus(ctx context.Context, arg dbgen.UpdateSauceStatusParams) (dbgen.Sauce, error)
	CountBottleScans(ctx context.Context, sauceID pgtype.UUID) (int64, error)
	InsertBottleScan(ctx context.Context, arg dbgen.InsertBottleScanParams) (dbgen.BottleScan, error)
	CountScoresBySauce(ctx context.Context, sauceID pgtype.UUID) (int64, error)
	CreateBoxAssignment(ctx context.Context, arg dbgen.CreateBoxAssignmentParams) (dbgen.BoxAssignment, error)
	ListBoxAssignmentsByJudge(ctx context.Context, judgeID pgtype.UUID) ([]dbgen.BoxAssignment, error)
	ListSaucesByStatus(ctx context.Context, status dbgen.SauceStatus) ([]dbgen.Sauce, error)
}

// LockRunner serialises scan bursts for the same sauce across processes.
type LockRunner interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// Service drives the sauce status machine.
type Service struct {
	Q      Querier
	Locks  LockRunner
	Rules  rules.Rules
	Events *events.Bus
	Log    zerolog.Logger
}

const scanLockTTL = 10 * time.Second

// ErrDuplicateScan marks a bottle ordinal that was already scanned.
var ErrDuplicateScan = errors.New("bottle already scanned")

// ScanResult reports the outcome of a bottle scan.
type ScanResult struct {
	SauceID   string `json:"sauce_id"`
	SauceCode string `json:"sauce_code"`
	ScanCount int64  `json:"scan_count"`
	Status    string `json:"status"`
	Boxed     bool   `json:"boxed"`
}

// Transition moves a sauce to the target status. Arrival requires the entry
// fee to be paid; boxing normally happens via the scan threshold but an admin
// can force it. Any other move is rejected naming the sauce's actual status.
func (s *Service) Transition(ctx context.Context, sauceID pgtype.UUID, target dbgen.SauceStatus, force bool) (dbgen.Sauce, error) {
	sauce, err := s.Q.GetSauceByID(ctx, sauceID)
	if err != nil {
		return dbgen.Sauce{}, err
	}
	switch target {
	case dbgen.SauceStatusArrived:
		if sauce.Status != dbgen.SauceStatusRegistered {
			return dbgen.Sauce{}, fmt.Errorf("sauce %s is %s, only registered sauces can arrive", sauce.SauceCode, sauce.Status)
		}
		if sauce.PaymentStatus != dbgen.PaymentStatusPaid {
			return dbgen.Sauce{}, fmt.Errorf("sauce %s has unpaid entry fee", sauce.SauceCode)
		}
	case dbgen.SauceStatusBoxed:
		if sauce.Status != dbgen.SauceStatusArrived && !force {
			return dbgen.Sauce{}, fmt.Errorf("sauce %s is %s, only arrived sauces can be boxed", sauce.SauceCode, sauce.Status)
		}
	case dbgen.SauceStatusRegistered:
		return dbgen.Sauce{}, fmt.Errorf("sauce %s cannot move back to registered", sauce.SauceCode)
	default:
		return dbgen.Sauce{}, fmt.Errorf("unknown status %q", target)
	}
	updated, err := s.Q.UpdateSauceStatus(ctx, dbgen.UpdateSauceStatusParams{ID: sauceID, Status: target})
	if err != nil {
		return dbgen.Sauce{}, err
	}
	if target == dbgen.SauceStatusBoxed {
		s.emitBoxed(ctx, updated)
	}
	return updated, nil
}

// ScanBottle records one bottle of an arrived sauce. The seventh scan packs
// the box. Concurrent scanners for the same sauce serialise on a Redis lock
// so the count and the transition cannot interleave.
func (s *Service) ScanBottle(ctx context.Context, sauceID pgtype.UUID, ordinal int32, scannedBy pgtype.UUID) (ScanResult, error) {
	if ordinal < 1 {
		return ScanResult{}, fmt.Errorf("bottle ordinal must be positive, got %d", ordinal)
	}
	var result ScanResult
	key := "boxing:scan:" + common.UUIDString(sauceID)
	err := s.Locks.WithLock(ctx, key, scanLockTTL, func(ctx context.Context) error {
		sauce, err := s.Q.GetSauceByID(ctx, sauceID)
		if err != nil {
			return err
		}
		if sauce.Status != dbgen.SauceStatusArrived {
			return fmt.Errorf("sauce %s is %s, expected arrived", sauce.SauceCode, sauce.Status)
		}
		if _, err := s.Q.InsertBottleScan(ctx, dbgen.InsertBottleScanParams{
			SauceID:   sauceID,
			Ordinal:   ordinal,
			ScannedBy: scannedBy,
		}); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: sauce %s bottle %d", ErrDuplicateScan, sauce.SauceCode, ordinal)
			}
			return err
		}
		count, err := s.Q.CountBottleScans(ctx, sauceID)
		if err != nil {
			return err
		}
		result = ScanResult{
			SauceID:   common.UUIDString(sauceID),
			SauceCode: sauce.SauceCode,
			ScanCount: count,
			Status:    string(sauce.Status),
		}
		if count >= int64(s.Rules.BottlesPerBox) {
			boxed, err := s.Q.UpdateSauceStatus(ctx, dbgen.UpdateSauceStatusParams{
				ID:     sauceID,
				Status: dbgen.SauceStatusBoxed,
			})
			if err != nil {
				return err
			}
			result.Status = string(boxed.Status)
			result.Boxed = true
			s.emitBoxed(ctx, boxed)
		}
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}
	return result, nil
}

// AssignBox pairs a boxed sauce with a judge. The (sauce, judge) pair is
// unique so a judge never receives the same sauce twice.
func (s *Service) AssignBox(ctx context.Context, sauceID, judgeID pgtype.UUID) (dbgen.BoxAssignment, error) {
	sauce, err := s.Q.GetSauceByID(ctx, sauceID)
	if err != nil {
		return dbgen.BoxAssignment{}, err
	}
	if sauce.Status != dbgen.SauceStatusBoxed {
		return dbgen.BoxAssignment{}, fmt.Errorf("sauce %s is %s, only boxed sauces can be assigned", sauce.SauceCode, sauce.Status)
	}
	assignment, err := s.Q.CreateBoxAssignment(ctx, dbgen.CreateBoxAssignmentParams{
		SauceID: sauceID,
		JudgeID: judgeID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return dbgen.BoxAssignment{}, fmt.Errorf("sauce %s is already assigned to this judge", sauce.SauceCode)
		}
		return dbgen.BoxAssignment{}, err
	}
	return assignment, nil
}

// Assignments lists the box assignments of one judge.
func (s *Service) Assignments(ctx context.Context, judgeID pgtype.UUID) ([]dbgen.BoxAssignment, error) {
	return s.Q.ListBoxAssignmentsByJudge(ctx, judgeID)
}

// SauceView is one sauce in the admin status overview. Judged is derived
// from score existence, never stored on the sauce row.
type SauceView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Status    string `json:"status"`
	Judged    bool   `json:"judged"`
	ScanCount int64  `json:"scan_count"`
}

// ListByStatus returns sauces in the given status with their derived judged
// flag and scan count.
func (s *Service) ListByStatus(ctx context.Context, status dbgen.SauceStatus) ([]SauceView, error) {
	sauces, err := s.Q.ListSaucesByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	views := make([]SauceView, 0, len(sauces))
	for _, sauce := range sauces {
		scores, err := s.Q.CountScoresBySauce(ctx, sauce.ID)
		if err != nil {
			return nil, err
		}
		scans, err := s.Q.CountBottleScans(ctx, sauce.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, SauceView{
			ID:        common.UUIDString(sauce.ID),
			Name:      sauce.Name,
			Code:      sauce.SauceCode,
			Status:    string(sauce.Status),
			Judged:    scores > 0,
			ScanCount: scans,
		})
	}
	return views, nil
}

func (s *Service) emitBoxed(ctx context.Context, sauce dbgen.Sauce) {
	if s.Events == nil {
		return
	}
	if _, err := s.Events.Emit(ctx, events.TopicSauceBoxed, sauce.ID, map[string]any{
		"sauceId":   common.UUIDString(sauce.ID),
		"sauceCode": sauce.SauceCode,
	}); err != nil {
		s.Log.Error().Err(err).Str("sauce_code", sauce.SauceCode).Msg("emit sauce.boxed")
	}
}
