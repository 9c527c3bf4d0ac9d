package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

// Querier is the subset of generated queries the scoring service depends on.
type Querier interface {
	GetJudgeByEmail(ctx context.Context, email string) (dbgen.Judge, error)
	GetSauceByID(ctx context.Context, id pgtype.UUID) (dbgen.Sauce, error)
	InsertJudgingScore(ctx context.Context, arg dbgen.InsertJudgingScoreParams) (dbgen.JudgingScore, error)
	ListScoresForExport(ctx context.Context) ([]dbgen.ListScoresForExportRow, error)
}

// Service records judging scores and produces the results export.
type Service struct {
	Q     Querier
	Rules rules.Rules
}

// ErrAlreadyScored marks a repeated (sauce, judge, category) submission.
var ErrAlreadyScored = errors.New("score already submitted")

// SubmitScore records one judge's score for a sauce in a tasting category.
// The judge is resolved from the authenticated email and must be active.
func (s *Service) SubmitScore(ctx context.Context, judgeEmail string, sauceID pgtype.UUID, category string, score int32) (dbgen.JudgingScore, error) {
	if score < 0 || score > 100 {
		return dbgen.JudgingScore{}, fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	judge, err := s.Q.GetJudgeByEmail(ctx, judgeEmail)
	if err != nil {
		return dbgen.JudgingScore{}, fmt.Errorf("resolve judge: %w", err)
	}
	if !judge.Active {
		return dbgen.JudgingScore{}, errors.New("judge is not active")
	}
	sauce, err := s.Q.GetSauceByID(ctx, sauceID)
	if err != nil {
		return dbgen.JudgingScore{}, fmt.Errorf("resolve sauce: %w", err)
	}
	if sauce.Status != dbgen.SauceStatusBoxed {
		return dbgen.JudgingScore{}, fmt.Errorf("sauce %s is %s, only boxed sauces are judged", sauce.SauceCode, sauce.Status)
	}
	inserted, err := s.Q.InsertJudgingScore(ctx, dbgen.InsertJudgingScoreParams{
		SauceID:  sauceID,
		JudgeID:  judge.ID,
		Category: category,
		Score:    score,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return dbgen.JudgingScore{}, fmt.Errorf("%w: sauce %s category %s", ErrAlreadyScored, sauce.SauceCode, category)
		}
		return dbgen.JudgingScore{}, err
	}
	return inserted, nil
}

// Results aggregates every recorded score into the weighted ranking.
func (s *Service) Results(ctx context.Context) ([]SauceResult, error) {
	rows, err := s.Q.ListScoresForExport(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows, s.Rules.JudgeWeights), nil
}
