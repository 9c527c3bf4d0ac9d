package boxing

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

type stubQuerier struct {
	sauces      map[pgtype.UUID]dbgen.Sauce
	scans       map[pgtype.UUID]map[int32]bool
	scores      map[pgtype.UUID]int64
	assignments map[[2]pgtype.UUID]bool
}

func newStubQuerier() *stubQuerier {
	return &stubQuerier{
		sauces:      map[pgtype.UUID]dbgen.Sauce{},
		scans:       map[pgtype.UUID]map[int32]bool{},
		scores:      map[pgtype.UUID]int64{},
		assignments: map[[2]pgtype.UUID]bool{},
	}
}

func (s *stubQuerier) addSauce(code string, status dbgen.SauceStatus, payment dbgen.PaymentStatus) pgtype.UUID {
	id := common.NewUUID()
	s.sauces[id] = dbgen.Sauce{ID: id, Name: code, SauceCode: code, Status: status, PaymentStatus: payment}
	return id
}

func (s *stubQuerier) GetSauceByID(_ context.Context, id pgtype.UUID) (dbgen.Sauce, error) {
	sauce, ok := s.sauces[id]
	if !ok {
		return dbgen.Sauce{}, pgx.ErrNoRows
	}
	return sauce, nil
}

func (s *stubQuerier) UpdateSauceStatus(_ context.Context, arg dbgen.UpdateSauceStatusParams) (dbgen.Sauce, error) {
	sauce, ok := s.sauces[arg.ID]
	if !ok {
		return dbgen.Sauce{}, pgx.ErrNoRows
	}
	sauce.Status = arg.Status
	s.sauces[arg.ID] = sauce
	return sauce, nil
}

func (s *stubQuerier) CountBottleScans(_ context.Context, sauceID pgtype.UUID) (int64, error) {
	return int64(len(s.scans[sauceID])), nil
}

func (s *stubQuerier) InsertBottleScan(_ context.Context, arg dbgen.InsertBottleScanParams) (dbgen.BottleScan, error) {
	if s.scans[arg.SauceID] == nil {
		s.scans[arg.SauceID] = map[int32]bool{}
	}
	if s.scans[arg.SauceID][arg.Ordinal] {
		return dbgen.BottleScan{}, &pgconn.PgError{Code: "23505", ConstraintName: "bottle_scans_sauce_id_ordinal_key"}
	}
	s.scans[arg.SauceID][arg.Ordinal] = true
	return dbgen.BottleScan{SauceID: arg.SauceID, Ordinal: arg.Ordinal}, nil
}

func (s *stubQuerier) CountScoresBySauce(_ context.Context, sauceID pgtype.UUID) (int64, error) {
	return s.scores[sauceID], nil
}

func (s *stubQuerier) CreateBoxAssignment(_ context.Context, arg dbgen.CreateBoxAssignmentParams) (dbgen.BoxAssignment, error) {
	key := [2]pgtype.UUID{arg.SauceID, arg.JudgeID}
	if s.assignments[key] {
		return dbgen.BoxAssignment{}, &pgconn.PgError{Code: "23505"}
	}
	s.assignments[key] = true
	return dbgen.BoxAssignment{SauceID: arg.SauceID, JudgeID: arg.JudgeID}, nil
}

func (s *stubQuerier) ListBoxAssignmentsByJudge(_ context.Context, judgeID pgtype.UUID) ([]dbgen.BoxAssignment, error) {
	var out []dbgen.BoxAssignment
	for key := range s.assignments {
		if key[1] == judgeID {
			out = append(out, dbgen.BoxAssignment{SauceID: key[0], JudgeID: key[1]})
		}
	}
	return out, nil
}

func (s *stubQuerier) ListSaucesByStatus(_ context.Context, status dbgen.SauceStatus) ([]dbgen.Sauce, error) {
	var out []dbgen.Sauce
	for _, sauce := range s.sauces {
		if sauce.Status == status {
			out = append(out, sauce)
		}
	}
	return out, nil
}

type passthroughLock struct{}

func (passthroughLock) WithLock(ctx context.Context, _ string, _ time.Duration, fn func(context.Context) error) error {
	return fn(ctx)
}

func newTestService(q *stubQuerier) *Service {
	return &Service{Q: q, Locks: passthroughLock{}, Rules: rules.Default(2026)}
}

func TestTransitionArrivalRequiresPayment(t *testing.T) {
	q := newStubQuerier()
	unpaid := q.addSauce("H001", dbgen.SauceStatusRegistered, dbgen.PaymentStatusPendingPayment)
	paid := q.addSauce("H002", dbgen.SauceStatusRegistered, dbgen.PaymentStatusPaid)
	svc := newTestService(q)

	_, err := svc.Transition(context.Background(), unpaid, dbgen.SauceStatusArrived, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unpaid")

	sauce, err := svc.Transition(context.Background(), paid, dbgen.SauceStatusArrived, false)
	require.NoError(t, err)
	assert.Equal(t, dbgen.SauceStatusArrived, sauce.Status)
}

func TestTransitionRejectsWrongStatusByName(t *testing.T) {
	q := newStubQuerier()
	boxed := q.addSauce("H001", dbgen.SauceStatusBoxed, dbgen.PaymentStatusPaid)
	svc := newTestService(q)

	_, err := svc.Transition(context.Background(), boxed, dbgen.SauceStatusArrived, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boxed", "rejection must name the actual status")
}

func TestTransitionForceBoxesRegisteredSauce(t *testing.T) {
	q := newStubQuerier()
	id := q.addSauce("H001", dbgen.SauceStatusRegistered, dbgen.PaymentStatusPaid)
	svc := newTestService(q)

	_, err := svc.Transition(context.Background(), id, dbgen.SauceStatusBoxed, false)
	require.Error(t, err)

	sauce, err := svc.Transition(context.Background(), id, dbgen.SauceStatusBoxed, true)
	require.NoError(t, err)
	assert.Equal(t, dbgen.SauceStatusBoxed, sauce.Status)
}

func TestScanBottleSeventhScanBoxes(t *testing.T) {
	q := newStubQuerier()
	id := q.addSauce("H001", dbgen.SauceStatusArrived, dbgen.PaymentStatusPaid)
	svc := newTestService(q)

	for ordinal := int32(1); ordinal <= 6; ordinal++ {
		result, err := svc.ScanBottle(context.Background(), id, ordinal, pgtype.UUID{})
		require.NoError(t, err)
		assert.False(t, result.Boxed, "scan %d must not box the sauce", ordinal)
		assert.Equal(t, string(dbgen.SauceStatusArrived), result.Status)
	}

	result, err := svc.ScanBottle(context.Background(), id, 7, pgtype.UUID{})
	require.NoError(t, err)
	assert.True(t, result.Boxed)
	assert.Equal(t, int64(7), result.ScanCount)
	assert.Equal(t, string(dbgen.SauceStatusBoxed), result.Status)
	assert.Equal(t, dbgen.SauceStatusBoxed, q.sauces[id].Status)
}

func TestScanBottleRejectsDuplicateOrdinal(t *testing.T) {
	q := newStubQuerier()
	id := q.addSauce("H001", dbgen.SauceStatusArrived, dbgen.PaymentStatusPaid)
	svc := newTestService(q)

	_, err := svc.ScanBottle(context.Background(), id, 3, pgtype.UUID{})
	require.NoError(t, err)

	_, err = svc.ScanBottle(context.Background(), id, 3, pgtype.UUID{})
	require.ErrorIs(t, err, ErrDuplicateScan)

	count, _ := q.CountBottleScans(context.Background(), id)
	assert.Equal(t, int64(1), count, "duplicate scan must not inflate the count")
}

func TestScanBottleRejectsNonArrivedSauce(t *testing.T) {
	q := newStubQuerier()
	id := q.addSauce("H001", dbgen.SauceStatusRegistered, dbgen.PaymentStatusPaid)
	svc := newTestService(q)

	_, err := svc.ScanBottle(context.Background(), id, 1, pgtype.UUID{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered", "rejection must name the actual status")
}

func TestAssignBoxUniquePerJudge(t *testing.T) {
	q := newStubQuerier()
	id := q.addSauce("H001", dbgen.SauceStatusBoxed, dbgen.PaymentStatusPaid)
	judge := common.NewUUID()
	svc := newTestService(q)

	_, err := svc.AssignBox(context.Background(), id, judge)
	require.NoError(t, err)

	_, err = svc.AssignBox(context.Background(), id, judge)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already assigned")

	assignments, err := svc.Assignments(context.Background(), judge)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestListByStatusDerivesJudged(t *testing.T) {
	q := newStubQuerier()
	judged := q.addSauce("H001", dbgen.SauceStatusBoxed, dbgen.PaymentStatusPaid)
	q.addSauce("H002", dbgen.SauceStatusBoxed, dbgen.PaymentStatusPaid)
	q.scores[judged] = 4
	svc := newTestService(q)

	views, err := svc.ListByStatus(context.Background(), dbgen.SauceStatusBoxed)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byCode := map[string]SauceView{}
	for _, v := range views {
		byCode[v.Code] = v
	}
	assert.True(t, byCode["H001"].Judged)
	assert.False(t, byCode["H002"].Judged)
}
