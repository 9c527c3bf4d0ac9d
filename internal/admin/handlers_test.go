package admin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scovillecup/backend-scoville/internal/admin"
	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

type stubQuerier struct {
	judges map[string]dbgen.Judge
}

func (s *stubQuerier) SetJudgeType(_ context.Context, arg dbgen.SetJudgeTypeParams) (dbgen.Judge, error) {
	key := common.UUIDString(arg.ID)
	judge, ok := s.judges[key]
	if !ok {
		return dbgen.Judge{}, pgx.ErrNoRows
	}
	judge.Type = arg.Type
	s.judges[key] = judge
	return judge, nil
}

func (s *stubQuerier) GetJudgeByID(_ context.Context, id pgtype.UUID) (dbgen.Judge, error) {
	judge, ok := s.judges[common.UUIDString(id)]
	if !ok {
		return dbgen.Judge{}, pgx.ErrNoRows
	}
	return judge, nil
}

func (s *stubQuerier) ListActiveJudgesByType(_ context.Context, t dbgen.JudgeType) ([]dbgen.Judge, error) {
	var out []dbgen.Judge
	for _, j := range s.judges {
		if j.Type == t && j.Active {
			out = append(out, j)
		}
	}
	return out, nil
}

func newRouter(q *stubQuerier) *chi.Mux {
	h := admin.Handlers{Q: q}
	r := chi.NewRouter()
	r.Post("/admin/judges/{judgeId}/type", h.PromoteJudge)
	r.Get("/admin/judges", h.ListJudges)
	return r
}

func TestPromoteJudge(t *testing.T) {
	judge := dbgen.Judge{ID: common.NewUUID(), Email: "fan@example.com", Type: dbgen.JudgeTypeCommunity, Active: true}
	q := &stubQuerier{judges: map[string]dbgen.Judge{common.UUIDString(judge.ID): judge}}
	r := newRouter(q)

	req := httptest.NewRequest(http.MethodPost,
		"/admin/judges/"+common.UUIDString(judge.ID)+"/type",
		strings.NewReader(`{"type":"pro"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"pro"`)
	assert.Equal(t, dbgen.JudgeTypePro, q.judges[common.UUIDString(judge.ID)].Type)
}

func TestPromoteJudgeRejectsUnknownType(t *testing.T) {
	judge := dbgen.Judge{ID: common.NewUUID(), Type: dbgen.JudgeTypeCommunity, Active: true}
	q := &stubQuerier{judges: map[string]dbgen.Judge{common.UUIDString(judge.ID): judge}}
	r := newRouter(q)

	req := httptest.NewRequest(http.MethodPost,
		"/admin/judges/"+common.UUIDString(judge.ID)+"/type",
		strings.NewReader(`{"type":"vip"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromoteJudgeNotFound(t *testing.T) {
	q := &stubQuerier{judges: map[string]dbgen.Judge{}}
	r := newRouter(q)

	req := httptest.NewRequest(http.MethodPost,
		"/admin/judges/"+common.UUIDString(common.NewUUID())+"/type",
		strings.NewReader(`{"type":"pro"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListJudgesFiltersByType(t *testing.T) {
	pro := dbgen.Judge{ID: common.NewUUID(), Email: "pro@example.com", Type: dbgen.JudgeTypePro, Active: true}
	fan := dbgen.Judge{ID: common.NewUUID(), Email: "fan@example.com", Type: dbgen.JudgeTypeCommunity, Active: true}
	q := &stubQuerier{judges: map[string]dbgen.Judge{
		common.UUIDString(pro.ID): pro,
		common.UUIDString(fan.ID): fan,
	}}
	r := newRouter(q)

	req := httptest.NewRequest(http.MethodGet, "/admin/judges?type=pro", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pro@example.com")
	assert.NotContains(t, rec.Body.String(), "fan@example.com")
}
