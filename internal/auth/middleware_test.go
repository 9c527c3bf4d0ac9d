package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

type stubJudgeQuerier struct {
	judges map[string]dbgen.Judge
}

func (s stubJudgeQuerier) GetJudgeByEmail(_ context.Context, email string) (dbgen.Judge, error) {
	judge, ok := s.judges[email]
	if !ok {
		return dbgen.Judge{}, pgx.ErrNoRows
	}
	return judge, nil
}

func adminChain(t *testing.T, svc *Service, judges map[string]dbgen.Judge, handled *int) http.Handler {
	t.Helper()
	mw := &Middleware{Service: svc}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*handled++
		w.WriteHeader(http.StatusOK)
	})
	return mw.RequireAuth(RequireAdmin(stubJudgeQuerier{judges: judges})(inner))
}

func mintToken(t *testing.T, svc *Service, email string) string {
	t.Helper()
	token, _, err := svc.signAccessToken("acc-1", email)
	require.NoError(t, err)
	return token
}

func TestRequireAuthRejectsMissingOrBadToken(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	var handled int
	handler := adminChain(t, svc, nil, &handled)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/sauces", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/sauces", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Zero(t, handled, "rejected requests must never reach the handler")
}

func TestRequireAdminRejectsNonAdminJudge(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	judges := map[string]dbgen.Judge{
		"carla@example.com": {Email: "carla@example.com", Type: dbgen.JudgeTypeCommunity},
	}
	var handled int
	handler := adminChain(t, svc, judges, &handled)

	req := httptest.NewRequest(http.MethodPost, "/admin/sauces/x/scans", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, svc, "carla@example.com"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "FORBIDDEN")
	assert.Zero(t, handled, "non-admin judges must not trigger any admin mutation")
}

func TestRequireAdminRejectsUnknownJudge(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	var handled int
	handler := adminChain(t, svc, nil, &handled)

	req := httptest.NewRequest(http.MethodGet, "/admin/sauces", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, svc, "ghost@example.com"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Zero(t, handled)
}

func TestRequireAdminPassesAdminThrough(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	judges := map[string]dbgen.Judge{
		"root@example.com": {Email: "root@example.com", Type: dbgen.JudgeTypeAdmin},
	}
	var handled int
	handler := adminChain(t, svc, judges, &handled)

	req := httptest.NewRequest(http.MethodGet, "/admin/sauces", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, svc, "root@example.com"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, handled)
}

func TestRequireAuthStoresIdentityInContext(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	mw := &Middleware{Service: svc}
	var gotEmail, gotAccount string
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = common.AuthEmail(r.Context())
		gotAccount, _ = common.AccountID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, svc, "carla@example.com"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "carla@example.com", gotEmail)
	assert.Equal(t, "acc-1", gotAccount)
}
