package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

// Middleware guards routes with access token checks.
type Middleware struct {
	Service *Service
}

// RequireAuth validates the bearer token and stores the account identity in
// the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
			return
		}
		accountID, email, err := m.Service.ParseAccessToken(token)
		if err != nil {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
			return
		}
		ctx := common.WithAccountID(r.Context(), accountID)
		if email != "" {
			ctx = common.WithEmail(ctx, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminQuerier resolves the judge record behind an authenticated email.
type AdminQuerier interface {
	GetJudgeByEmail(ctx context.Context, email string) (dbgen.Judge, error)
}

// RequireAdmin allows only accounts whose judge record carries the admin
// type. It must run after RequireAuth.
func RequireAdmin(q AdminQuerier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := common.AuthEmail(r.Context())
			if !ok || email == "" {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "admin access required", nil)
				return
			}
			judge, err := q.GetJudgeByEmail(r.Context(), email)
			if err != nil || judge.Type != dbgen.JudgeTypeAdmin {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "admin access required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
