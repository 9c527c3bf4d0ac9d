package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

type stubQuerier struct {
	accounts map[string]dbgen.AuthAccount
	created  int
	createFn func(arg dbgen.CreateAuthAccountParams) (dbgen.AuthAccount, error)
}

func newStubQuerier() *stubQuerier {
	return &stubQuerier{accounts: map[string]dbgen.AuthAccount{}}
}

func (s *stubQuerier) GetAuthAccountByEmail(_ context.Context, email string) (dbgen.AuthAccount, error) {
	account, ok := s.accounts[email]
	if !ok {
		return dbgen.AuthAccount{}, pgx.ErrNoRows
	}
	return account, nil
}

func (s *stubQuerier) CreateAuthAccount(_ context.Context, arg dbgen.CreateAuthAccountParams) (dbgen.AuthAccount, error) {
	s.created++
	if s.createFn != nil {
		return s.createFn(arg)
	}
	account := dbgen.AuthAccount{Email: arg.Email, PasswordHash: arg.PasswordHash}
	s.accounts[arg.Email] = account
	return account, nil
}

func newTestService(t *testing.T, q Querier) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Queries:        q,
		Secret:         "test-secret-key-which-is-long-enough",
		AccessTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestEnsureAccountCreatesOnce(t *testing.T) {
	q := newStubQuerier()
	svc := newTestService(t, q)

	first, err := svc.EnsureAccount(context.Background(), "Maria@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", first.Email)
	assert.Equal(t, 1, q.created)

	second, err := svc.EnsureAccount(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, 1, q.created, "existing account must not be recreated")
}

func TestEnsureAccountToleratesUniqueViolationRace(t *testing.T) {
	q := newStubQuerier()
	winner := dbgen.AuthAccount{Email: "race@example.com", PasswordHash: "existing"}
	q.createFn = func(dbgen.CreateAuthAccountParams) (dbgen.AuthAccount, error) {
		// Simulate a concurrent submission winning the insert.
		q.accounts["race@example.com"] = winner
		return dbgen.AuthAccount{}, &pgconn.PgError{Code: "23505"}
	}
	svc := newTestService(t, q)

	account, err := svc.EnsureAccount(context.Background(), "race@example.com")
	require.NoError(t, err)
	assert.Equal(t, "existing", account.PasswordHash)
}

func TestEnsureAccountRejectsEmptyEmail(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	_, err := svc.EnsureAccount(context.Background(), "   ")
	require.Error(t, err)
}

func TestLoginAndParseRoundTrip(t *testing.T) {
	q := newStubQuerier()
	hash, err := argon2id.CreateHash("correct horse battery", argon2id.DefaultParams)
	require.NoError(t, err)
	q.accounts["admin@example.com"] = dbgen.AuthAccount{Email: "admin@example.com", PasswordHash: hash}
	svc := newTestService(t, q)

	token, expiresAt, err := svc.Login(context.Background(), "Admin@Example.com", "correct horse battery")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	_, email, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	q := newStubQuerier()
	hash, err := argon2id.CreateHash("the-real-password", argon2id.DefaultParams)
	require.NoError(t, err)
	q.accounts["admin@example.com"] = dbgen.AuthAccount{Email: "admin@example.com", PasswordHash: hash}
	svc := newTestService(t, q)

	_, _, err = svc.Login(context.Background(), "admin@example.com", "guess")
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	q := newStubQuerier()
	hash, err := argon2id.CreateHash("the-real-password", argon2id.DefaultParams)
	require.NoError(t, err)
	q.accounts["admin@example.com"] = dbgen.AuthAccount{Email: "admin@example.com", PasswordHash: hash}
	svc := newTestService(t, q)

	token, _, err := svc.Login(context.Background(), "admin@example.com", "the-real-password")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Now().Add(2 * time.Hour) })
	_, _, err = svc.ParseAccessToken(token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, newStubQuerier())
	_, _, err := svc.ParseAccessToken("not.a.token")
	require.Error(t, err)
}
