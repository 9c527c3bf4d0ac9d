package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

const (
	defaultAccessTTL = 15 * time.Minute

	httpStatusBadRequest   = 400
	httpStatusUnauthorized = 401
)

// Querier is the subset of generated queries the auth service depends on.
type Querier interface {
	GetAuthAccountByEmail(ctx context.Context, email string) (dbgen.AuthAccount, error)
	CreateAuthAccount(ctx context.Context, arg dbgen.CreateAuthAccountParams) (dbgen.AuthAccount, error)
}

// Service manages account provisioning and access token issuance.
type Service struct {
	Q         Querier
	secret    []byte
	accessTTL time.Duration
	issuer    string
	audience  string
	signer    jwa.SignatureAlgorithm
	now       func() time.Time
}

// Config configures the auth service.
type Config struct {
	Queries        Querier
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       string
}

// NewService constructs a Service with sane defaults.
func NewService(cfg Config) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("auth: queries is required")
	}
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "scoville-api"
	}
	audience := cfg.Audience
	if audience == "" {
		audience = "scoville"
	}
	return &Service{
		Q:         cfg.Queries,
		secret:    []byte(secret),
		accessTTL: ttl,
		issuer:    issuer,
		audience:  audience,
		signer:    jwa.HS256,
		now:       time.Now,
	}, nil
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// EnsureAccount finds or creates an auth account for the email. Intake flows
// call this per submission; creation races with concurrent submissions of the
// same email, so a unique violation falls back to one retried lookup.
func (s *Service) EnsureAccount(ctx context.Context, email string) (dbgen.AuthAccount, error) {
	normalized := strings.TrimSpace(strings.ToLower(email))
	if normalized == "" {
		return dbgen.AuthAccount{}, common.NewAppError("VALIDATION_ERROR", "email is required", httpStatusBadRequest, nil)
	}
	account, err := s.Q.GetAuthAccountByEmail(ctx, normalized)
	if err == nil {
		return account, nil
	}

	// Provision a throwaway credential; suppliers and judges authenticate via
	// checkout/webhook flows, not passwords, until an admin resets one.
	password, err := randomSecret()
	if err != nil {
		return dbgen.AuthAccount{}, fmt.Errorf("generate password: %w", err)
	}
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return dbgen.AuthAccount{}, fmt.Errorf("hash password: %w", err)
	}
	created, err := s.Q.CreateAuthAccount(ctx, dbgen.CreateAuthAccountParams{
		Email:        normalized,
		PasswordHash: hash,
	})
	if err == nil {
		return created, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return s.Q.GetAuthAccountByEmail(ctx, normalized)
	}
	return dbgen.AuthAccount{}, fmt.Errorf("create account: %w", err)
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	normalized := strings.TrimSpace(strings.ToLower(email))
	if normalized == "" || password == "" {
		return "", time.Time{}, common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", httpStatusUnauthorized, nil)
	}
	account, err := s.Q.GetAuthAccountByEmail(ctx, normalized)
	if err != nil {
		return "", time.Time{}, common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", httpStatusUnauthorized, nil)
	}
	ok, err := argon2id.ComparePasswordAndHash(password, account.PasswordHash)
	if err != nil || !ok {
		return "", time.Time{}, common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", httpStatusUnauthorized, nil)
	}
	return s.signAccessToken(common.UUIDString(account.ID), normalized)
}

// ParseAccessToken validates the token and returns its subject and email claim.
func (s *Service) ParseAccessToken(token string) (string, string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", "", common.NewAppError("UNAUTHORIZED", "missing token", httpStatusUnauthorized, nil)
	}
	algorithm, err := extractTokenAlgorithm(trimmed)
	if err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	if algorithm != s.signer {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, fmt.Errorf("unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, s.secret), jwt.WithValidate(false))
	if err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	options := []jwt.ValidateOption{
		jwt.WithClock(jwt.ClockFunc(s.now)),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	}
	if err := jwt.Validate(parsed, options...); err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	email := ""
	if v, ok := parsed.Get("email"); ok {
		email, _ = v.(string)
	}
	return parsed.Subject(), email, nil
}

func (s *Service) signAccessToken(accountID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	builder := jwt.NewBuilder().
		Subject(accountID).
		Issuer(s.issuer).
		Audience([]string{s.audience}).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("email", email)
	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}

func extractTokenAlgorithm(token string) (jwa.SignatureAlgorithm, error) {
	message, err := jws.ParseString(token)
	if err != nil {
		return "", err
	}
	signatures := message.Signatures()
	if len(signatures) == 0 {
		return "", errors.New("auth: token contains no signatures")
	}
	var algorithm jwa.SignatureAlgorithm
	for _, sig := range signatures {
		headers := sig.ProtectedHeaders()
		if headers == nil {
			return "", errors.New("auth: token missing protected headers")
		}
		alg := headers.Algorithm()
		if alg == "" {
			return "", errors.New("auth: token missing algorithm")
		}
		if alg == jwa.NoSignature {
			return "", errors.New("auth: token uses none algorithm")
		}
		if algorithm == "" {
			algorithm = alg
		} else if algorithm != alg {
			return "", errors.New("auth: mixed token algorithms detected")
		}
	}
	return algorithm, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
