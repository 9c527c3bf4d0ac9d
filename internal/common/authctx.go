package common

import "context"

type ctxKey string

const (
	accountIDKey ctxKey = "auth/account-id"
	emailKey     ctxKey = "auth/email"
)

// WithAccountID stores the authenticated account identifier on the context.
func WithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// AccountID extracts the authenticated account identifier from the context if present.
func AccountID(ctx context.Context) (string, bool) {
	v := ctx.Value(accountIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// WithEmail stores the authenticated email address on the context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// AuthEmail extracts the authenticated email address from the context if present.
func AuthEmail(ctx context.Context) (string, bool) {
	v := ctx.Value(emailKey)
	if v == nil {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
