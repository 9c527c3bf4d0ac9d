package payment

import (
	"context"
	"net/http"
)

// SessionRequest describes a hosted-checkout session to be created at the provider.
type SessionRequest struct {
	Reference    string
	AmountCents  int64
	Description  string
	ExpiresAtSec int64
}

// SessionResponse is the normalised provider response for a checkout session.
type SessionResponse struct {
	Provider    string `json:"provider"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	ExpiresAt   int64  `json:"expires_at"`
}

// WebhookVerifyResult is the normalised outcome of a provider callback verification.
type WebhookVerifyResult struct {
	Valid           bool
	Reference       string
	Amount          int64
	Status          string
	ProviderPayload []byte
	Err             error
}

// Provider abstracts a hosted-checkout payment gateway.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (SessionResponse, error)
	VerifyWebhook(r *http.Request, body []byte) (WebhookVerifyResult, error)
}

// Normalised webhook statuses shared across providers.
const (
	StatusPaid    = "paid"
	StatusFailed  = "failed"
	StatusExpired = "expired"
	StatusPending = "pending"
)
