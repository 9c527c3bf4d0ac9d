package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Hotpay implements the Provider interface for the Hotpay hosted-checkout API.
type Hotpay struct {
	SecretKey string
	BaseURL   string
	// CallbackBaseURL is where the hosted page sends the buyer back after
	// payment. Empty means Hotpay's default "return to merchant" page.
	CallbackBaseURL string
	Sandbox         bool
}

// CreateCheckoutSession issues a minimal hosted-checkout response without
// performing a network call. The real implementation should call the Hotpay
// API, but for integration tests we synthesise a deterministic token to drive
// the rest of the flow.
func (h Hotpay) CreateCheckoutSession(_ context.Context, req SessionRequest) (SessionResponse, error) {
	if strings.TrimSpace(req.Reference) == "" {
		return SessionResponse{}, errors.New("reference is required")
	}
	if req.AmountCents <= 0 {
		return SessionResponse{}, errors.New("amount must be positive")
	}
	token := fmt.Sprintf("HP-%s", strings.ReplaceAll(req.Reference, ":", "-"))
	redirect := fmt.Sprintf("%s/checkout/%s", strings.TrimRight(h.host(), "/"), token)
	if callback := strings.TrimSpace(h.CallbackBaseURL); callback != "" {
		redirect += "?return_to=" + url.QueryEscape(strings.TrimRight(callback, "/")+"/payment/result")
	}
	expiresAt := time.Now().Add(time.Duration(req.ExpiresAtSec) * time.Second)
	return SessionResponse{
		Provider:    "hotpay",
		Token:       token,
		RedirectURL: redirect,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (h Hotpay) host() string {
	host := strings.TrimSpace(h.BaseURL)
	if host == "" {
		if h.Sandbox {
			return "https://pay.sandbox.hotpay.io"
		}
		return "https://pay.hotpay.io"
	}
	return host
}

// VerifyWebhook validates the Hotpay signature and normalises the payload into WebhookVerifyResult.
func (h Hotpay) VerifyWebhook(_ *http.Request, body []byte) (WebhookVerifyResult, error) {
	var payload struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    string `json:"amount"`
		Signature string `json:"signature"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return WebhookVerifyResult{Valid: false, Err: err}, nil
	}

	if payload.Reference == "" {
		return WebhookVerifyResult{Valid: false, Err: errors.New("missing reference")}, nil
	}

	expected := h.computeSignature(payload.Reference, payload.Status, payload.Amount)
	provided := strings.TrimSpace(payload.Signature)
	if expected == "" || provided == "" || !hmac.Equal([]byte(expected), []byte(provided)) {
		return WebhookVerifyResult{Valid: false, Err: errors.New("invalid signature")}, nil
	}

	amount, err := parseHotpayAmount(payload.Amount)
	if err != nil {
		return WebhookVerifyResult{Valid: false, Err: err}, nil
	}

	return WebhookVerifyResult{
		Valid:           true,
		Reference:       payload.Reference,
		Amount:          amount,
		Status:          normaliseHotpayStatus(payload.Status),
		ProviderPayload: body,
	}, nil
}

func (h Hotpay) computeSignature(reference, status, amount string) string {
	key := strings.TrimSpace(h.SecretKey)
	if key == "" {
		return ""
	}
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write([]byte(reference))
	mac.Write([]byte(status))
	mac.Write([]byte(amount))
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

func parseHotpayAmount(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	if !strings.Contains(trimmed, ".") {
		return strconv.ParseInt(trimmed, 10, 64)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f)), nil
}

func normaliseHotpayStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "settlement", "paid", "capture", "success":
		return StatusPaid
	case "deny", "cancel", "failure", "failed":
		return StatusFailed
	case "expire", "expired":
		return StatusExpired
	default:
		return StatusPending
	}
}
