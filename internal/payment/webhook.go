package payment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/events"
	"github.com/scovillecup/backend-scoville/internal/obs"
)

// SettlementStore lists the write operations webhook settlement performs.
type SettlementStore interface {
	GetPaymentQuoteByID(ctx context.Context, id pgtype.UUID) (dbgen.PaymentQuote, error)
	MarkQuoteSucceeded(ctx context.Context, id pgtype.UUID) (dbgen.PaymentQuote, error)
	MarkSaucesPaidByQuote(ctx context.Context, quoteID pgtype.UUID) error
	GetJudgeByID(ctx context.Context, id pgtype.UUID) (dbgen.Judge, error)
	MarkJudgePaid(ctx context.Context, id pgtype.UUID) error
	InsertPaymentEvent(ctx context.Context, arg dbgen.InsertPaymentEventParams) error
}

// Webhook handles provider callbacks: signature verification, replay
// protection and transactional settlement of quotes and judge fees.
type Webhook struct {
	Q         *dbgen.Queries
	Pool      *pgxpool.Pool
	Providers map[string]Provider
	Replay    *redis.Client
	ReplayTTL time.Duration
	Events    *events.Bus
}

// settlement describes what a webhook changed, for the post-commit event.
type settlement struct {
	Kind        string
	ID          pgtype.UUID
	SupplierID  pgtype.UUID
	Status      string
	Settled     bool
	AmountCents int64
}

var errAmountMismatch = errors.New("provider amount mismatch")

// Handle processes webhook callbacks for the configured payment provider(s).
func (h Webhook) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil || h.Providers == nil {
		common.JSONError(w, http.StatusInternalServerError, "PAYMENT_NOT_CONFIGURED", "webhook unavailable", nil)
		return
	}
	providerKey := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "provider")))
	provider, ok := h.Providers[providerKey]
	if !ok {
		common.JSONError(w, http.StatusNotFound, "PROVIDER_NOT_SUPPORTED", "unknown provider", nil)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "unable to read payload", nil)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	result, err := provider.VerifyWebhook(r, body)
	if err != nil {
		obs.IncPaymentWebhook(providerKey, "error")
		common.JSONError(w, http.StatusBadRequest, "WEBHOOK_INVALID", err.Error(), nil)
		return
	}
	if !result.Valid {
		obs.IncPaymentWebhook(providerKey, "invalid_signature")
		common.JSONError(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "signature verification failed", nil)
		return
	}
	if h.Replay != nil && h.ReplayTTL > 0 {
		key := fmt.Sprintf("wh:%s:%s", providerKey, common.Sha256Hex(body))
		ok, err := h.Replay.SetNX(r.Context(), key, "1", h.ReplayTTL).Result()
		if err != nil {
			common.JSONError(w, http.StatusInternalServerError, "REPLAY_STORE_ERROR", err.Error(), nil)
			return
		}
		if !ok {
			obs.IncPaymentWebhook(providerKey, "replay")
			common.JSONError(w, http.StatusConflict, "REPLAY", "duplicate webhook", nil)
			return
		}
	}
	if result.ProviderPayload == nil {
		result.ProviderPayload = body
	}
	kind, refID, err := ParseReference(result.Reference)
	if err != nil {
		obs.IncPaymentWebhook(providerKey, "bad_reference")
		common.JSONError(w, http.StatusBadRequest, "INVALID_REFERENCE", "invalid payment reference", nil)
		return
	}

	ctx := r.Context()
	var q SettlementStore = h.Q
	var tx pgx.Tx
	if h.Pool != nil {
		tx, err = h.Pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			common.JSONError(w, http.StatusInternalServerError, "TX_ERROR", err.Error(), nil)
			return
		}
		defer func() { _ = tx.Rollback(ctx) }()
		q = h.Q.WithTx(tx)
	}

	outcome, err := Settle(ctx, q, providerKey, kind, refID, result)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			obs.IncPaymentWebhook(providerKey, "not_found")
			common.JSONError(w, http.StatusNotFound, "REFERENCE_NOT_FOUND", "payment reference not found", nil)
			return
		}
		if errors.Is(err, errAmountMismatch) {
			obs.IncPaymentWebhook(providerKey, "amount_mismatch")
			common.JSONError(w, http.StatusBadRequest, "AMOUNT_MISMATCH", "provider amount mismatch", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "SETTLEMENT_ERROR", err.Error(), nil)
		return
	}

	if tx != nil {
		if err := tx.Commit(ctx); err != nil {
			common.JSONError(w, http.StatusInternalServerError, "TX_COMMIT_ERROR", err.Error(), nil)
			return
		}
	}

	obs.IncPaymentWebhook(providerKey, outcome.Status)
	if h.Events != nil && outcome.Settled {
		payload := map[string]any{
			"kind":        outcome.Kind,
			"referenceId": common.UUIDString(outcome.ID),
			"amountCents": outcome.AmountCents,
			"provider":    providerKey,
		}
		if outcome.SupplierID.Valid {
			payload["supplierId"] = common.UUIDString(outcome.SupplierID)
		}
		_, _ = h.Events.Emit(ctx, events.TopicPaymentSucceeded, outcome.ID, payload)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Settle applies one verified webhook to the database. Quote settlements mark
// the quote succeeded and flip its sauces to paid; judge settlements flip the
// judge row. Non-paid statuses and already-settled rows only append an event,
// so providers can retry callbacks without side effects.
func Settle(ctx context.Context, q SettlementStore, providerKey, kind string, refID pgtype.UUID, result WebhookVerifyResult) (settlement, error) {
	out := settlement{Kind: kind, ID: refID, Status: result.Status, AmountCents: result.Amount}

	var quoteID pgtype.UUID
	switch kind {
	case RefKindQuote:
		quote, err := q.GetPaymentQuoteByID(ctx, refID)
		if err != nil {
			return out, err
		}
		if result.Amount > 0 && result.Amount != quote.AmountDueCents {
			return out, fmt.Errorf("%w: got %d, quote is %d", errAmountMismatch, result.Amount, quote.AmountDueCents)
		}
		out.SupplierID = quote.SupplierID
		out.AmountCents = quote.AmountDueCents
		quoteID = quote.ID
		if result.Status == StatusPaid && quote.Status == dbgen.QuoteStatusPending {
			if _, err := q.MarkQuoteSucceeded(ctx, quote.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return out, fmt.Errorf("mark quote succeeded: %w", err)
			}
			if err := q.MarkSaucesPaidByQuote(ctx, quote.ID); err != nil {
				return out, fmt.Errorf("mark sauces paid: %w", err)
			}
			out.Settled = true
		}
	case RefKindJudge:
		judge, err := q.GetJudgeByID(ctx, refID)
		if err != nil {
			return out, err
		}
		if result.Status == StatusPaid && judge.PaymentStatus != dbgen.PaymentStatusPaid {
			if err := q.MarkJudgePaid(ctx, judge.ID); err != nil {
				return out, fmt.Errorf("mark judge paid: %w", err)
			}
			out.Settled = true
		}
	default:
		return out, fmt.Errorf("unknown reference kind %q", kind)
	}

	if err := q.InsertPaymentEvent(ctx, dbgen.InsertPaymentEventParams{
		QuoteID:  quoteID,
		Provider: pgtype.Text{String: providerKey, Valid: true},
		Status:   pgtype.Text{String: result.Status, Valid: true},
		Payload:  result.ProviderPayload,
	}); err != nil {
		return out, fmt.Errorf("insert payment event: %w", err)
	}
	return out, nil
}
