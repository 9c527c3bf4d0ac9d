package payment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

// Reference kinds carried through the provider roundtrip.
const (
	RefKindQuote = "quote"
	RefKindJudge = "judge"
)

// QuoteReference builds the provider reference for a supplier payment quote.
func QuoteReference(id pgtype.UUID) string {
	return RefKindQuote + ":" + common.UUIDString(id)
}

// JudgeReference builds the provider reference for a community judge fee.
func JudgeReference(id pgtype.UUID) string {
	return RefKindJudge + ":" + common.UUIDString(id)
}

// ParseReference splits a provider reference back into its kind and row id.
func ParseReference(ref string) (string, pgtype.UUID, error) {
	kind, raw, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return "", pgtype.UUID{}, fmt.Errorf("malformed reference %q", ref)
	}
	if kind != RefKindQuote && kind != RefKindJudge {
		return "", pgtype.UUID{}, fmt.Errorf("unknown reference kind %q", kind)
	}
	id, err := common.ToUUID(raw)
	if err != nil {
		return "", pgtype.UUID{}, fmt.Errorf("invalid reference id: %w", err)
	}
	return kind, id, nil
}

// Querier lists the read operations checkout creation needs.
type Querier interface {
	GetPaymentQuoteByID(ctx context.Context, id pgtype.UUID) (dbgen.PaymentQuote, error)
	GetJudgeByID(ctx context.Context, id pgtype.UUID) (dbgen.Judge, error)
}

// Service creates hosted-checkout sessions for supplier quotes and judge fees.
// It never marks anything paid: settlement happens exclusively via webhook.
type Service struct {
	Q          Querier
	Provider   Provider
	Rules      rules.Rules
	SessionTTL time.Duration
}

func (s *Service) sessionTTLSeconds() int64 {
	if s.SessionTTL <= 0 {
		return int64((24 * time.Hour).Seconds())
	}
	return int64(s.SessionTTL.Seconds())
}

// CreateSupplierCheckout opens a checkout session for a pending payment quote.
func (s *Service) CreateSupplierCheckout(ctx context.Context, quoteID pgtype.UUID) (SessionResponse, error) {
	quote, err := s.Q.GetPaymentQuoteByID(ctx, quoteID)
	if err != nil {
		return SessionResponse{}, err
	}
	if quote.Status != dbgen.QuoteStatusPending {
		return SessionResponse{}, &common.AppError{
			Code:       "QUOTE_NOT_PENDING",
			Message:    fmt.Sprintf("quote is %s, only pending quotes can be paid", quote.Status),
			HTTPStatus: http.StatusConflict,
		}
	}
	if quote.AmountDueCents <= 0 {
		return SessionResponse{}, &common.AppError{
			Code:       "QUOTE_AMOUNT_INVALID",
			Message:    "quote amount must be positive",
			HTTPStatus: http.StatusUnprocessableEntity,
		}
	}
	return s.Provider.CreateCheckoutSession(ctx, SessionRequest{
		Reference:    QuoteReference(quote.ID),
		AmountCents:  quote.AmountDueCents,
		Description:  fmt.Sprintf("Scoville Cup %d entry fees (%d sauces)", quote.Year, quote.EntryCount),
		ExpiresAtSec: s.sessionTTLSeconds(),
	})
}

// CreateJudgeCheckout opens a checkout session for a community judge's
// participation fee. Pro, supplier and admin judges owe nothing.
func (s *Service) CreateJudgeCheckout(ctx context.Context, judgeID pgtype.UUID) (SessionResponse, error) {
	judge, err := s.Q.GetJudgeByID(ctx, judgeID)
	if err != nil {
		return SessionResponse{}, err
	}
	if judge.Type != dbgen.JudgeTypeCommunity {
		return SessionResponse{}, &common.AppError{
			Code:       "JUDGE_FEE_NOT_DUE",
			Message:    fmt.Sprintf("%s judges do not pay a participation fee", judge.Type),
			HTTPStatus: http.StatusConflict,
		}
	}
	if judge.PaymentStatus == dbgen.PaymentStatusPaid {
		return SessionResponse{}, &common.AppError{
			Code:       "JUDGE_ALREADY_PAID",
			Message:    "judge fee already settled",
			HTTPStatus: http.StatusConflict,
		}
	}
	return s.Provider.CreateCheckoutSession(ctx, SessionRequest{
		Reference:    JudgeReference(judge.ID),
		AmountCents:  s.Rules.JudgeFeeCents,
		Description:  fmt.Sprintf("Scoville Cup %d community judge fee", s.Rules.Year),
		ExpiresAtSec: s.sessionTTLSeconds(),
	})
}
