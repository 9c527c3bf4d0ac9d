package payment

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

type stubStore struct {
	quotes map[string]dbgen.PaymentQuote
	judges map[string]dbgen.Judge

	quotesSucceeded []string
	saucesPaid      []string
	judgesPaid      []string
	events          []dbgen.InsertPaymentEventParams
}

func newStubStore() *stubStore {
	return &stubStore{
		quotes: map[string]dbgen.PaymentQuote{},
		judges: map[string]dbgen.Judge{},
	}
}

func (s *stubStore) GetPaymentQuoteByID(_ context.Context, id pgtype.UUID) (dbgen.PaymentQuote, error) {
	quote, ok := s.quotes[common.UUIDString(id)]
	if !ok {
		return dbgen.PaymentQuote{}, pgx.ErrNoRows
	}
	return quote, nil
}

func (s *stubStore) MarkQuoteSucceeded(_ context.Context, id pgtype.UUID) (dbgen.PaymentQuote, error) {
	key := common.UUIDString(id)
	quote, ok := s.quotes[key]
	if !ok || quote.Status != dbgen.QuoteStatusPending {
		return dbgen.PaymentQuote{}, pgx.ErrNoRows
	}
	quote.Status = dbgen.QuoteStatusSucceeded
	s.quotes[key] = quote
	s.quotesSucceeded = append(s.quotesSucceeded, key)
	return quote, nil
}

func (s *stubStore) MarkSaucesPaidByQuote(_ context.Context, quoteID pgtype.UUID) error {
	s.saucesPaid = append(s.saucesPaid, common.UUIDString(quoteID))
	return nil
}

func (s *stubStore) GetJudgeByID(_ context.Context, id pgtype.UUID) (dbgen.Judge, error) {
	judge, ok := s.judges[common.UUIDString(id)]
	if !ok {
		return dbgen.Judge{}, pgx.ErrNoRows
	}
	return judge, nil
}

func (s *stubStore) MarkJudgePaid(_ context.Context, id pgtype.UUID) error {
	key := common.UUIDString(id)
	judge, ok := s.judges[key]
	if !ok {
		return pgx.ErrNoRows
	}
	judge.PaymentStatus = dbgen.PaymentStatusPaid
	s.judges[key] = judge
	s.judgesPaid = append(s.judgesPaid, key)
	return nil
}

func (s *stubStore) InsertPaymentEvent(_ context.Context, arg dbgen.InsertPaymentEventParams) error {
	s.events = append(s.events, arg)
	return nil
}

func (s *stubStore) addQuote(status dbgen.QuoteStatus, amount int64) dbgen.PaymentQuote {
	quote := dbgen.PaymentQuote{
		ID:             common.NewUUID(),
		SupplierID:     common.NewUUID(),
		Year:           2026,
		EntryCount:     3,
		AmountDueCents: amount,
		Status:         status,
	}
	s.quotes[common.UUIDString(quote.ID)] = quote
	return quote
}

func (s *stubStore) addJudge(judgeType dbgen.JudgeType, paymentStatus dbgen.PaymentStatus) dbgen.Judge {
	judge := dbgen.Judge{
		ID:            common.NewUUID(),
		Email:         "judge@example.com",
		Type:          judgeType,
		Active:        true,
		PaymentStatus: paymentStatus,
	}
	s.judges[common.UUIDString(judge.ID)] = judge
	return judge
}

func paidResult(amount int64) WebhookVerifyResult {
	return WebhookVerifyResult{
		Valid:           true,
		Amount:          amount,
		Status:          StatusPaid,
		ProviderPayload: []byte(`{"status":"settlement"}`),
	}
}

func TestSettleQuotePaid(t *testing.T) {
	store := newStubStore()
	quote := store.addQuote(dbgen.QuoteStatusPending, 14400)

	out, err := Settle(context.Background(), store, "hotpay", RefKindQuote, quote.ID, paidResult(14400))
	require.NoError(t, err)

	assert.True(t, out.Settled)
	assert.Equal(t, quote.SupplierID, out.SupplierID)
	assert.Equal(t, int64(14400), out.AmountCents)
	assert.Equal(t, []string{common.UUIDString(quote.ID)}, store.quotesSucceeded)
	assert.Equal(t, []string{common.UUIDString(quote.ID)}, store.saucesPaid)

	require.Len(t, store.events, 1)
	assert.Equal(t, quote.ID, store.events[0].QuoteID)
	assert.Equal(t, "hotpay", store.events[0].Provider.String)
	assert.Equal(t, StatusPaid, store.events[0].Status.String)
}

func TestSettleQuoteAmountMismatch(t *testing.T) {
	store := newStubStore()
	quote := store.addQuote(dbgen.QuoteStatusPending, 14400)

	_, err := Settle(context.Background(), store, "hotpay", RefKindQuote, quote.ID, paidResult(100))
	require.Error(t, err)
	assert.ErrorContains(t, err, "amount mismatch")
	assert.Empty(t, store.quotesSucceeded)
	assert.Empty(t, store.events)
}

func TestSettleQuoteAlreadySucceededIsIdempotent(t *testing.T) {
	store := newStubStore()
	quote := store.addQuote(dbgen.QuoteStatusSucceeded, 14400)

	out, err := Settle(context.Background(), store, "hotpay", RefKindQuote, quote.ID, paidResult(14400))
	require.NoError(t, err)

	assert.False(t, out.Settled)
	assert.Empty(t, store.quotesSucceeded)
	assert.Empty(t, store.saucesPaid)
	assert.Len(t, store.events, 1)
}

func TestSettleQuoteFailedStatusOnlyRecordsEvent(t *testing.T) {
	store := newStubStore()
	quote := store.addQuote(dbgen.QuoteStatusPending, 14400)

	result := paidResult(14400)
	result.Status = StatusFailed

	out, err := Settle(context.Background(), store, "hotpay", RefKindQuote, quote.ID, result)
	require.NoError(t, err)

	assert.False(t, out.Settled)
	assert.Empty(t, store.quotesSucceeded)
	require.Len(t, store.events, 1)
	assert.Equal(t, StatusFailed, store.events[0].Status.String)
}

func TestSettleJudgePaid(t *testing.T) {
	store := newStubStore()
	judge := store.addJudge(dbgen.JudgeTypeCommunity, dbgen.PaymentStatusPendingPayment)

	out, err := Settle(context.Background(), store, "hotpay", RefKindJudge, judge.ID, paidResult(2500))
	require.NoError(t, err)

	assert.True(t, out.Settled)
	assert.Equal(t, []string{common.UUIDString(judge.ID)}, store.judgesPaid)
	require.Len(t, store.events, 1)
	assert.False(t, store.events[0].QuoteID.Valid, "judge settlements carry no quote id")
}

func TestSettleJudgeAlreadyPaidIsIdempotent(t *testing.T) {
	store := newStubStore()
	judge := store.addJudge(dbgen.JudgeTypeCommunity, dbgen.PaymentStatusPaid)

	out, err := Settle(context.Background(), store, "hotpay", RefKindJudge, judge.ID, paidResult(2500))
	require.NoError(t, err)

	assert.False(t, out.Settled)
	assert.Empty(t, store.judgesPaid)
	assert.Len(t, store.events, 1)
}

func TestSettleUnknownReferenceNotFound(t *testing.T) {
	store := newStubStore()
	_, err := Settle(context.Background(), store, "hotpay", RefKindQuote, common.NewUUID(), paidResult(100))
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestParseReferenceRoundTrip(t *testing.T) {
	id := common.NewUUID()

	kind, parsed, err := ParseReference(QuoteReference(id))
	require.NoError(t, err)
	assert.Equal(t, RefKindQuote, kind)
	assert.Equal(t, id, parsed)

	kind, parsed, err = ParseReference(JudgeReference(id))
	require.NoError(t, err)
	assert.Equal(t, RefKindJudge, kind)
	assert.Equal(t, id, parsed)

	_, _, err = ParseReference("no-separator")
	require.Error(t, err)
	_, _, err = ParseReference("order:" + common.UUIDString(id))
	require.Error(t, err)
	_, _, err = ParseReference("quote:not-a-uuid")
	require.Error(t, err)
}

func TestWebhookRejectsReplay(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	provider := Hotpay{SecretKey: "test-secret"}
	// A validly signed body with a malformed reference: the replay check
	// fires before reference parsing, so no database is needed.
	body := signedHotpayBody(t, provider, "bogus-reference", "settlement", "100")

	h := Webhook{
		Q:         &dbgen.Queries{},
		Providers: map[string]Provider{"hotpay": provider},
		Replay:    client,
		ReplayTTL: time.Minute,
	}

	first := postWebhook(t, h, body)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := postWebhook(t, h, body)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "REPLAY")
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	provider := Hotpay{SecretKey: "test-secret"}
	h := Webhook{
		Q:         &dbgen.Queries{},
		Providers: map[string]Provider{"hotpay": provider},
	}

	rec := postWebhook(t, h, []byte(`{"reference":"quote:x","status":"settlement","amount":"1","signature":"bad"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookUnknownProvider(t *testing.T) {
	h := Webhook{Q: &dbgen.Queries{}, Providers: map[string]Provider{}}
	rec := postWebhook(t, h, []byte(`{}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func postWebhook(t *testing.T, h Webhook, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/webhooks/payment/{provider}", h.Handle)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment/hotpay", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
