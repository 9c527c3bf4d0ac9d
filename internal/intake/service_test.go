package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/qr"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

type stubStore struct {
	counters        map[string]int32
	sauces          []dbgen.Sauce
	quotes          []dbgen.PaymentQuote
	superseded      int
	assigned        []dbgen.AssignSaucesToQuoteParams
	updatedDetails  []dbgen.UpdateSauceDetailsParams
	qrUpdates       []dbgen.UpdateSauceQRCodeURLParams
	imageUpdates    []dbgen.UpdateSauceImagePathParams
	supplierErr     error
	writes          int
	participationBy map[string]int32
	suppliers       map[string]dbgen.Supplier
}

func newStubStore() *stubStore {
	return &stubStore{
		counters:        map[string]int32{},
		participationBy: map[string]int32{},
		suppliers:       map[string]dbgen.Supplier{},
	}
}

func (s *stubStore) UpsertSupplier(_ context.Context, arg dbgen.UpsertSupplierParams) (dbgen.Supplier, error) {
	s.writes++
	if s.supplierErr != nil {
		return dbgen.Supplier{}, s.supplierErr
	}
	if existing, ok := s.suppliers[arg.Email]; ok {
		return existing, nil
	}
	supplier := dbgen.Supplier{ID: common.NewUUID(), Email: arg.Email, BrandName: arg.BrandName}
	s.suppliers[arg.Email] = supplier
	return supplier, nil
}

func (s *stubStore) UpsertJudge(_ context.Context, arg dbgen.UpsertJudgeParams) (dbgen.Judge, error) {
	s.writes++
	return dbgen.Judge{ID: common.NewUUID(), Email: arg.Email, Type: arg.Type, Active: arg.Active, PaymentStatus: arg.PaymentStatus}, nil
}

func (s *stubStore) UpsertJudgeParticipation(_ context.Context, arg dbgen.UpsertJudgeParticipationParams) (dbgen.JudgeParticipation, error) {
	s.writes++
	return dbgen.JudgeParticipation{Email: arg.Email, Year: arg.Year, Accepted: arg.Accepted}, nil
}

func (s *stubStore) UpsertSupplierParticipation(_ context.Context, arg dbgen.UpsertSupplierParticipationParams) (dbgen.SupplierParticipation, error) {
	s.writes++
	s.participationBy[common.UUIDString(arg.SupplierID)] = arg.SauceCount
	return dbgen.SupplierParticipation{SupplierID: arg.SupplierID, Year: arg.Year, SauceCount: arg.SauceCount}, nil
}

func (s *stubStore) FindUnpaidSauceByNameCategory(_ context.Context, arg dbgen.FindUnpaidSauceByNameCategoryParams) (dbgen.Sauce, error) {
	for _, sauce := range s.sauces {
		if sauce.SupplierID == arg.SupplierID &&
			strings.EqualFold(sauce.Name, arg.Name) &&
			sauce.Category == arg.Category &&
			sauce.PaymentStatus == dbgen.PaymentStatusPendingPayment {
			return sauce, nil
		}
	}
	return dbgen.Sauce{}, pgx.ErrNoRows
}

func (s *stubStore) ListUnpaidSaucesBySupplier(_ context.Context, supplierID pgtype.UUID) ([]dbgen.Sauce, error) {
	var unpaid []dbgen.Sauce
	for _, sauce := range s.sauces {
		if sauce.SupplierID == supplierID && sauce.PaymentStatus == dbgen.PaymentStatusPendingPayment {
			unpaid = append(unpaid, sauce)
		}
	}
	return unpaid, nil
}

func (s *stubStore) NextSauceCodeNumber(_ context.Context, letter string) (int32, error) {
	s.counters[letter]++
	return s.counters[letter], nil
}

func (s *stubStore) CreateSauce(_ context.Context, arg dbgen.CreateSauceParams) (dbgen.Sauce, error) {
	s.writes++
	sauce := dbgen.Sauce{
		ID:            common.NewUUID(),
		SupplierID:    arg.SupplierID,
		Name:          arg.Name,
		Category:      arg.Category,
		SauceCode:     arg.SauceCode,
		Status:        dbgen.SauceStatusRegistered,
		PaymentStatus: dbgen.PaymentStatusPendingPayment,
	}
	s.sauces = append(s.sauces, sauce)
	return sauce, nil
}

func (s *stubStore) UpdateSauceDetails(_ context.Context, arg dbgen.UpdateSauceDetailsParams) (dbgen.Sauce, error) {
	s.writes++
	s.updatedDetails = append(s.updatedDetails, arg)
	for _, sauce := range s.sauces {
		if sauce.ID == arg.ID {
			sauce.Ingredients = arg.Ingredients
			sauce.Allergens = arg.Allergens
			return sauce, nil
		}
	}
	return dbgen.Sauce{}, pgx.ErrNoRows
}

func (s *stubStore) SupersedePendingQuotes(context.Context, pgtype.UUID) error {
	s.writes++
	s.superseded++
	return nil
}

func (s *stubStore) CreatePaymentQuote(_ context.Context, arg dbgen.CreatePaymentQuoteParams) (dbgen.PaymentQuote, error) {
	s.writes++
	quote := dbgen.PaymentQuote{
		ID:             common.NewUUID(),
		SupplierID:     arg.SupplierID,
		Year:           arg.Year,
		EntryCount:     arg.EntryCount,
		DiscountBps:    arg.DiscountBps,
		SubtotalCents:  arg.SubtotalCents,
		DiscountCents:  arg.DiscountCents,
		AmountDueCents: arg.AmountDueCents,
		Status:         dbgen.QuoteStatusPending,
	}
	s.quotes = append(s.quotes, quote)
	return quote, nil
}

func (s *stubStore) AssignSaucesToQuote(_ context.Context, arg dbgen.AssignSaucesToQuoteParams) error {
	s.writes++
	s.assigned = append(s.assigned, arg)
	return nil
}

func (s *stubStore) UpdateSauceQRCodeURL(_ context.Context, arg dbgen.UpdateSauceQRCodeURLParams) error {
	s.qrUpdates = append(s.qrUpdates, arg)
	return nil
}

func (s *stubStore) UpdateSauceImagePath(_ context.Context, arg dbgen.UpdateSauceImagePathParams) error {
	s.imageUpdates = append(s.imageUpdates, arg)
	return nil
}

func (s *stubStore) GetSauceByID(_ context.Context, id pgtype.UUID) (dbgen.Sauce, error) {
	for _, sauce := range s.sauces {
		if sauce.ID == id {
			return sauce, nil
		}
	}
	return dbgen.Sauce{}, pgx.ErrNoRows
}

func (s *stubStore) GetSupplierByEmail(context.Context, string) (dbgen.Supplier, error) {
	return dbgen.Supplier{}, pgx.ErrNoRows
}

func (s *stubStore) DeleteUnpaidSauce(context.Context, dbgen.DeleteUnpaidSauceParams) (int64, error) {
	return 0, nil
}

type stubDB struct {
	store    *stubStore
	beginErr error
}

func (d stubDB) InTx(_ context.Context, fn func(Store) error) error {
	if d.beginErr != nil {
		return d.beginErr
	}
	return fn(d.store)
}

type stubAccounts struct {
	calls int
	fail  error
}

func (a *stubAccounts) EnsureAccount(_ context.Context, email string) (dbgen.AuthAccount, error) {
	a.calls++
	if a.fail != nil {
		return dbgen.AuthAccount{}, a.fail
	}
	return dbgen.AuthAccount{ID: common.NewUUID(), Email: strings.ToLower(strings.TrimSpace(email))}, nil
}

type stubMover struct {
	moves map[string]string
	fail  error
}

func (m *stubMover) Move(_ context.Context, src, dst string) error {
	if m.fail != nil {
		return m.fail
	}
	if m.moves == nil {
		m.moves = map[string]string{}
	}
	m.moves[src] = dst
	return nil
}

func newTestService(store *stubStore, accounts *stubAccounts, mover *stubMover) *Service {
	return &Service{
		DB:       stubDB{store: store},
		Q:        store,
		Accounts: accounts,
		Rules:    rules.Default(2026),
		QR: qr.Builder{
			RenderBaseURL: "https://render.example",
			PublicBaseURL: "https://scovillecup.example",
		},
		Images: mover,
	}
}

func entryInput(sauces ...SauceInput) EntryInput {
	return EntryInput{
		BrandName: "Inferno Works",
		Address:   "Chili Street 1, 12345 Hotville",
		Email:     "maria@inferno.example",
		Sauces:    sauces,
	}
}

func sauceInput(name, category string) SauceInput {
	return SauceInput{Name: name, Category: category, Ingredients: "chili, vinegar, salt"}
}

func TestSubmitEntriesHoneypotWritesNothing(t *testing.T) {
	store := newStubStore()
	accounts := &stubAccounts{}
	svc := newTestService(store, accounts, &stubMover{})

	in := entryInput(sauceInput("Lava", "Hot Chili Sauce"))
	in.Website = "http://spam.example"

	result, err := svc.SubmitEntries(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.Honeypot)
	assert.Zero(t, store.writes, "honeypot submissions must not touch the database")
	assert.Zero(t, accounts.calls, "honeypot submissions must not provision accounts")
}

func TestSubmitEntriesRequiresSauces(t *testing.T) {
	svc := newTestService(newStubStore(), &stubAccounts{}, &stubMover{})
	_, err := svc.SubmitEntries(context.Background(), entryInput())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StepValidate+":"), err.Error())
}

func TestSubmitEntriesRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(newStubStore(), &stubAccounts{}, &stubMover{})
	_, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("Lava", "Molten Sauce")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestSubmitEntriesProvisionsBatch(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store, &stubAccounts{}, &stubMover{})

	result, err := svc.SubmitEntries(context.Background(), entryInput(
		sauceInput("Lava", "Hot Chili Sauce"),
		sauceInput("Magma", "Hot Chili Sauce"),
		sauceInput("Ember", "Hot Chili Sauce"),
	))
	require.NoError(t, err)
	require.Len(t, result.Sauces, 3)
	assert.Equal(t, "H001", result.Sauces[0].Code)
	assert.Equal(t, "H002", result.Sauces[1].Code)
	assert.Equal(t, "H003", result.Sauces[2].Code)

	assert.Equal(t, int32(3), result.Quote.EntryCount)
	assert.Equal(t, int32(400), result.Quote.DiscountBps)
	assert.Equal(t, int64(15000), result.Quote.SubtotalCents)
	assert.Equal(t, int64(600), result.Quote.DiscountCents)
	assert.Equal(t, int64(14400), result.Quote.AmountDueCents)

	assert.Equal(t, 1, store.superseded, "previous pending quotes must be superseded")
	require.Len(t, store.assigned, 1)
	assert.Len(t, store.qrUpdates, 3, "every new sauce gets a QR code URL")
	assert.Equal(t, int32(3), store.participationBy[result.SupplierID])
}

func TestSubmitEntriesReusesUnpaidDuplicate(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store, &stubAccounts{}, &stubMover{})

	first, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("Lava", "Hot Chili Sauce")))
	require.NoError(t, err)

	second, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("lava", "Hot Chili Sauce")))
	require.NoError(t, err)

	require.Len(t, second.Sauces, 1)
	assert.Equal(t, first.Sauces[0].Code, second.Sauces[0].Code, "retried submission must reuse the allocated code")
	assert.Len(t, store.updatedDetails, 1)
	assert.Equal(t, int32(1), store.counters["H"], "no second code may be allocated for the duplicate")
}

func TestSubmitEntriesPricesFullUnpaidSet(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store, &stubAccounts{}, &stubMover{})

	first, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("Lava", "Hot Chili Sauce")))
	require.NoError(t, err)
	assert.Equal(t, int32(1), first.Quote.EntryCount)
	assert.Equal(t, int64(5000), first.Quote.AmountDueCents)

	// A second batch links all still-unpaid sauces to the new quote, so the
	// quote must price them all, not just the batch.
	second, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("Magma", "Hot Chili Sauce")))
	require.NoError(t, err)
	assert.Equal(t, int32(2), second.Quote.EntryCount)
	assert.Equal(t, int32(200), second.Quote.DiscountBps)
	assert.Equal(t, int64(10000), second.Quote.SubtotalCents)
	assert.Equal(t, int64(9800), second.Quote.AmountDueCents)
	assert.Equal(t, 2, store.superseded)
}

func TestSubmitEntriesTagsFailingStep(t *testing.T) {
	store := newStubStore()
	store.supplierErr = errors.New("connection reset")
	svc := newTestService(store, &stubAccounts{}, &stubMover{})

	_, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("Lava", "Hot Chili Sauce")))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StepSupplier+":"), err.Error())
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSubmitEntriesAccountFailureTagged(t *testing.T) {
	svc := newTestService(newStubStore(), &stubAccounts{fail: errors.New("auth provider down")}, &stubMover{})
	_, err := svc.SubmitEntries(context.Background(), entryInput(sauceInput("Lava", "Hot Chili Sauce")))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StepAccount+":"), err.Error())
}

func TestSubmitEntriesMovesImages(t *testing.T) {
	store := newStubStore()
	mover := &stubMover{}
	svc := newTestService(store, &stubAccounts{}, mover)

	in := entryInput(SauceInput{
		Name:        "Lava",
		Category:    "Hot Chili Sauce",
		Ingredients: "chili",
		ImagePath:   "pending/upload-123.jpg",
	})
	result, err := svc.SubmitEntries(context.Background(), in)
	require.NoError(t, err)

	expected := fmt.Sprintf("suppliers/%s/upload-123.jpg", result.SupplierID)
	assert.Equal(t, expected, mover.moves["pending/upload-123.jpg"])
	require.Len(t, store.imageUpdates, 1)
	assert.Equal(t, expected, result.Sauces[0].ImagePath)
}

func TestSubmitEntriesImageFailureTaggedButCommitted(t *testing.T) {
	store := newStubStore()
	mover := &stubMover{fail: errors.New("bucket unavailable")}
	svc := newTestService(store, &stubAccounts{}, mover)

	in := entryInput(SauceInput{
		Name:        "Lava",
		Category:    "Hot Chili Sauce",
		Ingredients: "chili",
		ImagePath:   "pending/upload-123.jpg",
	})
	_, err := svc.SubmitEntries(context.Background(), in)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StepImages+":"), err.Error())
	assert.NotEmpty(t, store.sauces, "committed rows stay in place when a later step fails")
}

func TestApplyJudgeMapsExperience(t *testing.T) {
	tests := []struct {
		experience string
		wantType   dbgen.JudgeType
	}{
		{"Professional Chef", dbgen.JudgeTypePro},
		{"food industry professional", dbgen.JudgeTypePro},
		{"hobby cook", dbgen.JudgeTypeCommunity},
		{"first timer", dbgen.JudgeTypeCommunity},
	}
	for _, tc := range tests {
		t.Run(tc.experience, func(t *testing.T) {
			svc := newTestService(newStubStore(), &stubAccounts{}, &stubMover{})
			result, err := svc.ApplyJudge(context.Background(), JudgeInput{
				Name:       "Alex Judge",
				Email:      "alex@example.com",
				Address:    "Main Street 5",
				Zip:        "12345",
				City:       "Hotville",
				Country:    "DE",
				Experience: tc.experience,
			})
			require.NoError(t, err)
			assert.Equal(t, string(tc.wantType), result.Type)
			assert.NotEmpty(t, result.JudgeID)
		})
	}
}

func TestApplyJudgeValidatesInput(t *testing.T) {
	svc := newTestService(newStubStore(), &stubAccounts{}, &stubMover{})
	_, err := svc.ApplyJudge(context.Background(), JudgeInput{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StepValidate+":"), err.Error())
}
