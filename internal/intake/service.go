// Package intake implements the public submission flows: supplier entry
// batches and judge applications.
package intake

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/events"
	"github.com/scovillecup/backend-scoville/internal/pricing"
	"github.com/scovillecup/backend-scoville/internal/qr"
	"github.com/scovillecup/backend-scoville/internal/rules"
	"github.com/scovillecup/backend-scoville/internal/saucecode"
)

// Step labels prefix any orchestration error so a failed submission names the
// exact step that broke. Committed steps are not rolled back by later ones.
const (
	StepValidate              = "validate"
	StepAccount               = "account"
	StepSupplier              = "supplier"
	StepJudge                 = "judge"
	StepJudgeParticipation    = "judge_participation"
	StepSupplierParticipation = "supplier_participation"
	StepSauces                = "sauces"
	StepQuote                 = "quote"
	StepLinkSauces            = "link_sauces"
	StepQRCodes               = "qr_codes"
	StepImages                = "images"
)

func stepErr(step string, err error) error {
	return fmt.Errorf("%s: %w", step, err)
}

// Store is the query surface the orchestrator writes through. The generated
// Queries type satisfies it, both directly and transaction-scoped.
type Store interface {
	UpsertSupplier(ctx context.Context, arg dbgen.UpsertSupplierParams) (dbgen.Supplier, error)
	UpsertJudge(ctx context.Context, arg dbgen.UpsertJudgeParams) (dbgen.Judge, error)
	UpsertJudgeParticipation(ctx context.Context, arg dbgen.UpsertJudgeParticipationParams) (dbgen.JudgeParticipation, error)
	UpsertSupplierParticipation(ctx context.Context, arg dbgen.UpsertSupplierParticipationParams) (dbgen.SupplierParticipation, error)
	FindUnpaidSauceByNameCategory(ctx context.Context, arg dbgen.FindUnpaidSauceByNameCategoryParams) (dbgen.Sauce, error)
	ListUnpaidSaucesBySupplier(ctx context.Context, supplierID pgtype.UUID) ([]dbgen.Sauce, error)
	NextSauceCodeNumber(ctx context.Context, letter string) (int32, error)
	CreateSauce(ctx context.Context, arg dbgen.CreateSauceParams) (dbgen.Sauce, error)
	UpdateSauceDetails(ctx context.Context, arg dbgen.UpdateSauceDetailsParams) (dbgen.Sauce, error)
	SupersedePendingQuotes(ctx context.Context, supplierID pgtype.UUID) error
	CreatePaymentQuote(ctx context.Context, arg dbgen.CreatePaymentQuoteParams) (dbgen.PaymentQuote, error)
	AssignSaucesToQuote(ctx context.Context, arg dbgen.AssignSaucesToQuoteParams) error
	UpdateSauceQRCodeURL(ctx context.Context, arg dbgen.UpdateSauceQRCodeURLParams) error
	UpdateSauceImagePath(ctx context.Context, arg dbgen.UpdateSauceImagePathParams) error
	GetSauceByID(ctx context.Context, id pgtype.UUID) (dbgen.Sauce, error)
	GetSupplierByEmail(ctx context.Context, email string) (dbgen.Supplier, error)
	DeleteUnpaidSauce(ctx context.Context, arg dbgen.DeleteUnpaidSauceParams) (int64, error)
}

// DB opens a transaction exposing a Store scoped to it.
type DB interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

type poolDB struct {
	pool *pgxpool.Pool
	q    *dbgen.Queries
}

// NewDB wraps a pgx pool so orchestration steps run in one transaction.
func NewDB(pool *pgxpool.Pool, q *dbgen.Queries) DB {
	return poolDB{pool: pool, q: q}
}

func (d poolDB) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(d.q.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Accounts provisions auth identities for submitted emails.
type Accounts interface {
	EnsureAccount(ctx context.Context, email string) (dbgen.AuthAccount, error)
}

// ImageMover relocates uploaded sauce images from the temp holding path.
type ImageMover interface {
	Move(ctx context.Context, sourceKey, destinationKey string) error
}

// SauceInput is one sauce in a supplier entry batch.
type SauceInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required"`
	Ingredients string `json:"ingredients" validate:"required"`
	Allergens   string `json:"allergens"`
	WebshopLink string `json:"webshopLink" validate:"omitempty,url"`
	ImagePath   string `json:"imagePath"`
}

// EntryInput is a supplier entry batch submission.
type EntryInput struct {
	BrandName   string       `json:"brand" validate:"required,max=200"`
	ContactName string       `json:"contactName"`
	Address     string       `json:"address" validate:"required"`
	Email       string       `json:"email" validate:"required,email"`
	Sauces      []SauceInput `json:"sauces" validate:"dive"`
	// Website is a hidden anti-bot field. Humans never see it; any value
	// means the submission came from an automated form filler.
	Website string `json:"website"`
}

// ResolvedSauce reports one provisioned sauce back to the submitter.
type ResolvedSauce struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	ImagePath string `json:"imagePath,omitempty"`
}

// QuoteSummary reports the persisted payment quote.
type QuoteSummary struct {
	ID             string `json:"id"`
	EntryCount     int32  `json:"entryCount"`
	DiscountBps    int32  `json:"discountBps"`
	SubtotalCents  int64  `json:"subtotalCents"`
	DiscountCents  int64  `json:"discountCents"`
	AmountDueCents int64  `json:"amountDueCents"`
	Status         string `json:"status"`
}

// Result is the outcome of a successful entry submission.
type Result struct {
	SupplierID string          `json:"supplier_id"`
	Sauces     []ResolvedSauce `json:"sauces"`
	Quote      QuoteSummary    `json:"payment"`
	// Honeypot marks a silently-dropped submission; nothing was written.
	Honeypot bool `json:"-"`
}

// Service orchestrates intake submissions.
type Service struct {
	DB       DB
	Q        Store
	Accounts Accounts
	Rules    rules.Rules
	QR       qr.Builder
	Images   ImageMover
	Events   *events.Bus
	Log      zerolog.Logger
	Validate *validator.Validate
}

func (s *Service) validate() *validator.Validate {
	if s.Validate == nil {
		s.Validate = validator.New()
	}
	return s.Validate
}

// SubmitEntries runs the entry intake sequence. DB steps share one
// transaction; QR generation and image moves happen after commit, so a
// failure there still returns a step-tagged error while the committed rows
// stay in place.
func (s *Service) SubmitEntries(ctx context.Context, in EntryInput) (Result, error) {
	if strings.TrimSpace(in.Website) != "" {
		// Bots that fill the hidden field get a success response and no
		// writes, so they cannot tell the submission was dropped.
		s.Log.Warn().Str("email", in.Email).Msg("honeypot triggered, dropping submission")
		return Result{Honeypot: true}, nil
	}
	if len(in.Sauces) == 0 {
		return Result{}, stepErr(StepValidate, errors.New("at least one sauce is required"))
	}
	if err := s.validate().Struct(in); err != nil {
		return Result{}, stepErr(StepValidate, err)
	}
	for _, sauce := range in.Sauces {
		if !s.Rules.ValidCategory(sauce.Category) {
			return Result{}, stepErr(StepValidate, fmt.Errorf("unknown category %q", sauce.Category))
		}
	}

	account, err := s.Accounts.EnsureAccount(ctx, in.Email)
	if err != nil {
		return Result{}, stepErr(StepAccount, err)
	}

	var (
		result  Result
		created []dbgen.Sauce
		images  = map[string]string{} // sauce id -> temp upload path
	)
	err = s.DB.InTx(ctx, func(store Store) error {
		supplier, err := store.UpsertSupplier(ctx, dbgen.UpsertSupplierParams{
			Email:       account.Email,
			BrandName:   strings.TrimSpace(in.BrandName),
			ContactName: toText(in.ContactName),
			Address:     toText(in.Address),
		})
		if err != nil {
			return stepErr(StepSupplier, err)
		}

		// Suppliers judge other sauces without paying the judge fee.
		if _, err := store.UpsertJudge(ctx, dbgen.UpsertJudgeParams{
			Email:         account.Email,
			Name:          toText(in.ContactName),
			Type:          dbgen.JudgeTypeSupplier,
			Active:        true,
			PaymentStatus: dbgen.PaymentStatusPaid,
			Address:       toText(in.Address),
		}); err != nil {
			return stepErr(StepJudge, err)
		}

		if _, err := store.UpsertJudgeParticipation(ctx, dbgen.UpsertJudgeParticipationParams{
			Email:          account.Email,
			Year:           int32(s.Rules.Year),
			Accepted:       true,
			Classification: toText(string(dbgen.JudgeTypeSupplier)),
		}); err != nil {
			return stepErr(StepJudgeParticipation, err)
		}

		if _, err := store.UpsertSupplierParticipation(ctx, dbgen.UpsertSupplierParticipationParams{
			SupplierID: supplier.ID,
			Year:       int32(s.Rules.Year),
			SauceCount: int32(len(in.Sauces)),
		}); err != nil {
			return stepErr(StepSupplierParticipation, err)
		}

		batch := saucecode.NewBatch(store, s.Rules)
		resolved := make([]ResolvedSauce, 0, len(in.Sauces))
		for _, input := range in.Sauces {
			sauce, reused, err := s.resolveSauce(ctx, store, batch, supplier.ID, input)
			if err != nil {
				return stepErr(StepSauces, err)
			}
			if !reused {
				created = append(created, sauce)
			}
			if strings.TrimSpace(input.ImagePath) != "" {
				images[common.UUIDString(sauce.ID)] = input.ImagePath
			}
			resolved = append(resolved, ResolvedSauce{
				ID:        common.UUIDString(sauce.ID),
				Name:      sauce.Name,
				Code:      sauce.SauceCode,
				ImagePath: sauce.ImagePath.String,
			})
		}

		// A retried submission replaces any still-pending quote instead of
		// leaving two payable quotes for the same sauces.
		if err := store.SupersedePendingQuotes(ctx, supplier.ID); err != nil {
			return stepErr(StepQuote, err)
		}
		// The quote covers every unpaid sauce the supplier has, not just this
		// batch: settlement marks all linked sauces paid, so earlier unpaid
		// entries must be priced in too.
		unpaid, err := store.ListUnpaidSaucesBySupplier(ctx, supplier.ID)
		if err != nil {
			return stepErr(StepQuote, err)
		}
		computed := pricing.Compute(s.Rules, len(unpaid))
		quote, err := store.CreatePaymentQuote(ctx, dbgen.CreatePaymentQuoteParams{
			SupplierID:     supplier.ID,
			Year:           int32(s.Rules.Year),
			EntryCount:     int32(computed.EntryCount),
			DiscountBps:    int32(computed.DiscountBps),
			SubtotalCents:  computed.Subtotal,
			DiscountCents:  computed.Discount,
			AmountDueCents: computed.AmountDue,
		})
		if err != nil {
			return stepErr(StepQuote, err)
		}
		if err := store.AssignSaucesToQuote(ctx, dbgen.AssignSaucesToQuoteParams{
			QuoteID:    quote.ID,
			SupplierID: supplier.ID,
		}); err != nil {
			return stepErr(StepLinkSauces, err)
		}

		result = Result{
			SupplierID: common.UUIDString(supplier.ID),
			Sauces:     resolved,
			Quote: QuoteSummary{
				ID:             common.UUIDString(quote.ID),
				EntryCount:     quote.EntryCount,
				DiscountBps:    quote.DiscountBps,
				SubtotalCents:  quote.SubtotalCents,
				DiscountCents:  quote.DiscountCents,
				AmountDueCents: quote.AmountDueCents,
				Status:         string(quote.Status),
			},
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if err := s.attachQRCodes(ctx, created); err != nil {
		return result, stepErr(StepQRCodes, err)
	}
	if err := s.moveImages(ctx, result.SupplierID, images, &result); err != nil {
		return result, stepErr(StepImages, err)
	}

	s.emitEntryReceived(ctx, result)
	return result, nil
}

// resolveSauce reuses an unpaid duplicate of the same supplier+name+category
// or creates a fresh sauce with a newly allocated code.
func (s *Service) resolveSauce(ctx context.Context, store Store, batch *saucecode.Batch, supplierID pgtype.UUID, in SauceInput) (dbgen.Sauce, bool, error) {
	existing, found, err := batch.FindReusable(ctx, supplierID, in.Name, in.Category)
	if err != nil {
		return dbgen.Sauce{}, false, err
	}
	if found {
		updated, err := store.UpdateSauceDetails(ctx, dbgen.UpdateSauceDetailsParams{
			ID:          existing.ID,
			Ingredients: toText(in.Ingredients),
			Allergens:   toText(in.Allergens),
			WebshopLink: toText(in.WebshopLink),
		})
		if err != nil {
			return dbgen.Sauce{}, false, fmt.Errorf("update duplicate %q: %w", in.Name, err)
		}
		return updated, true, nil
	}
	code, err := batch.Allocate(ctx, in.Category)
	if err != nil {
		return dbgen.Sauce{}, false, err
	}
	sauce, err := store.CreateSauce(ctx, dbgen.CreateSauceParams{
		SupplierID:  supplierID,
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Ingredients: toText(in.Ingredients),
		Allergens:   toText(in.Allergens),
		SauceCode:   code,
		WebshopLink: toText(in.WebshopLink),
	})
	if err != nil {
		return dbgen.Sauce{}, false, fmt.Errorf("create %q: %w", in.Name, err)
	}
	return sauce, false, nil
}

func (s *Service) attachQRCodes(ctx context.Context, created []dbgen.Sauce) error {
	for _, sauce := range created {
		imageURL, err := s.QR.ImageURL(sauce.SauceCode)
		if err != nil {
			return fmt.Errorf("sauce %s: %w", sauce.SauceCode, err)
		}
		if err := s.Q.UpdateSauceQRCodeURL(ctx, dbgen.UpdateSauceQRCodeURLParams{
			ID:        sauce.ID,
			QrCodeUrl: toText(imageURL),
		}); err != nil {
			return fmt.Errorf("sauce %s: %w", sauce.SauceCode, err)
		}
	}
	return nil
}

func (s *Service) moveImages(ctx context.Context, supplierID string, images map[string]string, result *Result) error {
	if len(images) == 0 {
		return nil
	}
	for sauceID, tempPath := range images {
		destination := fmt.Sprintf("suppliers/%s/%s", supplierID, path.Base(tempPath))
		if err := s.Images.Move(ctx, tempPath, destination); err != nil {
			return fmt.Errorf("sauce %s: %w", sauceID, err)
		}
		id, err := common.ToUUID(sauceID)
		if err != nil {
			return err
		}
		if err := s.Q.UpdateSauceImagePath(ctx, dbgen.UpdateSauceImagePathParams{
			ID:        id,
			ImagePath: toText(destination),
		}); err != nil {
			return fmt.Errorf("sauce %s: %w", sauceID, err)
		}
		for i := range result.Sauces {
			if result.Sauces[i].ID == sauceID {
				result.Sauces[i].ImagePath = destination
			}
		}
	}
	return nil
}

func (s *Service) emitEntryReceived(ctx context.Context, result Result) {
	if s.Events == nil {
		return
	}
	supplierID, err := common.ToUUID(result.SupplierID)
	if err != nil {
		return
	}
	codes := make([]string, 0, len(result.Sauces))
	for _, sauce := range result.Sauces {
		codes = append(codes, sauce.Code)
	}
	if _, err := s.Events.Emit(ctx, events.TopicEntryReceived, supplierID, map[string]any{
		"supplierId":     result.SupplierID,
		"sauceCodes":     codes,
		"entryCount":     result.Quote.EntryCount,
		"amountDueCents": result.Quote.AmountDueCents,
	}); err != nil {
		s.Log.Error().Err(err).Msg("emit entry.received")
	}
}

func toText(v string) pgtype.Text {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
