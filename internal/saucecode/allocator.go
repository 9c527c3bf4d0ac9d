package saucecode

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

// Querier captures the database methods required by the allocator.
type Querier interface {
	NextSauceCodeNumber(ctx context.Context, letter string) (int32, error)
	FindUnpaidSauceByNameCategory(ctx context.Context, arg dbgen.FindUnpaidSauceByNameCategoryParams) (dbgen.Sauce, error)
}

// Batch allocates sauce codes for one intake submission. Numbers come from an
// atomic per-letter counter row, so concurrent submissions in the same
// category serialise on the counter instead of racing a read-max query. The
// batch remembers the numbers it issued so codes within one submission are
// strictly increasing.
type Batch struct {
	Q      Querier
	Rules  rules.Rules
	issued map[string]int32
}

// NewBatch constructs an allocator scoped to a single submission.
func NewBatch(q Querier, r rules.Rules) *Batch {
	return &Batch{Q: q, Rules: r, issued: make(map[string]int32)}
}

// FindReusable looks for an unpaid sauce of the same supplier, name and
// category. Retried submissions reuse that record and its code instead of
// allocating a duplicate, which would otherwise double-charge the supplier.
func (b *Batch) FindReusable(ctx context.Context, supplierID pgtype.UUID, name, category string) (dbgen.Sauce, bool, error) {
	sauce, err := b.Q.FindUnpaidSauceByNameCategory(ctx, dbgen.FindUnpaidSauceByNameCategoryParams{
		SupplierID: supplierID,
		Name:       name,
		Category:   category,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Sauce{}, false, nil
		}
		return dbgen.Sauce{}, false, err
	}
	return sauce, true, nil
}

// Allocate issues the next code for the category, e.g. "H042".
func (b *Batch) Allocate(ctx context.Context, category string) (string, error) {
	letter, err := b.Rules.LetterFor(category)
	if err != nil {
		return "", err
	}
	n, err := b.Q.NextSauceCodeNumber(ctx, letter)
	if err != nil {
		return "", fmt.Errorf("next code for %s: %w", letter, err)
	}
	if prev, ok := b.issued[letter]; ok && n <= prev {
		return "", fmt.Errorf("code sequence for %s went backwards: %d after %d", letter, n, prev)
	}
	b.issued[letter] = n
	return Format(letter, n), nil
}

// Format renders a letter and sequence number as a sauce code.
func Format(letter string, n int32) string {
	return fmt.Sprintf("%s%03d", letter, n)
}
