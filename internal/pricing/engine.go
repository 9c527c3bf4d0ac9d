package pricing

import (
	"github.com/scovillecup/backend-scoville/internal/rules"
)

// Money represents a monetary value stored in cents.
type Money = int64

// Quote aggregates the computed components of a payment quote.
type Quote struct {
	EntryCount  int
	DiscountBps int
	Subtotal    Money
	Discount    Money
	AmountDue   Money
}

// DiscountBps returns the discount in basis points for the given entry count.
// Counts above the top band reuse the top band's rate; the function is total
// over all positive counts.
func DiscountBps(bands []rules.Band, entryCount int) int {
	if entryCount < 1 || len(bands) == 0 {
		return 0
	}
	for _, band := range bands {
		if entryCount < band.MinCount {
			continue
		}
		if band.MaxCount == 0 || entryCount <= band.MaxCount {
			return band.DiscountBps
		}
	}
	return bands[len(bands)-1].DiscountBps
}

// Compute derives the full quote for an entry batch. The discount is rounded
// half-up to whole cents before subtraction so amount due never goes negative.
func Compute(r rules.Rules, entryCount int) Quote {
	if entryCount < 0 {
		entryCount = 0
	}
	bps := DiscountBps(r.DiscountBands, entryCount)
	subtotal := Money(entryCount) * r.BasePriceCents
	discount := (subtotal*Money(bps) + 5000) / 10000
	if discount > subtotal {
		discount = subtotal
	}
	return Quote{
		EntryCount:  entryCount,
		DiscountBps: bps,
		Subtotal:    subtotal,
		Discount:    discount,
		AmountDue:   subtotal - discount,
	}
}
