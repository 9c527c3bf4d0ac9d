package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Band maps a contiguous range of entry counts to a discount in basis points.
// MaxCount == 0 marks the open-ended top band.
type Band struct {
	MinCount    int
	MaxCount    int
	DiscountBps int
}

// Weights holds the per-judge-type multipliers applied during score aggregation.
type Weights struct {
	Pro       float64
	Community float64
	Supplier  float64
}

// Rules bundles every tunable constant of one competition year.
type Rules struct {
	Year            int
	BasePriceCents  int64
	JudgeFeeCents   int64
	BottlesPerBox   int
	DiscountBands   []Band
	JudgeWeights    Weights
	CategoryLetters map[string]string
}

// DefaultCategories enumerates the 16 sauce categories and their code letters.
// The letters are fixed: sauce codes already printed on labels must keep
// resolving to the same category across years.
var DefaultCategories = map[string]string{
	"Hot Chili Sauce":         "H",
	"Extra Hot Chili Sauce":   "X",
	"Mild Chili Sauce":        "M",
	"Fruity Chili Sauce":      "F",
	"Smoky Chili Sauce":       "S",
	"BBQ Sauce":               "B",
	"Garlic Sauce":            "G",
	"Ketchup & Tomato Sauce":  "K",
	"Asian Style Sauce":       "A",
	"Caribbean Style Sauce":   "C",
	"Louisiana Style Sauce":   "L",
	"Verde & Green Sauce":     "V",
	"Fermented Sauce":         "E",
	"Honey & Sweet Sauce":     "N",
	"Dry Rub & Seasoning":     "D",
	"Chili Oil":               "O",
}

// Default returns the rule set for the given competition year. Until a year
// overrides something, every year shares the same constants.
func Default(year int) Rules {
	return Rules{
		Year:           year,
		BasePriceCents: 5000,
		JudgeFeeCents:  2500,
		BottlesPerBox:  7,
		DiscountBands: []Band{
			{MinCount: 1, MaxCount: 1, DiscountBps: 0},
			{MinCount: 2, MaxCount: 2, DiscountBps: 200},
			{MinCount: 3, MaxCount: 3, DiscountBps: 400},
			{MinCount: 4, MaxCount: 4, DiscountBps: 600},
			{MinCount: 5, MaxCount: 5, DiscountBps: 800},
			{MinCount: 6, MaxCount: 6, DiscountBps: 1000},
			{MinCount: 7, MaxCount: 10, DiscountBps: 1200},
			{MinCount: 11, MaxCount: 20, DiscountBps: 1400},
			{MinCount: 21, MaxCount: 0, DiscountBps: 1600},
		},
		JudgeWeights:    Weights{Pro: 0.8, Community: 1.5, Supplier: 0.8},
		CategoryLetters: DefaultCategories,
	}
}

// LetterFor resolves the code letter for a category name.
func (r Rules) LetterFor(category string) (string, error) {
	letter, ok := r.CategoryLetters[strings.TrimSpace(category)]
	if !ok {
		return "", fmt.Errorf("unknown category %q", category)
	}
	return letter, nil
}

// ValidCategory reports whether the category name is one of the fixed set.
func (r Rules) ValidCategory(category string) bool {
	_, ok := r.CategoryLetters[strings.TrimSpace(category)]
	return ok
}

// Categories returns the category names sorted alphabetically.
func (r Rules) Categories() []string {
	names := make([]string, 0, len(r.CategoryLetters))
	for name := range r.CategoryLetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
