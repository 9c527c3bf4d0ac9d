// Command importer loads historical competition CSVs into the database,
// reusing the same upsert-by-unique-key queries the intake orchestrator uses.
//
// Usage:
//
//	importer -suppliers suppliers.csv -judges judges.csv -sauces sauces.csv
//
// Expected columns (header row required):
//
//	suppliers.csv: email,brand,contact,address
//	judges.csv:    email,name,type,payment_status
//	sauces.csv:    supplier_email,name,category,sauce_code,ingredients,allergens
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scovillecup/backend-scoville/internal/config"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/obs"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

func main() {
	suppliersPath := flag.String("suppliers", "", "suppliers CSV path")
	judgesPath := flag.String("judges", "", "judges CSV path")
	saucesPath := flag.String("sauces", "", "sauces CSV path")
	dryRun := flag.Bool("dry-run", false, "parse and validate without writing")
	flag.Parse()

	logger := obs.NewLogger("console", "info").With().Str("component", "importer").Logger()

	if *suppliersPath == "" && *judgesPath == "" && *saucesPath == "" {
		logger.Fatal().Msg("nothing to import: pass -suppliers, -judges and/or -sauces")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	queries := dbgen.New(pool)

	yearRules := rules.Default(cfg.CompetitionYear)

	if *suppliersPath != "" {
		n, err := importSuppliers(ctx, queries, *suppliersPath, *dryRun)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *suppliersPath).Msg("import suppliers")
		}
		logger.Info().Int("rows", n).Msg("suppliers imported")
	}
	if *judgesPath != "" {
		n, err := importJudges(ctx, queries, *judgesPath, *dryRun)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *judgesPath).Msg("import judges")
		}
		logger.Info().Int("rows", n).Msg("judges imported")
	}
	if *saucesPath != "" {
		n, err := importSauces(ctx, queries, yearRules, *saucesPath, *dryRun)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *saucesPath).Msg("import sauces")
		}
		logger.Info().Int("rows", n).Msg("sauces imported")
	}
}

func importSuppliers(ctx context.Context, q *dbgen.Queries, path string, dryRun bool) (int, error) {
	return forEachRecord(path, []string{"email", "brand"}, func(row map[string]string) error {
		email := strings.ToLower(strings.TrimSpace(row["email"]))
		if email == "" {
			return errors.New("missing email")
		}
		if dryRun {
			return nil
		}
		_, err := q.UpsertSupplier(ctx, dbgen.UpsertSupplierParams{
			Email:       email,
			BrandName:   strings.TrimSpace(row["brand"]),
			ContactName: toText(row["contact"]),
			Address:     toText(row["address"]),
		})
		return err
	})
}

func importJudges(ctx context.Context, q *dbgen.Queries, path string, dryRun bool) (int, error) {
	return forEachRecord(path, []string{"email", "type"}, func(row map[string]string) error {
		email := strings.ToLower(strings.TrimSpace(row["email"]))
		if email == "" {
			return errors.New("missing email")
		}
		judgeType := dbgen.JudgeType(strings.ToLower(strings.TrimSpace(row["type"])))
		switch judgeType {
		case dbgen.JudgeTypePro, dbgen.JudgeTypeCommunity, dbgen.JudgeTypeSupplier, dbgen.JudgeTypeAdmin:
		default:
			return fmt.Errorf("unknown judge type %q", row["type"])
		}
		paymentStatus := dbgen.PaymentStatus(strings.TrimSpace(row["payment_status"]))
		switch paymentStatus {
		case dbgen.PaymentStatusPaid, dbgen.PaymentStatusPendingPayment:
		case "":
			paymentStatus = dbgen.PaymentStatusPaid
		default:
			return fmt.Errorf("unknown payment status %q", row["payment_status"])
		}
		if dryRun {
			return nil
		}
		_, err := q.UpsertJudge(ctx, dbgen.UpsertJudgeParams{
			Email:         email,
			Name:          toText(row["name"]),
			Type:          judgeType,
			Active:        true,
			PaymentStatus: paymentStatus,
		})
		return err
	})
}

func importSauces(ctx context.Context, q *dbgen.Queries, r rules.Rules, path string, dryRun bool) (int, error) {
	return forEachRecord(path, []string{"supplier_email", "name", "category", "sauce_code"}, func(row map[string]string) error {
		email := strings.ToLower(strings.TrimSpace(row["supplier_email"]))
		code := strings.ToUpper(strings.TrimSpace(row["sauce_code"]))
		if email == "" || code == "" {
			return errors.New("missing supplier_email or sauce_code")
		}
		category := strings.TrimSpace(row["category"])
		if _, err := r.LetterFor(category); err != nil {
			return err
		}
		if dryRun {
			return nil
		}
		supplier, err := q.GetSupplierByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("supplier %s: %w", email, err)
		}
		_, err = q.CreateSauce(ctx, dbgen.CreateSauceParams{
			SupplierID:  supplier.ID,
			Name:        strings.TrimSpace(row["name"]),
			Category:    category,
			Ingredients: toText(row["ingredients"]),
			Allergens:   toText(row["allergens"]),
			SauceCode:   code,
		})
		return err
	})
}

// forEachRecord streams a CSV with a header row and invokes fn with a
// column-name map per record. Fails fast with the 1-based line number.
func forEachRecord(path string, requiredCols []string, fn func(map[string]string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredCols {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing required column %q", col)
		}
	}

	count := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		row := map[string]string{}
		for col, i := range index {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		if err := fn(row); err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		count++
	}
}

func toText(s string) pgtype.Text {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
