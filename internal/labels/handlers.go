package labels

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

// Querier lists the read operations label rendering needs.
type Querier interface {
	ListSaucesByStatus(ctx context.Context, status dbgen.SauceStatus) ([]dbgen.Sauce, error)
}

// Handlers serves label sheet PDFs to admins.
type Handlers struct {
	Q   Querier
	Gen *Generator
}

// Sheet renders a sticker sheet for all sauces in the requested status.
// Query params: stock (l7160|l7165, default l7160), status (default registered).
func (h Handlers) Sheet(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock")
	if stockName == "" {
		stockName = "l7160"
	}
	stock, err := StockByName(stockName)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "UNKNOWN_STOCK",
			fmt.Sprintf("unknown stock, supported: %s", strings.Join(StockNames(), ", ")), nil)
		return
	}

	status := dbgen.SauceStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = dbgen.SauceStatusRegistered
	}
	switch status {
	case dbgen.SauceStatusRegistered, dbgen.SauceStatusArrived, dbgen.SauceStatusBoxed:
	default:
		common.JSONError(w, http.StatusBadRequest, "INVALID_STATUS", "unknown sauce status", nil)
		return
	}

	sauces, err := h.Q.ListSaucesByStatus(r.Context(), status)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "SAUCE_LIST_ERROR", err.Error(), nil)
		return
	}
	if len(sauces) == 0 {
		common.JSONError(w, http.StatusNotFound, "NO_SAUCES", "no sauces in the requested status", nil)
		return
	}

	items := make([]Item, 0, len(sauces))
	for _, sauce := range sauces {
		items = append(items, Item{Code: sauce.SauceCode, Name: sauce.Name})
	}

	pdf, err := h.Gen.Render(r.Context(), stock, items)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "LABEL_RENDER_ERROR", err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("scoville-labels-%s-%s.pdf", stock.Name, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
