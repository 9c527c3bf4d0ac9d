package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/scovillecup/backend-scoville/internal/common"
	"github.com/scovillecup/backend-scoville/internal/obs"
)

// Handlers exposes checkout session creation over HTTP.
type Handlers struct {
	Svc *Service
}

type supplierCheckoutRequest struct {
	QuoteID string `json:"quote_id"`
}

type judgeCheckoutRequest struct {
	JudgeID string `json:"judge_id"`
}

// CreateSupplierCheckout opens a hosted-checkout session for a pending quote.
func (h Handlers) CreateSupplierCheckout(w http.ResponseWriter, r *http.Request) {
	var req supplierCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON payload", nil)
		return
	}
	quoteID, err := common.ToUUID(req.QuoteID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_QUOTE_ID", "invalid quote id", nil)
		return
	}
	session, err := h.Svc.CreateSupplierCheckout(r.Context(), quoteID)
	if err != nil {
		obs.IncCheckoutSession("supplier", "error")
		writeCheckoutError(w, err, "quote not found")
		return
	}
	obs.IncCheckoutSession("supplier", "ok")
	common.JSON(w, http.StatusCreated, session)
}

// CreateJudgeCheckout opens a hosted-checkout session for a community judge fee.
func (h Handlers) CreateJudgeCheckout(w http.ResponseWriter, r *http.Request) {
	var req judgeCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON payload", nil)
		return
	}
	judgeID, err := common.ToUUID(req.JudgeID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_JUDGE_ID", "invalid judge id", nil)
		return
	}
	session, err := h.Svc.CreateJudgeCheckout(r.Context(), judgeID)
	if err != nil {
		obs.IncCheckoutSession("judge", "error")
		writeCheckoutError(w, err, "judge not found")
		return
	}
	obs.IncCheckoutSession("judge", "ok")
	common.JSON(w, http.StatusCreated, session)
}

func writeCheckoutError(w http.ResponseWriter, err error, notFoundMsg string) {
	var appErr *common.AppError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", notFoundMsg, nil)
	case errors.As(err, &appErr):
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
	default:
		common.JSONError(w, http.StatusBadGateway, "CHECKOUT_FAILED", err.Error(), nil)
	}
}
