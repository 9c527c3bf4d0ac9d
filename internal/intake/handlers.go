package intake

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/obs"
)

// Handlers exposes the intake HTTP surface.
type Handlers struct {
	Service *Service
}

// SubmitEntries handles POST /intake/entries.
func (h *Handlers) SubmitEntries(w http.ResponseWriter, r *http.Request) {
	var in EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	result, err := h.Service.SubmitEntries(r.Context(), in)
	if err != nil {
		obs.IncIntakeSubmission("entry", "error")
		common.JSONError(w, http.StatusBadRequest, "INTAKE_FAILED", err.Error(), nil)
		return
	}
	if result.Honeypot {
		obs.IncIntakeSubmission("entry", "honeypot")
		common.JSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	obs.IncIntakeSubmission("entry", "ok")
	common.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"supplier_id": result.SupplierID,
		"sauces":      result.Sauces,
		"payment":     result.Quote,
	})
}

// ApplyJudge handles POST /intake/judges.
func (h *Handlers) ApplyJudge(w http.ResponseWriter, r *http.Request) {
	var in JudgeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	result, err := h.Service.ApplyJudge(r.Context(), in)
	if err != nil {
		obs.IncIntakeSubmission("judge", "error")
		common.JSONError(w, http.StatusBadRequest, "INTAKE_FAILED", err.Error(), nil)
		return
	}
	obs.IncIntakeSubmission("judge", "ok")
	common.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"judge_id": result.JudgeID,
		"type":     result.Type,
	})
}

// DeleteSauce handles DELETE /sauces/{id}. Only the owning supplier may
// delete, and only while the sauce is still unpaid.
func (h *Handlers) DeleteSauce(w http.ResponseWriter, r *http.Request) {
	email, ok := common.AuthEmail(r.Context())
	if !ok || email == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication", nil)
		return
	}
	sauceID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sauce id", nil)
		return
	}
	supplier, err := h.Service.Q.GetSupplierByEmail(r.Context(), email)
	if err != nil {
		common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "not authorized", nil)
		return
	}
	deleted, err := h.Service.Q.DeleteUnpaidSauce(r.Context(), dbgen.DeleteUnpaidSauceParams{
		ID:         sauceID,
		SupplierID: supplier.ID,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "delete failed", nil)
		return
	}
	if deleted == 0 {
		sauce, err := h.Service.Q.GetSauceByID(r.Context(), sauceID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sauce not found", nil)
		case err != nil:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "delete failed", nil)
		case sauce.SupplierID != supplier.ID:
			common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "not authorized", nil)
		default:
			common.JSONError(w, http.StatusConflict, "SAUCE_PAID", "paid sauces cannot be deleted", nil)
		}
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"success": true})
}
