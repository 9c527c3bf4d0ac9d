package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/scovillecup/backend-scoville/internal/common"
)

// Handlers exposes the scoring HTTP surface.
type Handlers struct {
	Service *Service
}

type scoreRequest struct {
	SauceID  string `json:"sauceId"`
	Category string `json:"category"`
	Score    int32  `json:"score"`
}

// SubmitScore handles POST /scores for authenticated judges.
func (h *Handlers) SubmitScore(w http.ResponseWriter, r *http.Request) {
	email, ok := common.AuthEmail(r.Context())
	if !ok || email == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication", nil)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if req.Category == "" {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "category is required", nil)
		return
	}
	sauceID, err := common.ToUUID(req.SauceID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sauce id", nil)
		return
	}
	score, err := h.Service.SubmitScore(r.Context(), email, sauceID, req.Category, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyScored):
			common.JSONError(w, http.StatusConflict, "ALREADY_SCORED", err.Error(), nil)
		case errors.Is(err, pgx.ErrNoRows):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sauce or judge not found", nil)
		default:
			common.JSONError(w, http.StatusBadRequest, "SCORE_REJECTED", err.Error(), nil)
		}
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"sauce_id": common.UUIDString(score.SauceID),
		"category": score.Category,
		"score":    score.Score,
	})
}

// ExportCSV handles GET /admin/scores/export.csv.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.Results(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "export failed", nil)
		return
	}
	filename := fmt.Sprintf("scoville-results-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := WriteCSV(w, results); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}
