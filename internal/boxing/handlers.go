package boxing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/obs"
)

// Handlers exposes the admin boxing HTTP surface.
type Handlers struct {
	Service *Service
}

type statusRequest struct {
	Status string `json:"status"`
	Force  bool   `json:"force"`
}

// UpdateStatus handles PATCH /admin/sauces/{id}/status.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sauceID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sauce id", nil)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	sauce, err := h.Service.Transition(r.Context(), sauceID, dbgen.SauceStatus(req.Status), req.Force)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sauce not found", nil)
			return
		}
		common.JSONError(w, http.StatusConflict, "INVALID_TRANSITION", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      common.UUIDString(sauce.ID),
		"status":  string(sauce.Status),
	})
}

type scanRequest struct {
	Ordinal   int32  `json:"ordinal"`
	ScannedBy string `json:"scannedBy"`
}

// ScanBottle handles POST /admin/sauces/{id}/scans.
func (h *Handlers) ScanBottle(w http.ResponseWriter, r *http.Request) {
	sauceID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sauce id", nil)
		return
	}
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	var scannedBy pgtype.UUID
	if req.ScannedBy != "" {
		id, err := common.ToUUID(req.ScannedBy)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid scannedBy id", nil)
			return
		}
		scannedBy = id
	}
	result, err := h.Service.ScanBottle(r.Context(), sauceID, req.Ordinal, scannedBy)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateScan):
			obs.IncBottleScan("duplicate")
			common.JSONError(w, http.StatusConflict, "DUPLICATE_SCAN", err.Error(), nil)
		case errors.Is(err, pgx.ErrNoRows):
			obs.IncBottleScan("not_found")
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sauce not found", nil)
		default:
			obs.IncBottleScan("error")
			common.JSONError(w, http.StatusConflict, "SCAN_REJECTED", err.Error(), nil)
		}
		return
	}
	obs.IncBottleScan("ok")
	common.JSON(w, http.StatusOK, map[string]any{"success": true, "scan": result})
}

type assignRequest struct {
	SauceID string `json:"sauceId"`
	JudgeID string `json:"judgeId"`
}

// AssignBox handles POST /admin/box-assignments.
func (h *Handlers) AssignBox(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	sauceID, err := common.ToUUID(req.SauceID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sauce id", nil)
		return
	}
	judgeID, err := common.ToUUID(req.JudgeID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid judge id", nil)
		return
	}
	assignment, err := h.Service.AssignBox(r.Context(), sauceID, judgeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sauce not found", nil)
			return
		}
		common.JSONError(w, http.StatusConflict, "ASSIGNMENT_REJECTED", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"sauce_id": common.UUIDString(assignment.SauceID),
		"judge_id": common.UUIDString(assignment.JudgeID),
	})
}

// ListAssignments handles GET /admin/box-assignments?judgeId=...
func (h *Handlers) ListAssignments(w http.ResponseWriter, r *http.Request) {
	judgeID, err := common.ToUUID(r.URL.Query().Get("judgeId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid judge id", nil)
		return
	}
	assignments, err := h.Service.Assignments(r.Context(), judgeID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "list failed", nil)
		return
	}
	out := make([]map[string]any, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, map[string]any{
			"sauce_id": common.UUIDString(a.SauceID),
			"judge_id": common.UUIDString(a.JudgeID),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"assignments": out})
}

// ListSauces handles GET /admin/sauces?status=...
func (h *Handlers) ListSauces(w http.ResponseWriter, r *http.Request) {
	status := dbgen.SauceStatus(r.URL.Query().Get("status"))
	switch status {
	case dbgen.SauceStatusRegistered, dbgen.SauceStatusArrived, dbgen.SauceStatusBoxed:
	default:
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status filter", nil)
		return
	}
	views, err := h.Service.ListByStatus(r.Context(), status)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "list failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"sauces": views})
}
