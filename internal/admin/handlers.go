package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

// Querier lists the judge operations admins perform.
type Querier interface {
	SetJudgeType(ctx context.Context, arg dbgen.SetJudgeTypeParams) (dbgen.Judge, error)
	GetJudgeByID(ctx context.Context, id pgtype.UUID) (dbgen.Judge, error)
	ListActiveJudgesByType(ctx context.Context, type_ dbgen.JudgeType) ([]dbgen.Judge, error)
}

// Handlers serves the admin judge management endpoints.
type Handlers struct {
	Q Querier
}

type promoteRequest struct {
	Type string `json:"type"`
}

// PromoteJudge changes a judge's type, e.g. community -> pro after vetting.
func (h Handlers) PromoteJudge(w http.ResponseWriter, r *http.Request) {
	judgeID, err := common.ToUUID(chi.URLParam(r, "judgeId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_JUDGE_ID", "invalid judge id", nil)
		return
	}
	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON payload", nil)
		return
	}
	judgeType := dbgen.JudgeType(req.Type)
	switch judgeType {
	case dbgen.JudgeTypePro, dbgen.JudgeTypeCommunity, dbgen.JudgeTypeSupplier, dbgen.JudgeTypeAdmin:
	default:
		common.JSONError(w, http.StatusBadRequest, "INVALID_JUDGE_TYPE", "unknown judge type", nil)
		return
	}
	judge, err := h.Q.SetJudgeType(r.Context(), dbgen.SetJudgeTypeParams{ID: judgeID, Type: judgeType})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "judge not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "JUDGE_UPDATE_ERROR", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"judge_id": common.UUIDString(judge.ID),
		"type":     judge.Type,
	})
}

// ListJudges returns the active judges of one type for panel planning.
func (h Handlers) ListJudges(w http.ResponseWriter, r *http.Request) {
	judgeType := dbgen.JudgeType(r.URL.Query().Get("type"))
	switch judgeType {
	case dbgen.JudgeTypePro, dbgen.JudgeTypeCommunity, dbgen.JudgeTypeSupplier, dbgen.JudgeTypeAdmin:
	default:
		common.JSONError(w, http.StatusBadRequest, "INVALID_JUDGE_TYPE", "unknown judge type", nil)
		return
	}
	judges, err := h.Q.ListActiveJudgesByType(r.Context(), judgeType)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "JUDGE_LIST_ERROR", err.Error(), nil)
		return
	}
	type judgeView struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name,omitempty"`
		Type          string `json:"type"`
		PaymentStatus string `json:"payment_status"`
	}
	views := make([]judgeView, 0, len(judges))
	for _, j := range judges {
		views = append(views, judgeView{
			ID:            common.UUIDString(j.ID),
			Email:         j.Email,
			Name:          j.Name.String,
			Type:          string(j.Type),
			PaymentStatus: string(j.PaymentStatus),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"judges": views})
}
