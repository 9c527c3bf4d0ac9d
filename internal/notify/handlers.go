package notify

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/scovillecup/backend-scoville/internal/common"
)

// Handlers exposes admin campaign triggers over HTTP.
type Handlers struct {
	Campaigns *Campaigner
	Validate  *validator.Validate
}

// TriggerCampaign fans a campaign out to the selected judge audiences.
func (h Handlers) TriggerCampaign(w http.ResponseWriter, r *http.Request) {
	var input CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(input); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
	}
	recipients, err := h.Campaigns.Trigger(r.Context(), input)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "CAMPAIGN_FAILED", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{
		"success":    true,
		"recipients": recipients,
	})
}
