package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/scovillecup/backend-scoville/internal/common"
	"github.com/scovillecup/backend-scoville/internal/obs"
)

// CampaignWorker consumes campaign email tasks and delivers them.
type CampaignWorker struct {
	Mail common.EmailSender
	Log  zerolog.Logger
}

// HandleCampaignEmail processes one recipient's task. Errors are returned
// so asynq retries with backoff.
func (w CampaignWorker) HandleCampaignEmail(_ context.Context, task *asynq.Task) error {
	var payload campaignEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		obs.IncCampaignEmail("invalid")
		return fmt.Errorf("campaign email: decode payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.To == "" {
		obs.IncCampaignEmail("invalid")
		return fmt.Errorf("campaign email: missing recipient: %w", asynq.SkipRetry)
	}
	if w.Mail == nil {
		return fmt.Errorf("campaign email: sender not configured")
	}
	if err := w.Mail.Send(payload.To, payload.Subject, payload.Body); err != nil {
		obs.IncCampaignEmail("error")
		w.Log.Warn().Err(err).Str("to", payload.To).Msg("campaign email failed, will retry")
		return err
	}
	obs.IncCampaignEmail("ok")
	return nil
}

// Mux returns an asynq mux with every notify task handler registered.
func (w CampaignWorker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskCampaignEmail, w.HandleCampaignEmail)
	return mux
}
