package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
)

// TaskCampaignEmail is the asynq task type for one campaign recipient.
const TaskCampaignEmail = "campaign:email"

// campaignEmailPayload is the task payload: one email to one recipient.
type campaignEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TaskEnqueuer is the slice of asynq.Client the campaigner needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Querier lists the read operations campaign fanout needs.
type Querier interface {
	ListActiveJudgesByType(ctx context.Context, type_ dbgen.JudgeType) ([]dbgen.Judge, error)
}

// Campaigner fans an admin-triggered campaign out into one task per
// recipient, so a slow or failing mailbox only retries its own message.
type Campaigner struct {
	Q       Querier
	Tasks   TaskEnqueuer
	Queue   string
	Retries int
	Log     zerolog.Logger
}

// CampaignInput describes one campaign: subject, body and target audiences.
type CampaignInput struct {
	Subject    string   `json:"subject" validate:"required"`
	Body       string   `json:"body" validate:"required"`
	JudgeTypes []string `json:"judge_types" validate:"required,min=1"`
}

// Trigger enqueues one email task per active judge of the requested types.
// Returns the number of recipients enqueued.
func (c *Campaigner) Trigger(ctx context.Context, input CampaignInput) (int, error) {
	if c.Tasks == nil {
		return 0, fmt.Errorf("campaign: task client not configured")
	}
	seen := map[string]struct{}{}
	enqueued := 0
	for _, raw := range input.JudgeTypes {
		judgeType := dbgen.JudgeType(strings.ToLower(strings.TrimSpace(raw)))
		switch judgeType {
		case dbgen.JudgeTypePro, dbgen.JudgeTypeCommunity, dbgen.JudgeTypeSupplier, dbgen.JudgeTypeAdmin:
		default:
			return 0, fmt.Errorf("campaign: unknown judge type %q", raw)
		}
		judges, err := c.Q.ListActiveJudgesByType(ctx, judgeType)
		if err != nil {
			return enqueued, fmt.Errorf("campaign: list %s judges: %w", judgeType, err)
		}
		for _, judge := range judges {
			email := strings.ToLower(strings.TrimSpace(judge.Email))
			if email == "" {
				continue
			}
			if _, dup := seen[email]; dup {
				continue
			}
			seen[email] = struct{}{}
			if err := c.enqueueOne(ctx, email, input); err != nil {
				return enqueued, err
			}
			enqueued++
		}
	}
	c.Log.Info().Int("recipients", enqueued).Msg("campaign enqueued")
	return enqueued, nil
}

func (c *Campaigner) enqueueOne(ctx context.Context, to string, input CampaignInput) error {
	payload, err := json.Marshal(campaignEmailPayload{To: to, Subject: input.Subject, Body: input.Body})
	if err != nil {
		return fmt.Errorf("campaign: encode payload: %w", err)
	}
	retries := c.Retries
	if retries <= 0 {
		retries = 5
	}
	opts := []asynq.Option{
		asynq.MaxRetry(retries),
		asynq.Timeout(30 * time.Second),
	}
	if c.Queue != "" {
		opts = append(opts, asynq.Queue(c.Queue))
	}
	task := asynq.NewTask(TaskCampaignEmail, payload)
	if _, err := c.Tasks.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("campaign: enqueue %s: %w", to, err)
	}
	return nil
}
