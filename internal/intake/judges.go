package intake

import (
	"context"
	"strings"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/events"
)

// JudgeInput is a judge application submission.
type JudgeInput struct {
	Name                string `json:"name" validate:"required,max=200"`
	Email               string `json:"email" validate:"required,email"`
	Address             string `json:"address" validate:"required"`
	Zip                 string `json:"zip" validate:"required"`
	City                string `json:"city" validate:"required"`
	Country             string `json:"country" validate:"required"`
	Experience          string `json:"experience" validate:"required"`
	IndustryAffiliation string `json:"industryAffiliation"`
	AffiliationDetails  string `json:"affiliationDetails"`
}

// JudgeResult is the outcome of an accepted judge application.
type JudgeResult struct {
	JudgeID string `json:"judge_id"`
	Type    string `json:"type"`
}

// judgeTypeForExperience maps the application's experience answer onto a
// judge type. The form offers fixed answers; anything professional-sounding
// lands in the pro pool, everything else judges as community and pays the
// community judge fee.
func judgeTypeForExperience(experience string) dbgen.JudgeType {
	switch strings.ToLower(strings.TrimSpace(experience)) {
	case "professional", "professional chef", "food industry professional", "certified judge", "sommelier":
		return dbgen.JudgeTypePro
	default:
		return dbgen.JudgeTypeCommunity
	}
}

// ApplyJudge upserts the judge row and its year-scoped participation. An
// existing admin keeps the admin type; the participation classification still
// records what this year's application mapped to.
func (s *Service) ApplyJudge(ctx context.Context, in JudgeInput) (JudgeResult, error) {
	if err := s.validate().Struct(in); err != nil {
		return JudgeResult{}, stepErr(StepValidate, err)
	}

	account, err := s.Accounts.EnsureAccount(ctx, in.Email)
	if err != nil {
		return JudgeResult{}, stepErr(StepAccount, err)
	}

	judgeType := judgeTypeForExperience(in.Experience)
	paymentStatus := dbgen.PaymentStatusPendingPayment
	if judgeType == dbgen.JudgeTypePro {
		// Only community judges pay the judge fee.
		paymentStatus = dbgen.PaymentStatusPaid
	}

	var judge dbgen.Judge
	err = s.DB.InTx(ctx, func(store Store) error {
		judge, err = store.UpsertJudge(ctx, dbgen.UpsertJudgeParams{
			Email:               account.Email,
			Name:                toText(in.Name),
			Type:                judgeType,
			Active:              true,
			PaymentStatus:       paymentStatus,
			Address:             toText(in.Address),
			Zip:                 toText(in.Zip),
			City:                toText(in.City),
			Country:             toText(in.Country),
			Experience:          toText(in.Experience),
			IndustryAffiliation: toText(in.IndustryAffiliation),
			AffiliationDetails:  toText(in.AffiliationDetails),
		})
		if err != nil {
			return stepErr(StepJudge, err)
		}
		if _, err := store.UpsertJudgeParticipation(ctx, dbgen.UpsertJudgeParticipationParams{
			Email:          account.Email,
			Year:           int32(s.Rules.Year),
			Accepted:       true,
			Classification: toText(string(judgeType)),
		}); err != nil {
			return stepErr(StepJudgeParticipation, err)
		}
		return nil
	})
	if err != nil {
		return JudgeResult{}, err
	}

	if s.Events != nil {
		if _, err := s.Events.Emit(ctx, events.TopicJudgeAccepted, judge.ID, map[string]any{
			"judgeId": common.UUIDString(judge.ID),
			"type":    string(judge.Type),
		}); err != nil {
			s.Log.Error().Err(err).Msg("emit judge.accepted")
		}
	}
	return JudgeResult{JudgeID: common.UUIDString(judge.ID), Type: string(judge.Type)}, nil
}
