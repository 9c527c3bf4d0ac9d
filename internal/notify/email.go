package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/events"
)

// EmailNotifier sends transactional emails for selected topics.
type EmailNotifier struct {
	Mail         common.EmailSender
	Enabled      bool
	From         string
	TopicToggles map[string]bool
}

// Notify implements the events.Notifier interface.
func (n EmailNotifier) Notify(_ context.Context, event dbgen.DomainEvent) error {
	if !n.Enabled || n.Mail == nil {
		return nil
	}
	if n.TopicToggles != nil {
		if enabled, ok := n.TopicToggles[event.Topic]; ok && !enabled {
			return nil
		}
	}
	payload := map[string]any{}
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("email notify: decode payload: %w", err)
		}
	}
	to := extractRecipient(payload)
	if to == "" {
		return nil
	}
	subject := subjectFor(event.Topic)
	body := bodyFor(event.Topic, payload, event.OccurredAt.Time)
	return n.Mail.Send(to, subject, body)
}

func extractRecipient(payload map[string]any) string {
	keys := []string{"email", "recipient", "supplierEmail", "judgeEmail"}
	for _, key := range keys {
		if val, ok := payload[key]; ok {
			if s, ok := val.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func subjectFor(topic string) string {
	switch topic {
	case events.TopicEntryReceived:
		return "Your Scoville Cup entry is in"
	case events.TopicPaymentSucceeded:
		return "Payment received"
	case events.TopicJudgeAccepted:
		return "Welcome to the Scoville Cup judging panel"
	case events.TopicSauceBoxed:
		return "Your sauce is boxed for judging"
	default:
		return fmt.Sprintf("Scoville Cup: %s", topic)
	}
}

func bodyFor(topic string, payload map[string]any, occurred time.Time) string {
	summary := fmt.Sprintf("Event %s occurred at %s.", topic, occurred.Format(time.RFC3339))
	if supplierID, ok := payload["supplierId"].(string); ok && supplierID != "" {
		summary += fmt.Sprintf("\nSupplier: %s", supplierID)
	}
	if code, ok := payload["sauceCode"].(string); ok && code != "" {
		summary += fmt.Sprintf("\nSauce code: %s", code)
	}
	if note, ok := payload["message"].(string); ok && note != "" {
		summary += "\n" + note
	}
	return summary
}
