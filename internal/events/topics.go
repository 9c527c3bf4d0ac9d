package events

// Topic constants for domain events emitted by the platform.
const (
	TopicEntryReceived    = "entry.received"
	TopicPaymentSucceeded = "payment.succeeded"
	TopicJudgeAccepted    = "judge.accepted"
	TopicSauceBoxed       = "sauce.boxed"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicEntryReceived,
		TopicPaymentSucceeded,
		TopicJudgeAccepted,
		TopicSauceBoxed,
	}
}
