package models

// FailureKind classifies why an event's reply pipeline degraded or failed
type FailureKind string

const (
	FailureKindNone     FailureKind = ""
	FailureKindFetch    FailureKind = "fetch_failure"
	FailureKindProvider FailureKind = "provider_failure"
	FailureKindDelivery FailureKind = "delivery_failure"
)

// DeliveryOutcome is the terminal state of a single event's processing
type DeliveryOutcome string

const (
	DeliveryOutcomeIgnored   DeliveryOutcome = "ignored"
	DeliveryOutcomeDelivered DeliveryOutcome = "delivered"
	DeliveryOutcomeFailed    DeliveryOutcome = "failed"
)

// DeliveryResult records how an event was handled. Nothing about it is
// persisted; it exists for logging and tests.
type DeliveryResult struct {
	ID        string
	Outcome   DeliveryOutcome
	ReplyText string
	Failure   FailureKind
}
