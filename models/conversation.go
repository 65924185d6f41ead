package models

// TurnRole identifies who authored a conversation turn
type TurnRole string

const (
	TurnRoleSystem    TurnRole = "system"
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one message in an assembled completion request.
// ImageData holds a base64 data URI and is set only on vision turns.
type ConversationTurn struct {
	Role      TurnRole
	Content   string
	ImageData string
}

// HasImage returns true when the turn carries an image payload
func (t ConversationTurn) HasImage() bool {
	return t.ImageData != ""
}

// CompletionRequest is the outbound payload for the completion provider.
// Turns are ordered chronologically oldest-first; the most recent user
// turn is always last. System appears at most once and first.
type CompletionRequest struct {
	Model       string
	Turns       []ConversationTurn
	Temperature float64
}
