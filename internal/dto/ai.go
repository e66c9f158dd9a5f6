package dto

type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is what the page alerts: either the completion verbatim or a
// fixed fallback message.
type AskResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	AskStatusCompleted = "completed"
	AskStatusFailed    = "failed"
)
