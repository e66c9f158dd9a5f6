package dto

// GenerateRequest is the backend-neutral shape of a single text completion call.
type GenerateRequest struct {
	Model           string
	System          string
	UserMessage     string
	Temperature     *float32
	MaxOutputTokens *int32
}
