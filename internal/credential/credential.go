// Package credential resolves the API key for the text-generation backend.
// Every provider reads its source on each call; nothing is cached.
package credential

const (
	KeyringService = "gwamegi-riders"
	KeyringKey     = "gemini_api_key"
)
