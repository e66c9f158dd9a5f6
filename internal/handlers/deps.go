package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/gwamegi-riders/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AskSvc          askService
	ContentSvc      contentService
	// Firebase is nil when no project is configured; admin routes then answer 503.
	Firebase *auth.Client
}
