package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/GregMSThompson/gwamegi-riders/internal/interaction"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
	"github.com/GregMSThompson/gwamegi-riders/internal/response"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Content         models.ClubContent
	FailureMessage  string
	AskEndpoint     string
	QuestionMaxSize int
}

type siteHandlers struct {
	ResponseHandler response.ResponseHandler
	ContentSvc      contentService
	failure         string
}

func NewSiteHandlers(deps *Deps) *siteHandlers {
	return &siteHandlers{
		ResponseHandler: deps.ResponseHandler,
		ContentSvc:      deps.ContentSvc,
		failure:         interaction.DefaultMessages().Failure,
	}
}

// Page renders the landing page. If the content source is unavailable the
// page still renders with the built-in content.
func (h *siteHandlers) Page(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	content, err := h.ContentSvc.GetContent(r.Context())
	if err != nil {
		log.Error("content unavailable, rendering defaults", "error", err)
		content = models.DefaultContent()
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{
		Content:         content,
		FailureMessage:  h.failure,
		AskEndpoint:     "/api/ai/ask",
		QuestionMaxSize: MaxQuestionRunes,
	}); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write page", "error", err)
	}
}
