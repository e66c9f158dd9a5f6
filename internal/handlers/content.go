package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
	"github.com/GregMSThompson/gwamegi-riders/internal/response"
)

const maxContentBodyBytes = 256 << 10

type contentService interface {
	GetContent(ctx context.Context) (models.ClubContent, error)
	UpdateContent(ctx context.Context, content models.ClubContent) (models.ClubContent, error)
}

type contentHandlers struct {
	ResponseHandler response.ResponseHandler
	ContentSvc      contentService
}

func NewContentHandlers(deps *Deps) *contentHandlers {
	return &contentHandlers{
		ResponseHandler: deps.ResponseHandler,
		ContentSvc:      deps.ContentSvc,
	}
}

func (h *contentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.ContentSvc.GetContent(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, content)
}

func (h *contentHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Put("/content", h.Update)
	return r
}

func (h *contentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var body models.ClubContent
	r.Body = http.MaxBytesReader(w, r.Body, maxContentBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errs.NewValidationError("request body is required")
		}
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	updated, err := h.ContentSvc.UpdateContent(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, updated)
}
