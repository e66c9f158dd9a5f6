package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/middleware"
	"github.com/GregMSThompson/gwamegi-riders/internal/response"
)

const (
	// MaxQuestionRunes bounds what is forwarded to the paid generation API.
	MaxQuestionRunes = 500
	maxAskBodyBytes  = 16 << 10
)

type askService interface {
	Ask(ctx context.Context, sessionID, question string) (dto.AskResponse, error)
}

type aiHandlers struct {
	ResponseHandler response.ResponseHandler
	AskSvc          askService
}

func NewAIHandlers(deps *Deps) *aiHandlers {
	return &aiHandlers{
		ResponseHandler: deps.ResponseHandler,
		AskSvc:          deps.AskSvc,
	}
}

func (h *aiHandlers) AIRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/ask", h.Ask)
	return r
}

// Ask blocks until the question is answered. A failed AI call is still a
// 200 with status "failed" and the message to show the rider.
func (h *aiHandlers) Ask(w http.ResponseWriter, r *http.Request) {
	var body dto.AskRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxAskBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errs.NewValidationError("question is required")
		}
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if utf8.RuneCountInString(body.Question) > MaxQuestionRunes {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(fmt.Sprintf("question must be at most %d characters", MaxQuestionRunes)))
		return
	}

	resp, err := h.AskSvc.Ask(r.Context(), middleware.SessionID(r.Context()), body.Question)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
