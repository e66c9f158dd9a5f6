// Package interaction owns the ask-the-AI state machine: one question in
// flight at a time, one notification per attempt, never a raw error shown.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrPending    = errors.New("a query is already pending")
)

// CredentialProvider resolves the access credential on every call.
// An absent credential is ("", nil), not an error.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, credential string, req dto.GenerateRequest) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, outcome Outcome)
}

type NotifierFunc func(ctx context.Context, outcome Outcome)

func (f NotifierFunc) Notify(ctx context.Context, outcome Outcome) { f(ctx, outcome) }

type Interaction struct {
	creds    CredentialProvider
	gen      Generator
	notifier Notifier
	prompt   Prompt
	messages Messages

	mu      sync.Mutex
	state   State
	attempt uint64
	wg      sync.WaitGroup
}

func New(creds CredentialProvider, gen Generator, notifier Notifier, prompt Prompt, messages Messages) *Interaction {
	return &Interaction{
		creds:    creds,
		gen:      gen,
		notifier: notifier,
		prompt:   prompt,
		messages: messages,
	}
}

func (i *Interaction) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Submit starts an attempt and returns its number without waiting for the
// reply. Blank text and submissions while Pending are rejected and change
// nothing. Completed and Failed only last while the outcome is being
// delivered and count as Idle here. The attempt outlives ctx's cancellation.
func (i *Interaction) Submit(ctx context.Context, text string) (uint64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyQuery
	}

	i.mu.Lock()
	if i.state == Pending {
		i.mu.Unlock()
		return 0, ErrPending
	}
	i.state = Pending
	i.attempt++
	attempt := i.attempt
	i.wg.Add(1)
	i.mu.Unlock()

	go i.run(context.WithoutCancel(ctx), attempt, text)
	return attempt, nil
}

// Wait blocks until the attempt in flight, if any, has notified and returned to Idle.
func (i *Interaction) Wait() {
	i.wg.Wait()
}

func (i *Interaction) run(ctx context.Context, attempt uint64, query string) {
	defer i.wg.Done()
	log, ctx := logger.With(ctx, "attempt", attempt)

	out := Outcome{Attempt: attempt}
	text, err := i.complete(ctx, query)
	if err != nil {
		out.State = Failed
		out.Reason = classify(err)
		out.Message = i.messages.For(out.Reason)
		log.Error("ai query failed", "reason", string(out.Reason), "error", err)
	} else {
		out.State = Completed
		out.Message = text
		log.Info("ai query completed", "chars", len(text))
	}

	i.setState(attempt, out.State)
	i.notifier.Notify(ctx, out)
	i.setState(attempt, Idle)
}

func (i *Interaction) complete(ctx context.Context, query string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()

	credential, err := i.creds.Credential(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(credential) == "" {
		return "", errs.NewMissingCredentialError("credential provider")
	}

	text, err = i.gen.Generate(ctx, credential, i.prompt.Request(query))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errs.NewMalformedResponseError("generator", "empty completion")
	}
	return text, nil
}

// setState only applies while attempt is still the latest one.
func (i *Interaction) setState(attempt uint64, s State) {
	i.mu.Lock()
	if i.attempt == attempt {
		i.state = s
	}
	i.mu.Unlock()
}

type panicError struct {
	value any
}

func (e *panicError) Error() string { return fmt.Sprintf("panic during ai query: %v", e.value) }

func classify(err error) Reason {
	switch {
	case errs.Is[*errs.MissingCredentialError](err):
		return ReasonMissingCredential
	case errs.Is[*errs.CredentialError](err):
		return ReasonCredential
	case errs.Is[*errs.MalformedResponseError](err):
		return ReasonMalformed
	case errs.Is[*errs.ExternalServiceError](err):
		return ReasonService
	case errs.Is[*panicError](err):
		return ReasonPanic
	default:
		return ReasonTransport
	}
}
