package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/interaction"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

type askInteraction interface {
	Submit(ctx context.Context, text string) (uint64, error)
	State() interaction.State
}

// InteractionFactory builds the interaction for a new session around the
// notifier that session listens on.
type InteractionFactory func(n interaction.Notifier) askInteraction

type askSession struct {
	interaction askInteraction
	outcomes    *outcomeMailbox
	lastSeen    time.Time
}

type askService struct {
	newInteraction InteractionFactory
	ttl            time.Duration
	clockNow       func() time.Time

	mu       sync.Mutex
	sessions map[string]*askSession
}

func NewAskService(factory InteractionFactory, ttl time.Duration) *askService {
	return &askService{
		newInteraction: factory,
		ttl:            ttl,
		clockNow:       time.Now,
		sessions:       make(map[string]*askSession),
	}
}

// NewInteractionFactory wires every session to the same backend, credential
// source and prompt.
func NewInteractionFactory(creds interaction.CredentialProvider, gen interaction.Generator, prompt interaction.Prompt, messages interaction.Messages) InteractionFactory {
	return func(n interaction.Notifier) askInteraction {
		return interaction.New(creds, gen, n, prompt, messages)
	}
}

// Ask submits question on the session's interaction and waits for that
// attempt's outcome. Failures of the AI call come back as a failed
// AskResponse, not as an error.
func (s *askService) Ask(ctx context.Context, sessionID, question string) (dto.AskResponse, error) {
	log := logger.FromContext(ctx)
	sess := s.session(sessionID)

	attempt, err := sess.interaction.Submit(ctx, question)
	switch {
	case errors.Is(err, interaction.ErrEmptyQuery):
		return dto.AskResponse{}, errs.NewValidationError("question is required")
	case errors.Is(err, interaction.ErrPending):
		log.Info("ask rejected, previous question still pending")
		return dto.AskResponse{}, errs.NewConflictError("the AI rider is still answering your previous question")
	case err != nil:
		return dto.AskResponse{}, err
	}

	out, err := sess.outcomes.wait(ctx, attempt)
	if err != nil {
		log.Warn("caller left before the answer arrived", "attempt", attempt, "error", err)
		return dto.AskResponse{}, err
	}

	resp := dto.AskResponse{Status: dto.AskStatusCompleted, Message: out.Message}
	if out.State == interaction.Failed {
		resp.Status = dto.AskStatusFailed
	}
	return resp, nil
}

func (s *askService) session(id string) *askSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clockNow()
	s.evictLocked(now)

	sess, ok := s.sessions[id]
	if !ok {
		mailbox := newOutcomeMailbox()
		sess = &askSession{
			interaction: s.newInteraction(mailbox),
			outcomes:    mailbox,
		}
		s.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess
}

// evictLocked drops sessions idle for longer than the TTL. A session with a
// question in flight is kept so its answer still has somewhere to go.
func (s *askService) evictLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl && sess.interaction.State() != interaction.Pending {
			delete(s.sessions, id)
		}
	}
}

func (s *askService) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// outcomeMailbox hands each outcome to the caller waiting on that attempt.
// Outcomes that arrive before their waiter are parked; only the most recent
// few are kept so abandoned attempts do not pile up.
type outcomeMailbox struct {
	mu      sync.Mutex
	waiters map[uint64]chan interaction.Outcome
	arrived map[uint64]interaction.Outcome
}

const parkedOutcomes = 4

func newOutcomeMailbox() *outcomeMailbox {
	return &outcomeMailbox{
		waiters: make(map[uint64]chan interaction.Outcome),
		arrived: make(map[uint64]interaction.Outcome),
	}
}

func (m *outcomeMailbox) Notify(_ context.Context, out interaction.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch, ok := m.waiters[out.Attempt]; ok {
		delete(m.waiters, out.Attempt)
		ch <- out
		return
	}
	m.arrived[out.Attempt] = out
	for attempt := range m.arrived {
		if attempt+parkedOutcomes <= out.Attempt {
			delete(m.arrived, attempt)
		}
	}
}

func (m *outcomeMailbox) wait(ctx context.Context, attempt uint64) (interaction.Outcome, error) {
	m.mu.Lock()
	if out, ok := m.arrived[attempt]; ok {
		delete(m.arrived, attempt)
		m.mu.Unlock()
		return out, nil
	}
	ch := make(chan interaction.Outcome, 1)
	m.waiters[attempt] = ch
	m.mu.Unlock()

	select {
	case out := <-ch:
		return out, nil
	case <-ctx.Done():
		m.mu.Lock()
		delete(m.waiters, attempt)
		m.mu.Unlock()
		return interaction.Outcome{}, ctx.Err()
	}
}
