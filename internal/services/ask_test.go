package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/interaction"
	"github.com/GregMSThompson/gwamegi-riders/pkg/helpers"
)

type staticCredentials string

func (c staticCredentials) Credential(_ context.Context) (string, error) { return string(c), nil }

type fakeGenerator struct {
	mu        sync.Mutex
	calls     int
	questions []string
	answer    func(msg string) (string, error)
	started   chan struct{}
	release   chan struct{}
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, req dto.GenerateRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.questions = append(f.questions, req.UserMessage)
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return f.answer(req.UserMessage)
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newAskService(creds interaction.CredentialProvider, gen interaction.Generator) *askService {
	prompt := interaction.Prompt{Model: "test-model", System: "persona", Template: "%s"}
	return NewAskService(NewInteractionFactory(creds, gen, prompt, interaction.DefaultMessages()), time.Hour)
}

func echo(msg string) (string, error) { return "answer to " + msg, nil }

func TestAskSuccess(t *testing.T) {
	gen := &fakeGenerator{answer: func(string) (string, error) { return "Try Homigot coastal road!", nil }}
	svc := newAskService(staticCredentials("key"), gen)

	resp, err := svc.Ask(helpers.TestCtx(), "s1", "recommend a coastal route")
	if err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	if resp.Status != dto.AskStatusCompleted || resp.Message != "Try Homigot coastal road!" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if gen.callCount() != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.callCount())
	}
}

func TestAskBlankQuestion(t *testing.T) {
	gen := &fakeGenerator{answer: echo}
	svc := newAskService(staticCredentials("key"), gen)

	_, err := svc.Ask(helpers.TestCtx(), "s1", "   ")

	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gen.callCount() != 0 {
		t.Fatalf("generator calls = %d, want 0", gen.callCount())
	}
}

func TestAskWhilePendingConflicts(t *testing.T) {
	gen := &fakeGenerator{answer: echo, started: make(chan struct{}, 2), release: make(chan struct{})}
	svc := newAskService(staticCredentials("key"), gen)

	type result struct {
		resp dto.AskResponse
		err  error
	}
	first := make(chan result, 1)
	go func() {
		resp, err := svc.Ask(helpers.TestCtx(), "s1", "first")
		first <- result{resp, err}
	}()
	<-gen.started

	_, err := svc.Ask(helpers.TestCtx(), "s1", "second")
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	other := make(chan result, 1)
	go func() {
		resp, err := svc.Ask(helpers.TestCtx(), "s2", "other session")
		other <- result{resp, err}
	}()
	<-gen.started

	close(gen.release)
	r1 := <-first
	r2 := <-other
	if r1.err != nil || r1.resp.Message != "answer to first" {
		t.Fatalf("first session result: %+v", r1)
	}
	if r2.err != nil || r2.resp.Message != "answer to other session" {
		t.Fatalf("second session result: %+v", r2)
	}
	if gen.callCount() != 2 {
		t.Fatalf("generator calls = %d, want 2", gen.callCount())
	}
}

func TestAskFailureReturnsFallbackMessage(t *testing.T) {
	gen := &fakeGenerator{answer: func(string) (string, error) {
		return "", errs.NewExternalServiceError("vertex", 500, false, errors.New("internal"))
	}}
	svc := newAskService(staticCredentials("key"), gen)

	for k := 0; k < 2; k++ {
		resp, err := svc.Ask(helpers.TestCtx(), "s1", "any text")
		if err != nil {
			t.Fatalf("Ask #%d error: %v", k+1, err)
		}
		if resp.Status != dto.AskStatusFailed || resp.Message != interaction.DefaultMessages().Failure {
			t.Fatalf("Ask #%d response: %+v", k+1, resp)
		}
	}
	if gen.callCount() != 2 {
		t.Fatalf("generator calls = %d, want 2", gen.callCount())
	}
}

func TestAskMissingCredential(t *testing.T) {
	gen := &fakeGenerator{answer: echo}
	svc := newAskService(staticCredentials(""), gen)

	resp, err := svc.Ask(helpers.TestCtx(), "s1", "any text")
	if err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	if resp.Status != dto.AskStatusFailed || resp.Message != interaction.DefaultMessages().MissingCredential {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if gen.callCount() != 0 {
		t.Fatalf("generator calls = %d, want 0", gen.callCount())
	}
}

func TestAskCallerLeavesThenAsksAgain(t *testing.T) {
	gen := &fakeGenerator{answer: echo, started: make(chan struct{}, 2), release: make(chan struct{}, 2)}
	svc := newAskService(staticCredentials("key"), gen)

	ctx, cancel := context.WithCancel(helpers.TestCtx())
	errc := make(chan error, 1)
	go func() {
		_, err := svc.Ask(ctx, "s1", "abandoned")
		errc <- err
	}()
	<-gen.started
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The abandoned attempt still runs to completion.
	gen.release <- struct{}{}
	deadline := time.Now().Add(2 * time.Second)
	for svc.session("s1").interaction.State() == interaction.Pending {
		if time.Now().After(deadline) {
			t.Fatalf("abandoned attempt never finished")
		}
		time.Sleep(5 * time.Millisecond)
	}

	gen.release <- struct{}{}
	resp, err := svc.Ask(helpers.TestCtx(), "s1", "fresh")
	if err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	if resp.Message != "answer to fresh" {
		t.Fatalf("got stale or wrong answer: %+v", resp)
	}
}

func TestAskEvictsIdleSessions(t *testing.T) {
	gen := &fakeGenerator{answer: echo}
	svc := newAskService(staticCredentials("key"), gen)
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	svc.clockNow = func() time.Time { return now }

	if _, err := svc.Ask(helpers.TestCtx(), "old", "hi"); err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if _, err := svc.Ask(helpers.TestCtx(), "new", "hi"); err != nil {
		t.Fatalf("Ask error: %v", err)
	}

	if got := svc.sessionCount(); got != 1 {
		t.Fatalf("sessions = %d, want 1 after eviction", got)
	}
}

func TestOutcomeMailboxParksEarlyOutcome(t *testing.T) {
	m := newOutcomeMailbox()
	m.Notify(context.Background(), interaction.Outcome{Attempt: 1, Message: "early"})

	out, err := m.wait(context.Background(), 1)
	if err != nil || out.Message != "early" {
		t.Fatalf("wait = %+v, %v", out, err)
	}
}

func TestOutcomeMailboxPrunesAbandoned(t *testing.T) {
	m := newOutcomeMailbox()
	for a := uint64(1); a <= 10; a++ {
		m.Notify(context.Background(), interaction.Outcome{Attempt: a})
	}
	if len(m.arrived) != parkedOutcomes {
		t.Fatalf("parked = %d, want %d", len(m.arrived), parkedOutcomes)
	}
	if _, ok := m.arrived[10]; !ok {
		t.Fatalf("latest outcome should be kept")
	}
}
