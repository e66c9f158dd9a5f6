package interaction

import "testing"

func TestPromptRequestEmbedsQuestionVerbatim(t *testing.T) {
	p := Prompt{Model: "m", System: "sys", Template: "Q: %s!"}

	req := p.Request("  <b>100%</b>  ")

	if req.UserMessage != "Q:   <b>100%</b>  !" {
		t.Fatalf("user message = %q", req.UserMessage)
	}
	if req.Model != "m" || req.System != "sys" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestPromptRequestFallsBackWithoutPlaceholder(t *testing.T) {
	p := Prompt{Model: "m", Template: "no placeholder"}

	req := p.Request("hello")

	if req.UserMessage == "no placeholder" {
		t.Fatalf("expected default template to be used")
	}
}

func TestMessagesFor(t *testing.T) {
	m := DefaultMessages()
	if m.For(ReasonMissingCredential) != m.MissingCredential {
		t.Fatalf("missing credential message mismatch")
	}
	for _, r := range []Reason{ReasonService, ReasonTransport, ReasonMalformed, ReasonCredential, ReasonPanic} {
		if m.For(r) != m.Failure {
			t.Fatalf("reason %q should map to generic failure", r)
		}
	}

	generic := Messages{Failure: "oops"}
	if generic.For(ReasonMissingCredential) != "oops" {
		t.Fatalf("empty MissingCredential should fall back to Failure")
	}
}

func TestStateString(t *testing.T) {
	want := map[State]string{Idle: "idle", Pending: "pending", Completed: "completed", Failed: "failed", State(9): "unknown"}
	for s, w := range want {
		if s.String() != w {
			t.Fatalf("%d.String() = %q, want %q", int(s), s.String(), w)
		}
	}
}

func TestDefaultPromptSendsOnlyModelSystemAndQuestion(t *testing.T) {
	req := DefaultPrompt("gemini-3-flash-preview").Request("호미곶 가는 길?")

	if req.Temperature != nil || req.MaxOutputTokens != nil {
		t.Fatalf("default prompt should not set sampling options: %+v", req)
	}
	if req.Model != "gemini-3-flash-preview" || req.System != defaultSystem {
		t.Fatalf("unexpected request: %+v", req)
	}
}
