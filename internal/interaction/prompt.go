package interaction

import (
	"fmt"
	"strings"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
)

// Prompt is the fixed wrapper every question is sent in.
// Template must contain exactly one %s, replaced by the literal question.
// A nil Temperature leaves sampling to the model's default.
type Prompt struct {
	Model       string
	System      string
	Template    string
	Temperature *float32
}

const (
	defaultSystem   = "당신은 포항의 지리와 바이크 문화를 잘 아는 열정적인 라이더입니다. 친근하고 에너제틱하게 대답하세요."
	defaultTemplate = "당신은 '포항과메기라이더스'의 명예 회원입니다. 질문: %s. 포항 근처 바이크 투어 코스나 바이크 상식에 대해 친절하게 답해주세요."
)

func DefaultPrompt(model string) Prompt {
	return Prompt{
		Model:    model,
		System:   defaultSystem,
		Template: defaultTemplate,
	}
}

// Request embeds the question verbatim; it is not escaped or trimmed.
func (p Prompt) Request(question string) dto.GenerateRequest {
	tmpl := p.Template
	if !strings.Contains(tmpl, "%s") {
		tmpl = defaultTemplate
	}
	return dto.GenerateRequest{
		Model:       p.Model,
		System:      p.System,
		UserMessage: fmt.Sprintf(tmpl, question),
		Temperature: p.Temperature,
	}
}

// Messages are the fixed notifications shown instead of raw errors.
type Messages struct {
	Failure           string
	MissingCredential string
}

func DefaultMessages() Messages {
	return Messages{
		Failure:           "AI 라이더가 잠시 휴식 중입니다. 나중에 다시 시도해주세요!",
		MissingCredential: "AI 가이드 설정을 위해 API 키가 필요합니다.",
	}
}

func (m Messages) For(reason Reason) string {
	if reason == ReasonMissingCredential && m.MissingCredential != "" {
		return m.MissingCredential
	}
	return m.Failure
}
