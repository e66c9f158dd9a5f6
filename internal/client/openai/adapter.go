package openaiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

const serviceName = "openai"

// Adapter talks to any OpenAI-compatible chat completions endpoint.
type Adapter struct {
	baseURL string
	model   string
}

func NewAdapter(baseURL, model string) *Adapter {
	return &Adapter{baseURL: baseURL, model: model}
}

func (a *Adapter) Generate(ctx context.Context, credential string, req dto.GenerateRequest) (string, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return "", fmt.Errorf("openai model is required")
	}
	if req.UserMessage == "" {
		return "", fmt.Errorf("openai generate request has no content")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(credential),
		option.WithMaxRetries(0),
	}
	if a.baseURL != "" {
		opts = append(opts, option.WithBaseURL(a.baseURL))
	}
	client := openai.NewClient(opts...)

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.UserMessage))

	params := openai.ChatCompletionNewParams{
		Model:    modelName,
		Messages: messages,
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Temperature))
	}
	if req.MaxOutputTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*req.MaxOutputTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.NewMalformedResponseError(serviceName, "no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", errs.NewMalformedResponseError(serviceName, "empty message content")
	}

	logger.FromContext(ctx).Debug("openai generate completed",
		"model", modelName,
		"finish_reason", resp.Choices[0].FinishReason,
		"total_tokens", resp.Usage.TotalTokens)
	return content, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		transient := apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
		return errs.NewExternalServiceError(serviceName, apiErr.StatusCode, transient, err)
	}
	return fmt.Errorf("openai generate: %w", err)
}
