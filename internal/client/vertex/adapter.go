package vertexclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

const serviceName = "vertex"

type Adapter struct {
	projectID string
	region    string
	model     string
}

func NewAdapter(projectID, region, model string) *Adapter {
	return &Adapter{
		projectID: projectID,
		region:    region,
		model:     model,
	}
}

// Generate opens a client bound to credential, sends one request and closes
// the client. The credential is not kept between calls.
func (a *Adapter) Generate(ctx context.Context, credential string, req dto.GenerateRequest) (string, error) {
	log := logger.FromContext(ctx)

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return "", fmt.Errorf("vertex model is required")
	}
	if req.UserMessage == "" {
		return "", fmt.Errorf("vertex generate request has no content")
	}

	client, err := genai.NewClient(ctx, a.projectID, a.region, option.WithAPIKey(credential))
	if err != nil {
		return "", fmt.Errorf("create vertex client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warn("vertex client close failed", "error", err)
		}
	}()

	model := client.GenerativeModel(modelName)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}
	if req.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(*req.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserMessage))
	if err != nil {
		return "", mapError(err)
	}

	text := parseContentResponse(resp)
	if text == "" {
		return "", errs.NewMalformedResponseError(serviceName, "no text in candidates")
	}
	log.Debug("vertex generate completed", "model", modelName, "candidates", len(resp.Candidates))
	return text, nil
}

func parseContentResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if p, ok := part.(genai.Text); ok {
				b.WriteString(string(p))
			}
		}
	}
	return b.String()
}

func mapError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return errs.NewMalformedResponseError(serviceName, blocked.Error())
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("vertex generate: %w", err)
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return errs.NewExternalServiceError(serviceName, httpStatus(st.Code()), true, err)
	default:
		return errs.NewExternalServiceError(serviceName, httpStatus(st.Code()), false, err)
	}
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return 400
	case codes.Unauthenticated:
		return 401
	case codes.PermissionDenied:
		return 403
	case codes.NotFound:
		return 404
	case codes.ResourceExhausted:
		return 429
	case codes.Unavailable:
		return 503
	case codes.DeadlineExceeded:
		return 504
	default:
		return 500
	}
}
