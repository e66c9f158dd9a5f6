package credential

import (
	"context"
	"fmt"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
)

// Secrets path
// projects/{project}/secrets/{secretID}/versions/latest

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type secretProvider struct {
	client    secretAccessor
	projectID string
	secretID  string
}

func NewSecretProvider(client secretAccessor, projectID, secretID string) *secretProvider {
	return &secretProvider{
		client:    client,
		projectID: projectID,
		secretID:  secretID,
	}
}

func (p *secretProvider) versionName() string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.projectID, p.secretID)
}

// Credential treats a missing secret or a disabled/destroyed latest version as absent.
func (p *secretProvider) Credential(ctx context.Context) (string, error) {
	res, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: p.versionName(),
	})
	switch status.Code(err) {
	case codes.OK:
	case codes.NotFound, codes.FailedPrecondition:
		return "", nil
	default:
		return "", errs.NewCredentialError("secret manager", err)
	}
	if res.GetPayload() == nil {
		return "", nil
	}
	return string(res.GetPayload().GetData()), nil
}
