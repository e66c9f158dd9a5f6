package bootstrap

import (
	"context"
	"errors"

	kmsapi "cloud.google.com/go/kms/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	openaiclient "github.com/GregMSThompson/gwamegi-riders/internal/client/openai"
	vertexclient "github.com/GregMSThompson/gwamegi-riders/internal/client/vertex"
	"github.com/GregMSThompson/gwamegi-riders/internal/config"
	"github.com/GregMSThompson/gwamegi-riders/internal/credential"
	"github.com/GregMSThompson/gwamegi-riders/internal/crypto"
	"github.com/GregMSThompson/gwamegi-riders/internal/interaction"
)

func InitGenerator(cfg *config.Config) interaction.Generator {
	if cfg.AIProvider == config.AIProviderOpenAI {
		return openaiclient.NewAdapter(cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}
	return vertexclient.NewAdapter(cfg.ProjectID, cfg.Region, cfg.VertexModel)
}

func (bs *Bootstrap) initCredentials(ctx context.Context, cfg *config.Config) (interaction.CredentialProvider, error) {
	switch cfg.CredentialSource {
	case config.CredentialSecret:
		if cfg.ProjectID == "" {
			return nil, errors.New("CREDENTIALSOURCE=secret requires PROJECTID")
		}
		client, err := secretmanager.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		bs.Secrets = client
		return credential.NewSecretProvider(client, cfg.ProjectID, cfg.APIKeySecret), nil
	case config.CredentialKMS:
		if cfg.KMSKeyName == "" {
			return nil, errors.New("CREDENTIALSOURCE=kms requires KMSKEYNAME")
		}
		client, err := kmsapi.NewKeyManagementClient(ctx)
		if err != nil {
			return nil, err
		}
		bs.KMS = client
		return credential.NewKMSProvider(crypto.NewKMS(client, cfg.KMSKeyName), cfg.SealedAPIKeyEnv), nil
	case config.CredentialKeyring:
		ring, err := credential.OpenKeyring()
		if err != nil {
			return nil, err
		}
		return credential.NewKeyringProvider(ring, credential.KeyringKey), nil
	default:
		return credential.NewEnvProvider(cfg.APIKeyEnv), nil
	}
}
