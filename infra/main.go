package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/gwamegi-riders/infra/cloudrun"
	"github.com/GregMSThompson/gwamegi-riders/infra/docker"
	"github.com/GregMSThompson/gwamegi-riders/infra/firestore"
	"github.com/GregMSThompson/gwamegi-riders/infra/identity"
	"github.com/GregMSThompson/gwamegi-riders/infra/kms"
	"github.com/GregMSThompson/gwamegi-riders/infra/provider"
	"github.com/GregMSThompson/gwamegi-riders/infra/secret"
	"github.com/GregMSThompson/gwamegi-riders/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		ridersCfg := config.New(ctx, "riders")
		credentialSource := ridersCfg.Get("credentialSource")
		if credentialSource == "" {
			credentialSource = "secret"
		}
		contentSource := ridersCfg.Get("contentSource")
		if contentSource == "" {
			contentSource = "firestore"
		}

		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// admins sign in through Identity Platform (firebase)
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		if contentSource == "firestore" {
			if err := firestore.SetupFirestore(ctx, prov); err != nil {
				return err
			}
		}

		vertexSvc, err := vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		apiSA, err := cloudrun.CreateServiceAccount(ctx, prov, contentSource == "firestore")
		if err != nil {
			return err
		}

		cred := &cloudrun.Credential{Source: credentialSource}
		switch credentialSource {
		case "kms":
			if _, err := kms.SetupKMS(ctx, prov); err != nil {
				return err
			}
			keyID, err := kms.CreateKey(ctx, prov, "riders", "api-key")
			if err != nil {
				return err
			}
			if err := kms.GrantDecrypter(ctx, prov, keyID, apiSA); err != nil {
				return err
			}
			cred.KMSKeyName = keyID
			cred.SealedAPIKey = ridersCfg.RequireSecret("sealedApiKey")
			ctx.Export("kmsKeyName", keyID)
		default:
			secretSvc, err := secret.SetupSecretManager(ctx, prov, apiSA)
			if err != nil {
				return err
			}
			name, err := secret.AddSecret(ctx, "geminiApiKeySecret", "gemini-api-key", ridersCfg.RequireSecret("geminiApiKey"))
			if err != nil {
				return err
			}
			cred.SecretName = name
			cred.Deps = append(cred.Deps, secretSvc)
		}

		url, err := cloudrun.SetupCloudRun(ctx, prov, apiSA, cred, contentSource, ident, repo, vertexSvc)
		if err != nil {
			return err
		}
		ctx.Export("url", url)

		return nil
	})
}
