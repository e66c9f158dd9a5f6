package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	kmsapi "cloud.google.com/go/kms/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/gwamegi-riders/internal/config"
	"github.com/GregMSThompson/gwamegi-riders/internal/interaction"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

type Bootstrap struct {
	Log         *slog.Logger
	Firestore   *firestore.Client
	Firebase    *auth.Client
	KMS         *kmsapi.KeyManagementClient
	Secrets     *secretmanager.Client
	Generator   interaction.Generator
	Credentials interaction.CredentialProvider
	Content     ContentStore

	cancel context.CancelFunc
}

// Run builds every long-lived dependency. Google clients are only opened
// when the configuration needs them, so a local run with the env
// credential and built-in content needs no project at all.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx, cancel := context.WithCancel(context.Background())
	bs := &Bootstrap{cancel: cancel}

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	applicationCtx = logger.ToContext(applicationCtx, bs.Log)

	if cfg.ProjectID != "" {
		bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	} else {
		bs.Log.Warn("PROJECTID not set, admin routes are disabled")
	}
	if cfg.ContentSource == config.ContentFirestore {
		if cfg.ProjectID == "" {
			return bs, errors.New("CONTENTSOURCE=firestore requires PROJECTID")
		}
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	}

	bs.Credentials, err = bs.initCredentials(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Generator = InitGenerator(cfg)
	bs.Content, err = bs.initContent(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}

	bs.Log.Info("bootstrap complete",
		"ai_provider", string(cfg.AIProvider),
		"model", cfg.Model(),
		"credential_source", string(cfg.CredentialSource),
		"content_source", string(cfg.ContentSource),
	)
	return bs, nil
}

// Close stops background watchers and closes the Google clients that were opened.
func (bs *Bootstrap) Close() {
	if bs.cancel != nil {
		bs.cancel()
	}
	closers := map[string]func() error{}
	if bs.Firestore != nil {
		closers["firestore"] = bs.Firestore.Close
	}
	if bs.KMS != nil {
		closers["kms"] = bs.KMS.Close
	}
	if bs.Secrets != nil {
		closers["secretmanager"] = bs.Secrets.Close
	}
	for name, closeFn := range closers {
		if err := closeFn(); err != nil && bs.Log != nil {
			bs.Log.Warn("failed to close client", "client", name, "error", err)
		}
	}
}
