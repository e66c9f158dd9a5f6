package store

import (
	"context"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
)

type builtinContentStore struct{}

func NewBuiltinContentStore() *builtinContentStore {
	return &builtinContentStore{}
}

func (builtinContentStore) GetContent(_ context.Context) (models.ClubContent, error) {
	return models.DefaultContent(), nil
}

func (builtinContentStore) SaveContent(_ context.Context, _ models.ClubContent) error {
	return errs.NewReadOnlyError("built-in content cannot be changed; configure CONTENTSOURCE=firestore")
}
