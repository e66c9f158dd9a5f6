package bootstrap

import (
	"context"

	"github.com/GregMSThompson/gwamegi-riders/internal/config"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
	"github.com/GregMSThompson/gwamegi-riders/internal/store"
)

type ContentStore interface {
	GetContent(ctx context.Context) (models.ClubContent, error)
	SaveContent(ctx context.Context, content models.ClubContent) error
}

func (bs *Bootstrap) initContent(ctx context.Context, cfg *config.Config) (ContentStore, error) {
	switch cfg.ContentSource {
	case config.ContentFirestore:
		return store.NewContentStore(bs.Firestore), nil
	case config.ContentFile:
		fs, err := store.NewFileContentStore(cfg.ContentFile)
		if err != nil {
			return nil, err
		}
		if err := fs.Watch(ctx); err != nil {
			bs.Log.Warn("content file watch unavailable, edits need a restart", "error", err)
		}
		return fs, nil
	default:
		return store.NewBuiltinContentStore(), nil
	}
}
