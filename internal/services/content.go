package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

type contentStore interface {
	GetContent(ctx context.Context) (models.ClubContent, error)
	SaveContent(ctx context.Context, content models.ClubContent) error
}

type contentService struct {
	store    contentStore
	clockNow func() time.Time
}

func NewContentService(store contentStore) *contentService {
	return &contentService{
		store:    store,
		clockNow: time.Now,
	}
}

func (s *contentService) GetContent(ctx context.Context) (models.ClubContent, error) {
	return s.store.GetContent(ctx)
}

func (s *contentService) UpdateContent(ctx context.Context, content models.ClubContent) (models.ClubContent, error) {
	log := logger.FromContext(ctx)

	if err := content.Validate(); err != nil {
		return models.ClubContent{}, errs.NewValidationError(err.Error())
	}
	content.UpdatedAt = s.clockNow()

	if err := s.store.SaveContent(ctx, content); err != nil {
		log.Error("failed to save club content", "error", err)
		return models.ClubContent{}, err
	}

	log.Info("club content updated", "rules", len(content.Rules), "tour_tips", len(content.TourTips), "signals", len(content.Signals))
	return content, nil
}
