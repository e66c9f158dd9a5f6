package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
	"github.com/GregMSThompson/gwamegi-riders/pkg/helpers"
)

type stubContentStore struct {
	content models.ClubContent
	getErr  error
	saveErr error
	saved   *models.ClubContent
}

func (s *stubContentStore) GetContent(_ context.Context) (models.ClubContent, error) {
	return s.content, s.getErr
}

func (s *stubContentStore) SaveContent(_ context.Context, content models.ClubContent) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &content
	return nil
}

func TestGetContent(t *testing.T) {
	store := &stubContentStore{content: models.DefaultContent()}
	svc := NewContentService(store)

	got, err := svc.GetContent(helpers.TestCtx())
	if err != nil {
		t.Fatalf("GetContent error: %v", err)
	}
	if diff := cmp.Diff(models.DefaultContent(), got); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateContentStampsAndSaves(t *testing.T) {
	store := &stubContentStore{}
	svc := NewContentService(store)
	now := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
	svc.clockNow = func() time.Time { return now }

	in := models.DefaultContent()
	in.Tagline = "겨울에도 달린다"

	got, err := svc.UpdateContent(helpers.TestCtx(), in)
	if err != nil {
		t.Fatalf("UpdateContent error: %v", err)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}
	if store.saved == nil {
		t.Fatalf("expected content to be saved")
	}
	if diff := cmp.Diff(got, *store.saved); diff != "" {
		t.Fatalf("saved content mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateContentRejectsInvalid(t *testing.T) {
	store := &stubContentStore{}
	svc := NewContentService(store)

	in := models.DefaultContent()
	in.ClubName = ""

	_, err := svc.UpdateContent(helpers.TestCtx(), in)
	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.saved != nil {
		t.Fatalf("invalid content must not be saved")
	}
}

func TestUpdateContentReadOnlySource(t *testing.T) {
	store := &stubContentStore{saveErr: errs.NewReadOnlyError("content file is read-only")}
	svc := NewContentService(store)

	_, err := svc.UpdateContent(helpers.TestCtx(), models.DefaultContent())
	var roErr *errs.ReadOnlyError
	if !errors.As(err, &roErr) {
		t.Fatalf("expected ReadOnlyError, got %v", err)
	}
}
