package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
)

// Content path
// club/content

type contentStore struct {
	client *firestore.Client
	doc    *firestore.DocumentRef
}

func NewContentStore(client *firestore.Client) *contentStore {
	return &contentStore{
		client: client,
		doc:    client.Collection("club").Doc("content"),
	}
}

// GetContent falls back to the built-in content until an admin saves a document.
func (s *contentStore) GetContent(ctx context.Context) (models.ClubContent, error) {
	snap, err := s.doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.DefaultContent(), nil
	}
	if err != nil {
		return models.ClubContent{}, errs.NewDatabaseError("read", "failed to get club content", err)
	}

	var content models.ClubContent
	if err := snap.DataTo(&content); err != nil {
		return models.ClubContent{}, errs.NewDatabaseError("read", "failed to parse club content", err)
	}
	return content, nil
}

func (s *contentStore) SaveContent(ctx context.Context, content models.ClubContent) error {
	if content.UpdatedAt.IsZero() {
		content.UpdatedAt = time.Now()
	}
	if _, err := s.doc.Set(ctx, content); err != nil {
		return errs.NewDatabaseError("write", "failed to save club content", err)
	}
	return nil
}
