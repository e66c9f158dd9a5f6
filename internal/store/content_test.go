package store

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/GregMSThompson/gwamegi-riders/internal/models"
)

func TestContentStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	store := NewContentStore(client)
	if _, err := store.doc.Delete(ctx); err != nil {
		t.Fatalf("reset content doc: %v", err)
	}

	got, err := store.GetContent(ctx)
	if err != nil {
		t.Fatalf("GetContent on empty store: %v", err)
	}
	if diff := cmp.Diff(models.DefaultContent(), got); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}

	updated := models.DefaultContent()
	updated.Tagline = "겨울에도 달린다"
	updated.TourTips = append(updated.TourTips, "과메기 먹고 출발")
	if err := store.SaveContent(ctx, updated); err != nil {
		t.Fatalf("SaveContent: %v", err)
	}

	got, err = store.GetContent(ctx)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not set")
	}
	if diff := cmp.Diff(updated, got, cmpopts.IgnoreFields(models.ClubContent{}, "UpdatedAt")); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}
