// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/pkg/types"
)

func TestIndex(t *testing.T) {
	root := seedLibrary(t)
	store, err := catalog.Open(types.CatalogConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	summary, err := Index(ctx, store, root, false, io.Discard)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Indexed < 5 {
		t.Errorf("indexed %d documents, want textbooks and presentations included", summary.Indexed)
	}

	// The structured filename yields catalog metadata.
	doc, err := store.FindByFilename(ctx, "1956_Rowe_JBJS_Prognosis.pdf")
	if err != nil {
		t.Fatalf("FindByFilename: %v", err)
	}
	if doc == nil {
		t.Fatal("indexed document not found")
	}
	if doc.Author != "Rowe" || doc.Year != 1956 || doc.Journal != "JBJS" {
		t.Errorf("parsed metadata = %+v", doc)
	}
	if doc.Subspecialty != types.SubTrauma || doc.Type != types.TypeArticle {
		t.Errorf("classification = %+v", doc)
	}

	// A second run without replace upserts instead of duplicating.
	again, err := Index(ctx, store, root, false, io.Discard)
	if err != nil {
		t.Fatalf("second Index: %v", err)
	}
	docs, err := store.ListDocuments(ctx, "")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != again.Indexed {
		t.Errorf("got %d documents after reindex, want %d", len(docs), again.Indexed)
	}

	// Replace rebuilds from scratch.
	replaced, err := Index(ctx, store, root, true, io.Discard)
	if err != nil {
		t.Fatalf("replace Index: %v", err)
	}
	if replaced.Indexed != summary.Indexed {
		t.Errorf("replace indexed %d, want %d", replaced.Indexed, summary.Indexed)
	}
}
