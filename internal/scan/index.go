// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"fmt"
	"io"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/internal/filename"
	"github.com/broepke/ortho-catalog/pkg/types"
)

// IndexSummary aggregates one catalog build.
type IndexSummary struct {
	Indexed int
	Failed  int
	BySub   map[types.Subspecialty]int
}

// Index catalogs every document under root, inferring metadata from
// filenames only. replace clears the existing catalog first; otherwise
// records are upserted by path.
func Index(ctx context.Context, store *catalog.Store, root string, replace bool, w io.Writer) (IndexSummary, error) {
	files, err := WalkAll(root)
	if err != nil {
		return IndexSummary{}, err
	}

	if replace {
		if err := store.ClearDocuments(ctx); err != nil {
			return IndexSummary{}, err
		}
	}

	summary := IndexSummary{BySub: make(map[types.Subspecialty]int)}
	for _, f := range files {
		md := filename.Parse(f.Name)
		doc := types.Document{
			Filename:     f.Name,
			FilePath:     f.Path,
			Size:         f.Size,
			Title:        md.Title,
			Author:       md.Author,
			Year:         md.Year,
			Journal:      md.Journal,
			Subspecialty: f.Subspecialty,
			Type:         f.Type,
		}
		if _, err := store.UpsertDocument(ctx, &doc); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", f.Path, err)
			summary.Failed++
			continue
		}
		summary.Indexed++
		summary.BySub[f.Subspecialty]++
	}

	fmt.Fprintf(w, "\nIndexed %d documents (%d failed)\n", summary.Indexed, summary.Failed)
	for _, sub := range types.AllSubspecialties {
		if n := summary.BySub[sub]; n > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", sub, n)
		}
	}
	return summary, nil
}
