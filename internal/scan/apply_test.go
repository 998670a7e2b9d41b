// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/pkg/types"
)

// applyFixture builds a library root with one file per proposal and a
// catalog seeded with matching records.
func applyFixture(t *testing.T, proposals []types.RenameProposal) (string, *catalog.Store) {
	t.Helper()
	root := t.TempDir()
	store, err := catalog.Open(types.CatalogConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, p := range proposals {
		full := filepath.Join(root, filepath.FromSlash(p.CurrentPath))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("pdf bytes"), 0o644); err != nil {
			t.Fatal(err)
		}
		doc := types.Document{
			Filename: p.CurrentFilename, FilePath: p.CurrentPath,
			Subspecialty: p.Subspecialty, Type: types.TypeArticle,
		}
		if _, err := store.UpsertDocument(context.Background(), &doc); err != nil {
			t.Fatalf("UpsertDocument: %v", err)
		}
	}
	return root, store
}

func TestApplyRenames(t *testing.T) {
	proposals := []types.RenameProposal{
		{
			CurrentFilename: "rowe-dislocations.pdf",
			CurrentPath:     "Trauma/rowe-dislocations.pdf",
			Subspecialty:    types.SubTrauma,
			Merged:          types.Metadata{Author: "Rowe", Year: 1956, Journal: "JBJS", Title: "Prognosis"},
			SuggestedName:   "1956_Rowe_JBJS_Prognosis.pdf",
			Status:          types.StatusApproved,
		},
		{
			CurrentFilename: "scan0042.pdf",
			CurrentPath:     "General/scan0042.pdf",
			Subspecialty:    types.SubGeneral,
			SuggestedName:   "Unknown_Unknown_Unknown_Untitled.pdf",
			Status:          types.StatusSkip,
		},
	}
	root, store := applyFixture(t, proposals)
	manifest := filepath.Join(t.TempDir(), "rollback.yaml")
	a := &Applier{Root: root, Store: store, ManifestPath: manifest}

	summary, err := a.Apply(context.Background(), proposals, io.Discard)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Renamed != 1 || summary.Skipped != 1 || summary.Errors != 0 {
		t.Errorf("summary = %+v", summary)
	}

	// The file moved on disk.
	renamed := filepath.Join(root, "Trauma", "1956_Rowe_JBJS_Prognosis.pdf")
	if _, err := os.Stat(renamed); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "Trauma", "rowe-dislocations.pdf")); !os.IsNotExist(err) {
		t.Error("original file still present")
	}

	// The catalog record followed, with metadata folded in.
	doc, err := store.FindByPath(context.Background(), filepath.Join("Trauma", "1956_Rowe_JBJS_Prognosis.pdf"))
	if err != nil {
		t.Fatalf("FindByPath: %v", err)
	}
	if doc == nil {
		t.Fatal("catalog record not updated")
	}
	if doc.Author != "Rowe" || doc.Year != 1956 {
		t.Errorf("catalog metadata = %+v", doc)
	}

	// The proposal records carry the outcome.
	if proposals[0].Status != types.StatusApplied {
		t.Errorf("status = %q", proposals[0].Status)
	}
	if proposals[1].Status != types.StatusSkipped {
		t.Errorf("skip proposal status = %q", proposals[1].Status)
	}

	// The rollback manifest records the executed rename.
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	var m rollbackManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest parse: %v", err)
	}
	if len(m.Renames) != 1 || m.Renames[0].From != "Trauma/rowe-dislocations.pdf" {
		t.Errorf("manifest = %+v", m)
	}
}

func TestApplyCollision(t *testing.T) {
	proposals := []types.RenameProposal{{
		CurrentFilename: "copy.pdf",
		CurrentPath:     "Trauma/copy.pdf",
		Subspecialty:    types.SubTrauma,
		SuggestedName:   "1956_Rowe_JBJS_Prognosis.pdf",
		Status:          types.StatusApproved,
	}}
	root, store := applyFixture(t, proposals)
	occupied := filepath.Join(root, "Trauma", "1956_Rowe_JBJS_Prognosis.pdf")
	if err := os.WriteFile(occupied, []byte("other pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := &Applier{Root: root, Store: store}

	summary, err := a.Apply(context.Background(), proposals, io.Discard)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Renamed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(root, "Trauma", "1956_Rowe_JBJS_Prognosis_1.pdf")); err != nil {
		t.Errorf("collision suffix not applied: %v", err)
	}
}

func TestApplyAlreadyCanonical(t *testing.T) {
	proposals := []types.RenameProposal{{
		CurrentFilename: "1956_Rowe_JBJS_Prognosis.pdf",
		CurrentPath:     "Trauma/1956_Rowe_JBJS_Prognosis.pdf",
		Subspecialty:    types.SubTrauma,
		SuggestedName:   "1956_Rowe_JBJS_Prognosis.pdf",
		Status:          types.StatusApproved,
	}}
	root, store := applyFixture(t, proposals)
	a := &Applier{Root: root, Store: store}

	summary, err := a.Apply(context.Background(), proposals, io.Discard)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Skipped != 1 || summary.Renamed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if proposals[0].Status != types.StatusSkipped {
		t.Errorf("status = %q", proposals[0].Status)
	}
}

func TestApplyDryRun(t *testing.T) {
	proposals := []types.RenameProposal{{
		CurrentFilename: "rowe.pdf",
		CurrentPath:     "Trauma/rowe.pdf",
		Subspecialty:    types.SubTrauma,
		SuggestedName:   "1956_Rowe_JBJS_Prognosis.pdf",
		Status:          types.StatusApproved,
	}}
	root, store := applyFixture(t, proposals)
	a := &Applier{Root: root, Store: store, DryRun: true}

	var out strings.Builder
	summary, err := a.Apply(context.Background(), proposals, &out)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Renamed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out.String(), "would rename") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(root, "Trauma", "rowe.pdf")); err != nil {
		t.Error("dry run moved the file")
	}
	if proposals[0].Status != types.StatusApproved {
		t.Errorf("dry run changed status to %q", proposals[0].Status)
	}
}

// Re-applying an output file with applied and error records leaves those
// records alone.
func TestApplyReentrant(t *testing.T) {
	proposals := []types.RenameProposal{
		{
			CurrentFilename: "1956_Rowe_JBJS_Prognosis.pdf",
			CurrentPath:     "Trauma/1956_Rowe_JBJS_Prognosis.pdf",
			Subspecialty:    types.SubTrauma,
			SuggestedName:   "1956_Rowe_JBJS_Prognosis.pdf",
			Status:          types.StatusApplied,
		},
		{
			CurrentFilename: "broken.pdf",
			CurrentPath:     "Trauma/broken.pdf",
			Subspecialty:    types.SubTrauma,
			SuggestedName:   "1990_X_Y_Z.pdf",
			Status:          types.StatusError,
		},
	}
	root, store := applyFixture(t, proposals)
	a := &Applier{Root: root, Store: store}

	summary, err := a.Apply(context.Background(), proposals, io.Discard)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Renamed != 0 || summary.Skipped != 0 || summary.Errors != 0 {
		t.Errorf("terminal records were reprocessed: %+v", summary)
	}
	if proposals[0].Status != types.StatusApplied || proposals[1].Status != types.StatusError {
		t.Errorf("statuses = %q, %q", proposals[0].Status, proposals[1].Status)
	}
}
