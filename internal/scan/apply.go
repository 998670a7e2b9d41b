// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/pkg/types"
)

// ApplySummary aggregates one apply run.
type ApplySummary struct {
	Renamed int
	Skipped int
	Errors  int
}

// rollbackEntry records one executed rename so it can be undone by hand.
type rollbackEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type rollbackManifest struct {
	AppliedAt string          `yaml:"applied_at"`
	Renames   []rollbackEntry `yaml:"renames"`
}

// Applier executes approved rename proposals against the filesystem and
// the catalog.
type Applier struct {
	Root  string
	Store *catalog.Store

	// DryRun prints the plan without touching disk or catalog.
	DryRun bool

	// ManifestPath receives the rollback manifest after a live run.
	// Empty disables manifest writing.
	ManifestPath string
}

// Apply processes proposals in place: approved records are renamed and
// flipped to applied or error, everything else is marked skipped. Records
// already in a terminal state are left alone, so a partially failed run
// can be re-applied from its own output. One failing record never aborts
// the run.
func (a *Applier) Apply(ctx context.Context, proposals []types.RenameProposal, w io.Writer) (ApplySummary, error) {
	var summary ApplySummary
	var manifest rollbackManifest

	for i := range proposals {
		p := &proposals[i]
		switch p.Status {
		case types.StatusApproved:
		case types.StatusApplied, types.StatusError:
			// Terminal from a previous run.
			continue
		default:
			p.Status = types.StatusSkipped
			summary.Skipped++
			continue
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}

		newName, err := a.uniqueName(filepath.Dir(p.CurrentPath), p.SuggestedName, p.CurrentFilename)
		if err != nil {
			fmt.Fprintf(w, "error:   %s (%v)\n", p.CurrentPath, err)
			p.Status = types.StatusError
			summary.Errors++
			continue
		}
		if newName == p.CurrentFilename {
			fmt.Fprintf(w, "skipped: %s (already canonical)\n", p.CurrentPath)
			p.Status = types.StatusSkipped
			summary.Skipped++
			continue
		}
		newPath := filepath.Join(filepath.Dir(p.CurrentPath), newName)

		if a.DryRun {
			fmt.Fprintf(w, "would rename: %s -> %s\n", p.CurrentPath, newPath)
			summary.Renamed++
			continue
		}

		if err := a.rename(ctx, p, newName, newPath); err != nil {
			fmt.Fprintf(w, "error:   %s (%v)\n", p.CurrentPath, err)
			p.Status = types.StatusError
			summary.Errors++
			continue
		}

		fmt.Fprintf(w, "renamed: %s -> %s\n", p.CurrentPath, newPath)
		manifest.Renames = append(manifest.Renames, rollbackEntry{From: p.CurrentPath, To: newPath})
		p.CurrentFilename = newName
		p.CurrentPath = newPath
		p.Status = types.StatusApplied
		summary.Renamed++
	}

	if !a.DryRun && a.ManifestPath != "" && len(manifest.Renames) > 0 {
		manifest.AppliedAt = time.Now().UTC().Format(time.RFC3339)
		if err := writeManifest(a.ManifestPath, manifest); err != nil {
			return summary, err
		}
		fmt.Fprintf(w, "\nRollback manifest: %s\n", a.ManifestPath)
	}

	fmt.Fprintf(w, "\nApply summary: %d renamed, %d skipped, %d errors\n",
		summary.Renamed, summary.Skipped, summary.Errors)
	return summary, nil
}

// rename moves the file and updates its catalog record in that order. A
// catalog miss is not an error; the next index run picks the file up.
func (a *Applier) rename(ctx context.Context, p *types.RenameProposal, newName, newPath string) error {
	oldFull := filepath.Join(a.Root, p.CurrentPath)
	newFull := filepath.Join(a.Root, newPath)

	if _, err := os.Stat(newFull); err == nil {
		return fmt.Errorf("target %s already exists", newPath)
	}
	if err := os.Rename(oldFull, newFull); err != nil {
		return fmt.Errorf("renaming: %w", err)
	}

	doc, err := a.Store.FindByPath(ctx, p.CurrentPath)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	return a.Store.UpdateDocument(ctx, doc.ID, newName, newPath, p.Merged)
}

// uniqueName resolves collisions with files already in the target
// directory by suffixing _1, _2, ... before the extension. The file's own
// current name never counts as a collision.
func (a *Applier) uniqueName(dir, suggested, current string) (string, error) {
	ext := filepath.Ext(suggested)
	stem := strings.TrimSuffix(suggested, ext)

	name := suggested
	for n := 1; ; n++ {
		if name == current {
			return name, nil
		}
		_, err := os.Stat(filepath.Join(a.Root, dir, name))
		if os.IsNotExist(err) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", name, err)
		}
		if n > 100 {
			return "", fmt.Errorf("no unique name found for %s", suggested)
		}
		name = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
}

func writeManifest(path string, m rollbackManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshalling rollback manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rollback manifest %s: %w", path, err)
	}
	return nil
}
