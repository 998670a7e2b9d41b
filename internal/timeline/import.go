// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// SubspecialtyFromFilename infers which subspecialty a timeline document
// covers from its name, e.g. "Shoulder and Elbow Timeline.docx".
func SubspecialtyFromFilename(name string) types.Subspecialty {
	lower := strings.ToLower(name)
	for _, sub := range types.AllSubspecialties {
		label := strings.ReplaceAll(strings.ToLower(string(sub)), "_", " ")
		if strings.Contains(lower, label) {
			return sub
		}
	}
	return types.SubGeneral
}

// ImportDir parses every .docx timeline document under dir and returns
// the combined entries. Files are processed in name order so repeated
// imports produce identical display ordering.
func ImportDir(dir string, w io.Writer) ([]types.TimelineEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading timeline directory %s: %w", dir, err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".docx") {
			continue
		}
		if strings.HasPrefix(de.Name(), ".") || strings.HasPrefix(de.Name(), "~") {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	var all []types.TimelineEntry
	for _, name := range names {
		paragraphs, err := DocxParagraphs(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", name, err)
			continue
		}
		entries := Parse(paragraphs, SubspecialtyFromFilename(name))
		fmt.Fprintf(w, "parsed: %s (%d entries)\n", name, len(entries))
		all = append(all, entries...)
	}
	return all, nil
}
