// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan walks the article library, infers metadata for each file,
// and produces reviewable rename proposals. Applying approved proposals
// back to disk and catalog also lives here.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// skipDirWords marks library folders that hold non-article material.
// Their contents are never proposed for renaming.
var skipDirWords = []string{"textbook", "oite", "presentation", "timeline"}

// File is one library member found by the walk.
type File struct {
	Name         string
	Path         string // relative to the library root
	Size         int64
	Subspecialty types.Subspecialty
	Type         types.DocumentType
}

func skipDir(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range skipDirWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// indexExtensions are the document types the catalog indexes.
var indexExtensions = map[string]bool{
	".pdf": true, ".ppt": true, ".pptx": true, ".doc": true, ".docx": true,
}

// WalkAll finds every indexable document under root, including textbook
// and presentation folders the rename scan skips.
func WalkAll(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !indexExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("reading file info for %s: %w", path, err)
		}
		files = append(files, File{
			Name:         d.Name(),
			Path:         rel,
			Size:         info.Size(),
			Subspecialty: types.SubspecialtyFromPath(rel),
			Type:         types.ClassifyDocument(d.Name(), rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking library %s: %w", root, err)
	}
	return files, nil
}

// Walk finds library PDFs under root. A non-empty sub restricts the walk
// to one subspecialty; limit > 0 caps the result count.
func Walk(root string, sub types.Subspecialty, limit int) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if limit > 0 && len(files) >= limit {
			return filepath.SkipAll
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		fileSub := types.SubspecialtyFromPath(rel)
		if sub != "" && fileSub != sub {
			return nil
		}
		docType := types.ClassifyDocument(d.Name(), rel)
		if docType != types.TypeArticle {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("reading file info for %s: %w", path, err)
		}
		files = append(files, File{
			Name:         d.Name(),
			Path:         rel,
			Size:         info.Size(),
			Subspecialty: fileSub,
			Type:         docType,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking library %s: %w", root, err)
	}
	return files, nil
}
