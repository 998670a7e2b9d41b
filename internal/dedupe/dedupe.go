// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedupe groups equivalent library files and picks one canonical
// survivor per group. Three signals run in order, each pass excluding
// files already grouped: exact current filename, shared canonical
// suggested filename (size-guarded), and identical content hash.
package dedupe

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// Entry is one scanned file the finder considers.
type Entry struct {
	Filename      string
	Path          string // relative to the library root
	Subspecialty  types.Subspecialty
	SuggestedName string
}

const defaultSizeTolerance = 0.10

// Finder locates duplicate groups. The stat and hash functions default to
// the real filesystem and are replaceable in tests.
type Finder struct {
	Root          string
	SizeTolerance float64
	CheckContent  bool

	fileSize func(path string) int64
	fileHash func(path string) string
}

// NewFinder builds a Finder over the library root.
func NewFinder(cfg types.DedupeConfig) *Finder {
	tolerance := cfg.SizeTolerance
	if tolerance <= 0 {
		tolerance = defaultSizeTolerance
	}
	return &Finder{
		Root:          cfg.LibraryRoot,
		SizeTolerance: tolerance,
		CheckContent:  cfg.CheckContent,
		fileSize:      statSize,
		fileHash:      md5Hash,
	}
}

func statSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func md5Hash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}

// FindGroups runs the three grouping passes over entries and returns the
// duplicate groups with keep decisions applied. The result is
// deterministic for identical inputs.
func (f *Finder) FindGroups(entries []Entry, w io.Writer) []types.DuplicateGroup {
	var groups []types.DuplicateGroup

	grouped := make(map[string]bool) // relative path → already in a group
	losers := make(map[string]bool)  // relative path → grouped and not kept

	record := func(g types.DuplicateGroup) {
		for _, file := range g.Files {
			grouped[file.Path] = true
			if !file.Keep {
				losers[file.Path] = true
			}
		}
		groups = append(groups, g)
	}

	// Pass 1: exact current-filename collisions, case-insensitive.
	for _, bucket := range bucketBy(entries, nil, func(e Entry) string {
		return strings.ToLower(e.Filename)
	}) {
		g := f.buildGroup(bucket.key, types.GroupExactFilename, bucket.entries, "Duplicate")
		record(g)
	}

	// Pass 2: same suggested canonical name. Only losers of pass 1 are
	// excluded; a kept file can still anchor a suggested-name group.
	for _, bucket := range bucketBy(entries, losers, func(e Entry) string {
		return strings.ToLower(e.SuggestedName)
	}) {
		if bucket.key == "" {
			continue
		}
		files := f.resolve(bucket.entries)
		if f.sizesDiverge(files) {
			// Significantly different sizes suggest two unrelated articles
			// that happened to normalize to the same name.
			continue
		}
		g := f.buildGroupFromFiles(bucket.key, types.GroupSuggestedFilename, files, "Same article (different filename)")
		record(g)
	}

	// Pass 3: identical content among everything still ungrouped.
	if f.CheckContent {
		fmt.Fprintln(w, "Checking content hashes (this may take a while)...")
		var remaining []Entry
		for _, e := range entries {
			if !grouped[e.Path] {
				remaining = append(remaining, e)
			}
		}
		for _, bucket := range bucketBy(remaining, nil, func(e Entry) string {
			return f.fileHash(filepath.Join(f.Root, e.Path))
		}) {
			if bucket.key == "" {
				continue
			}
			key := bucket.key
			if len(key) > 8 {
				key = key[:8]
			}
			g := f.buildGroup(key, types.GroupContentHash, bucket.entries, "Identical content")
			record(g)
		}
	}

	return groups
}

type bucket struct {
	key     string
	entries []Entry
}

// bucketBy groups entries by key, skipping excluded paths, and returns
// only buckets with more than one member, in first-seen key order.
func bucketBy(entries []Entry, exclude map[string]bool, key func(Entry) string) []bucket {
	byKey := make(map[string][]Entry)
	var order []string
	for _, e := range entries {
		if exclude != nil && exclude[e.Path] {
			continue
		}
		k := key(e)
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], e)
	}

	var buckets []bucket
	for _, k := range order {
		if len(byKey[k]) > 1 {
			buckets = append(buckets, bucket{key: k, entries: byKey[k]})
		}
	}
	return buckets
}

// resolve materializes group members with their on-disk sizes.
func (f *Finder) resolve(entries []Entry) []types.DuplicateFile {
	files := make([]types.DuplicateFile, len(entries))
	for i, e := range entries {
		full := filepath.Join(f.Root, e.Path)
		files[i] = types.DuplicateFile{
			Path:         e.Path,
			FullPath:     full,
			Subspecialty: e.Subspecialty,
			Size:         f.fileSize(full),
		}
	}
	return files
}

func (f *Finder) buildGroup(key string, gt types.DuplicateGroupType, entries []Entry, loseReason string) types.DuplicateGroup {
	return f.buildGroupFromFiles(key, gt, f.resolve(entries), loseReason)
}

func (f *Finder) buildGroupFromFiles(key string, gt types.DuplicateGroupType, files []types.DuplicateFile, loseReason string) types.DuplicateGroup {
	best := chooseBest(files)
	for i := range files {
		if i == best {
			files[i].Keep = true
			files[i].Reason = "Best location"
		} else {
			files[i].Keep = false
			files[i].Reason = loseReason
		}
	}
	return types.DuplicateGroup{Key: key, Type: gt, Files: files}
}

// chooseBest picks the canonical survivor: lowest subspecialty priority
// rank, ties broken by largest size, then by input order for referential
// stability across runs.
func chooseBest(files []types.DuplicateFile) int {
	indices := make([]int, len(files))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		fa, fb := files[indices[a]], files[indices[b]]
		ra, rb := fa.Subspecialty.PriorityRank(), fb.Subspecialty.PriorityRank()
		if ra != rb {
			return ra < rb
		}
		return fa.Size > fb.Size
	})
	return indices[0]
}

// sizesDiverge reports whether any member deviates from the group mean
// size by more than the tolerance.
func (f *Finder) sizesDiverge(files []types.DuplicateFile) bool {
	var sum, n float64
	for _, file := range files {
		if file.Size > 0 {
			sum += float64(file.Size)
			n++
		}
	}
	if n == 0 {
		return false
	}
	mean := sum / n
	for _, file := range files {
		if file.Size > 0 && math.Abs(float64(file.Size)-mean)/mean > f.SizeTolerance {
			return true
		}
	}
	return false
}

// Remove deletes every non-kept file in the groups, printing per-file
// outcomes. It never runs unless the caller explicitly asked for
// deletion; dry-run handling lives above this function.
func (f *Finder) Remove(groups []types.DuplicateGroup, w io.Writer) (deleted, failed int) {
	for _, g := range groups {
		for _, file := range g.Files {
			if file.Keep {
				continue
			}
			if err := os.Remove(file.FullPath); err != nil {
				fmt.Fprintf(w, "error deleting %s: %v\n", file.Path, err)
				failed++
				continue
			}
			fmt.Fprintf(w, "deleted: %s\n", file.Path)
			deleted++
		}
	}
	fmt.Fprintf(w, "\nDeleted: %d files\n", deleted)
	if failed > 0 {
		fmt.Fprintf(w, "Errors: %d\n", failed)
	}
	return deleted, failed
}
