// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup enriches extracted metadata from the Scopus abstract
// search API. Results are only trusted when the returned title is close
// to the local one; the external record then outranks every local
// extraction source during merge.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/broepke/ortho-catalog/internal/httputil"
	"github.com/broepke/ortho-catalog/internal/journals"
	"github.com/broepke/ortho-catalog/internal/match"
	"github.com/broepke/ortho-catalog/pkg/types"
)

// scopusAPIBase is the Scopus search endpoint. Declared as a var so tests
// can substitute an httptest server.
var scopusAPIBase = "https://api.elsevier.com/content/search/scopus"

const (
	// minQueryTitleLen guards against junk queries: a title shorter than
	// this is almost always a parse artifact, not an article title.
	minQueryTitleLen = 20

	// minTitleSimilarity is the accept threshold between the local title
	// and the returned record's title.
	minTitleSimilarity = 0.4

	defaultRequestInterval = 500 * time.Millisecond
)

// nonClinicalWords reject Scopus hits from journals outside the clinical
// literature. Homonymous titles in materials or veterinary journals
// otherwise slip through the similarity gate.
var nonClinicalWords = []string{
	"materials", "engineering", "physics", "chemistry", "chemical",
	"veterinary", "dental", "dentistry", "polymer", "mechanical",
	"computing", "computer",
}

// scopusResponse captures the fields we need from a Scopus search result.
type scopusResponse struct {
	SearchResults struct {
		Entry []scopusEntry `json:"entry"`
	} `json:"search-results"`
}

type scopusEntry struct {
	Title       string `json:"dc:title"`
	Creator     string `json:"dc:creator"`
	Publication string `json:"prism:publicationName"`
	CoverDate   string `json:"prism:coverDate"`
	Error       string `json:"error"`
}

// Client queries Scopus with a fixed inter-request interval. It is safe
// for concurrent use; callers sharing one Client serialize onto the
// interval.
type Client struct {
	http       *http.Client
	apiKey     string
	interval   time.Duration
	maxRetries int

	mu       sync.Mutex // guards lastCall
	lastCall time.Time
}

// NewClient builds a Scopus client. The API key comes from the secrets
// directory or config; an empty key disables lookups at the caller.
func NewClient(cfg types.LookupConfig) *Client {
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = defaultRequestInterval
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		interval:   interval,
		maxRetries: cfg.MaxRetries,
	}
}

// Lookup searches Scopus by article title and returns validated metadata.
// ok is false when the title is too short to query, no record came back,
// or the best record failed the similarity or journal gates.
func (c *Client) Lookup(ctx context.Context, title string) (types.Metadata, bool, error) {
	if len(strings.TrimSpace(title)) < minQueryTitleLen {
		return types.Metadata{}, false, nil
	}

	c.pace()

	query := url.Values{}
	query.Set("query", fmt.Sprintf("TITLE(%q)", strings.TrimSpace(title)))
	query.Set("count", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scopusAPIBase+"?"+query.Encode(), nil)
	if err != nil {
		return types.Metadata{}, false, fmt.Errorf("creating Scopus request: %w", err)
	}
	req.Header.Set("X-ELS-APIKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.Metadata{}, false, fmt.Errorf("Scopus API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Metadata{}, false, fmt.Errorf("Scopus API returned HTTP %d", resp.StatusCode)
	}

	var sr scopusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.Metadata{}, false, fmt.Errorf("parsing Scopus response: %w", err)
	}

	for _, entry := range sr.SearchResults.Entry {
		if entry.Error != "" || entry.Title == "" {
			continue
		}
		if match.TitleSimilarity(title, entry.Title) < minTitleSimilarity {
			continue
		}
		if !clinicalJournal(entry.Publication) {
			continue
		}
		return types.Metadata{
			Title:   entry.Title,
			Author:  surname(entry.Creator),
			Year:    coverYear(entry.CoverDate),
			Journal: journals.AbbreviateFullName(entry.Publication),
		}, true, nil
	}
	return types.Metadata{}, false, nil
}

// pace enforces the fixed interval between consecutive API calls. The
// lock is held across the sleep so concurrent workers queue onto the
// interval instead of all observing the same stale lastCall.
func (c *Client) pace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.lastCall.IsZero() {
		if wait := c.interval - time.Since(c.lastCall); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastCall = time.Now()
}

// clinicalJournal rejects publications whose names mark them as outside
// the clinical literature.
func clinicalJournal(publication string) bool {
	lower := strings.ToLower(publication)
	for _, word := range nonClinicalWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// surname reduces a Scopus creator label such as "Rowe C.R." to the
// surname alone.
func surname(creator string) string {
	fields := strings.Fields(strings.SplitN(creator, ",", 2)[0])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// coverYear parses the year from a prism:coverDate such as "2001-06-15".
func coverYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
