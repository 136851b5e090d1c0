package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"
)

// headerMap translates the spreadsheet API's column headers to catalog
// fields. The "No." column is dropped.
var headerMap = map[string]string{
	"Code":             "code",
	"Difficulty Level": "difficulty_level",
	"Skill":            "skill",
	"Example":          "example",
	"Misconceptions":   "misconceptions",
	"Dependencies":     "dependencies",
}

// Fetcher refreshes the skill catalog from the remote spreadsheet API,
// keeping a local JSON cache that is rewritten only when the data changed.
type Fetcher struct {
	// URL is the catalog endpoint (MATHSHEET_SKILLS_URL).
	URL string

	// CachePath is the local cache file.
	CachePath string

	// Client is the HTTP client; a 30s-timeout client when nil.
	Client *http.Client
}

// NewFetcher returns a Fetcher for the given endpoint and cache file.
func NewFetcher(url, cachePath string) *Fetcher {
	return &Fetcher{
		URL:       url,
		CachePath: cachePath,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Refresh fetches the catalog, validates it, and updates the cache when
// the data changed. When the fetch fails it falls back to the cached
// catalog. The second return reports whether the cache was rewritten.
func (f *Fetcher) Refresh(ctx context.Context) (*Catalog, bool, error) {
	rows, err := f.fetch(ctx)
	if err != nil {
		cached, cacheErr := Load(f.CachePath)
		if cacheErr != nil {
			return nil, false, fmt.Errorf("fetch skill catalog: %w (no usable cache: %v)", err, cacheErr)
		}
		return cached, false, nil
	}

	list := transformRows(rows)
	if err := validateCatalog(list); err != nil {
		return nil, false, fmt.Errorf("fetched skill catalog invalid: %w", err)
	}
	catalog, err := NewCatalog(list)
	if err != nil {
		return nil, false, fmt.Errorf("fetched skill catalog invalid: %w", err)
	}

	if f.unchanged(list) {
		return catalog, false, nil
	}
	if err := Save(f.CachePath, list); err != nil {
		return nil, false, fmt.Errorf("save skill catalog: %w", err)
	}
	return catalog, true, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rows, nil
}

// transformRows maps API headers to catalog fields, stringifying values
// (the spreadsheet returns difficulty levels as numbers).
func transformRows(rows []map[string]any) []Skill {
	out := make([]Skill, 0, len(rows))
	for _, row := range rows {
		var s Skill
		for oldKey, newKey := range headerMap {
			v, ok := row[oldKey]
			if !ok {
				continue
			}
			val := stringify(v)
			switch newKey {
			case "code":
				s.Code = val
			case "difficulty_level":
				s.DifficultyLevel = val
			case "skill":
				s.Name = val
			case "example":
				s.Example = val
			case "misconceptions":
				s.Misconceptions = val
			case "dependencies":
				s.Dependencies = val
			}
		}
		out = append(out, s)
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// unchanged reports whether the cache already holds exactly this list.
func (f *Fetcher) unchanged(list []Skill) bool {
	data, err := os.ReadFile(f.CachePath)
	if err != nil {
		return false
	}
	var cached []Skill
	if err := json.Unmarshal(data, &cached); err != nil {
		return false
	}
	if len(cached) != len(list) {
		return false
	}
	sorted := func(s []Skill) []Skill {
		out := append([]Skill(nil), s...)
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return out
	}
	a, b := sorted(cached), sorted(list)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
