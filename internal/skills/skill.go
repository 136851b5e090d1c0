// Package skills holds the skill catalog: the metadata (difficulty,
// example, misconception notes) behind each skill code. The catalog is an
// explicitly-owned lookup handle, loaded once and read-only afterwards.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Skill is one catalog row.
type Skill struct {
	Code            string `json:"code"`
	DifficultyLevel string `json:"difficulty_level"`
	Name            string `json:"skill"`
	Example         string `json:"example"`
	Misconceptions  string `json:"misconceptions"`
	Dependencies    string `json:"dependencies"`
}

// Catalog indexes skills by code.
type Catalog struct {
	skills []Skill
	byCode map[string]int
}

// NewCatalog builds a catalog, rejecting duplicate codes.
func NewCatalog(list []Skill) (*Catalog, error) {
	c := &Catalog{
		skills: slices.Clone(list),
		byCode: make(map[string]int, len(list)),
	}
	for i, s := range c.skills {
		if s.Code == "" {
			return nil, fmt.Errorf("skill %d: empty code", i)
		}
		if _, dup := c.byCode[s.Code]; dup {
			return nil, fmt.Errorf("duplicate skill code %q", s.Code)
		}
		c.byCode[s.Code] = i
	}
	return c, nil
}

// Get returns the skill for a code, or an error if not present.
func (c *Catalog) Get(code string) (Skill, error) {
	i, ok := c.byCode[code]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", code)
	}
	return c.skills[i], nil
}

// All returns every skill in catalog order.
func (c *Catalog) All() []Skill {
	return slices.Clone(c.skills)
}

// Len returns the number of skills.
func (c *Catalog) Len() int {
	return len(c.skills)
}

// Load reads a catalog from a local JSON cache file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill catalog: %w", err)
	}
	var list []Skill
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse skill catalog: %w", err)
	}
	return NewCatalog(list)
}

// Save writes the skill list to the cache path, creating parent
// directories as needed.
func Save(path string, list []Skill) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultCachePath resolves the catalog cache file in priority order:
// MATHSHEET_SKILLS env var, then $XDG_DATA_HOME/mathsheet/skills.json,
// then ~/.local/share/mathsheet/skills.json.
func DefaultCachePath() (string, error) {
	if p := os.Getenv("MATHSHEET_SKILLS"); p != "" {
		return p, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mathsheet", "skills.json"), nil
}
