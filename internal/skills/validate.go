package skills

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchemaDef constrains a fetched catalog: an array of rows, each
// with a non-empty code and a skill name.
var catalogSchemaDef = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"code", "skill"},
		"properties": map[string]any{
			"code":             map[string]any{"type": "string", "minLength": 1},
			"difficulty_level": map[string]any{"type": "string"},
			"skill":            map[string]any{"type": "string"},
			"example":          map[string]any{"type": "string"},
			"misconceptions":   map[string]any{"type": "string"},
			"dependencies":     map[string]any{"type": "string"},
		},
	},
}

var compileCatalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://skill-catalog.json", catalogSchemaDef); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile("schema://skill-catalog.json")
})

// validateCatalog checks a transformed skill list against the catalog
// schema before it replaces the cache.
func validateCatalog(list []Skill) error {
	schema, err := compileCatalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	// The validator wants a parsed JSON value.
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	return schema.Validate(parsed)
}
