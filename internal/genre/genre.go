// Package genre defines the target-genre templates that guide world
// mapping and scene generation.
package genre

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Template describes a target genre's characteristics.
type Template struct {
	ID                string   `yaml:"id" json:"id"`
	Name              string   `yaml:"name" json:"name"`
	Tone              string   `yaml:"tone" json:"tone"`
	TechnologyLevel   string   `yaml:"technology_level" json:"technology_level"`
	NamingConventions []string `yaml:"naming_conventions" json:"naming_conventions"`
	KeyAesthetics     []string `yaml:"key_aesthetics" json:"key_aesthetics"`
	WorldRules        []string `yaml:"world_rules" json:"world_rules"`
	StyleGuidance     string   `yaml:"style_guidance" json:"style_guidance"`
}

var (
	loadOnce  sync.Once
	loadErr   error
	templates []Template
)

func load() {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(templatesYAML, &templates)
	})
}

// All returns every built-in template in declaration order.
func All() ([]Template, error) {
	load()
	if loadErr != nil {
		return nil, fmt.Errorf("parsing genre templates: %w", loadErr)
	}
	out := make([]Template, len(templates))
	copy(out, templates)
	return out, nil
}

// IDs returns the built-in genre identifiers in declaration order.
func IDs() []string {
	load()
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	return ids
}

// Get returns the template for a genre id.
func Get(id string) (*Template, error) {
	load()
	if loadErr != nil {
		return nil, fmt.Errorf("parsing genre templates: %w", loadErr)
	}
	for i := range templates {
		if templates[i].ID == id {
			t := templates[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown genre %q (available: %v)", id, IDs())
}
