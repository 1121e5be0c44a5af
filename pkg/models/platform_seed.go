package models

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/hooklinehq/hookline/pkg/configuration"
)

// PlatformSeed is one entry in the platform dataset file. The dataset is
// immutable reference data loaded at startup; platform behavior lives in the
// resolver, not here.
type PlatformSeed struct {
	Name             string                    `json:"name"`
	BaseURL          string                    `json:"base_url"`
	AuthType         string                    `json:"auth_type"`
	AuthHeaderFormat string                    `json:"auth_header_format"`
	Fields           []configuration.Field     `json:"fields"`
	APIMethods       map[string]PlatformMethod `json:"api_methods"`
}

// SeedPlatforms loads the YAML platform dataset and upserts each entry.
// A missing path is not an error: the built-in registry covers the common
// platforms without any stored rows.
func SeedPlatforms(path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read platform seed file %s: %w", path, err)
	}

	var seeds []PlatformSeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("failed to parse platform seed file %s: %w", path, err)
	}

	for _, seed := range seeds {
		platform := &Platform{
			Name:             seed.Name,
			BaseURL:          seed.BaseURL,
			AuthType:         seed.AuthType,
			AuthHeaderFormat: seed.AuthHeaderFormat,
			Fields:           datatypes.NewJSONType(seed.Fields),
			APIMethods:       datatypes.NewJSONType(seed.APIMethods),
		}

		if err := UpsertPlatform(platform); err != nil {
			return fmt.Errorf("failed to seed platform %s: %w", seed.Name, err)
		}
	}

	log.Infof("seeded %d platforms from %s", len(seeds), path)
	return nil
}
