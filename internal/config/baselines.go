package config

import (
	"fmt"
	"os"

	"github.com/couchcryptid/ocean-sense-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// baselineFile is the on-disk layout of a BASELINES_FILE.
type baselineFile struct {
	Zones map[string]domain.Baseline `yaml:"zones"`
}

// LoadBaselines builds the baseline registry. An empty path yields the
// built-in Callao baselines; otherwise the YAML file replaces them entirely.
func LoadBaselines(path string) (*domain.BaselineRegistry, error) {
	if path == "" {
		return domain.DefaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baselines file: %w", err)
	}
	return ParseBaselines(data)
}

// ParseBaselines decodes YAML baselines and validates every zone.
func ParseBaselines(data []byte) (*domain.BaselineRegistry, error) {
	var f baselineFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse baselines: %w", err)
	}
	if len(f.Zones) == 0 {
		return nil, fmt.Errorf("parse baselines: no zones defined")
	}
	return domain.NewBaselineRegistry(f.Zones)
}
