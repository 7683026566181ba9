package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// FromMap applies named option values on top of the defaults. Keys are matched
// case-insensitively and may use dashes in place of underscores, so values read
// from YAML files, flags or environment variables can be passed through directly.
func FromMap(values map[string]any) (*Config, error) {
	cfg := Default()
	if err := cfg.Apply(values); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply sets named option values on c and validates the result. String
// values are converted to the option's type.
func (c *Config) Apply(values map[string]any) error {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           c,
		WeaklyTypedInput: true,
		MatchName:        matchName,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		return fmt.Errorf("%w: %s", ErrUnknownOption, strings.Join(md.Unused, ", "))
	}
	return c.Validate()
}

func matchName(key, field string) bool {
	return strings.EqualFold(strings.ReplaceAll(key, "-", "_"), field)
}
