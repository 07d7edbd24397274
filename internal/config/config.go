// Package config holds the settings shared by cardex commands, decoded
// from flags, CARDEX_* environment variables and .cardex.yaml by viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmylchreest/cardex/internal/output"
	"github.com/jmylchreest/cardex/pkg/layout"
)

// DefaultInputs are tried in order when no input is given. The second
// name is a common misspelling of the first that exists in some checkouts.
var DefaultInputs = []string{"data/tr_td.pdf", "data/tr_dt.pdf"}

// ErrNoInput is returned when none of the candidate inputs exists.
var ErrNoInput = errors.New("no input document found")

// Config is the decoded configuration.
type Config struct {
	Debug   bool   `mapstructure:"debug"`
	Quiet   bool   `mapstructure:"quiet"`
	LogJSON bool   `mapstructure:"log_json"`
	Layout  string `mapstructure:"layout"`

	Bench Bench `mapstructure:"bench"`
}

// Bench configures the bench command.
type Bench struct {
	Inputs   []string `mapstructure:"input"`
	OutDir   string   `mapstructure:"out_dir"`
	Format   string   `mapstructure:"format"`
	Backends []string `mapstructure:"backend"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("bench.input", DefaultInputs)
	v.SetDefault("bench.out_dir", ".")
	v.SetDefault("bench.format", string(output.FormatJSON))
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// LoadLayout returns the layout file named by the config, or the default
// layout when none is set.
func (c *Config) LoadLayout() (layout.Layout, error) {
	if c.Layout == "" {
		return layout.Default(), nil
	}
	return layout.Load(c.Layout)
}

// OutputFormat parses the bench output format.
func (b Bench) OutputFormat() (output.Format, error) {
	return output.ParseFormat(b.Format)
}

// ResolveInput returns the first candidate path that exists. fallback is
// true when that is not the first candidate.
func ResolveInput(candidates []string) (path string, fallback bool, err error) {
	for i, c := range candidates {
		info, statErr := os.Stat(c)
		if statErr != nil || info.IsDir() {
			continue
		}
		return c, i > 0, nil
	}
	return "", false, fmt.Errorf("%w: tried %s", ErrNoInput, strings.Join(candidates, ", "))
}
