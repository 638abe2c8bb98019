// Package config loads optional grammar overrides from a .commitmsg.yml
// file at the repository root.
//
// The only tunable today is the context line limit. It is deliberately a
// single configuration value threaded into both the formatter and the
// linter (via message.Rules), so the two sides can never drift apart on
// what they accept.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/commitmsg/internal/message"
)

// FileName is the configuration file looked up at the repository root.
const FileName = ".commitmsg.yml"

// Limits mirrors the YAML structure of the configuration file.
type Limits struct {
	// MaxContextLines overrides the maximum number of non-blank lines in
	// the Context section. Zero means "use the default".
	MaxContextLines int `yaml:"maxContextLines"`
}

// Load reads the configuration file from the repository root and returns
// the grammar rules to use. A missing file is not an error: the defaults
// apply. A present but malformed file is an error — silently ignoring a
// config the user wrote would hide typos.
func Load(root string) (message.Rules, error) {
	rules := message.DefaultRules()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rules, nil
		}
		return rules, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var limits Limits
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return rules, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	if limits.MaxContextLines < 0 {
		return rules, fmt.Errorf("%s: maxContextLines must be positive (got %d)", FileName, limits.MaxContextLines)
	}
	if limits.MaxContextLines > 0 {
		rules.MaxContextLines = limits.MaxContextLines
	}
	return rules, nil
}
