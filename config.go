package amber

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .amberls.yaml workspace configuration file: a
// default dialect plus glob-pattern overrides, grounded on this module's
// teacher's own .scaf.yaml config (see DESIGN.md).
type Config struct {
	// Dialect is the default dialect for files that match no override
	// pattern below. One of "auto", "0.3.4-alpha", "0.3.5-alpha", "0.4.0-alpha".
	Dialect string `yaml:"dialect"`

	// Files maps a glob pattern (matched against a workspace-relative
	// path) to the dialect that pattern's files should be parsed with.
	Files map[string]string `yaml:"files,omitempty"`
}

// DefaultConfigNames are the filenames LoadConfig searches for.
var DefaultConfigNames = []string{".amberls.yaml", ".amberls.yml"}

// ErrConfigNotFound is returned by FindConfig when no config file exists
// between dir and the filesystem root.
var ErrConfigNotFound = errors.New("amber: no .amberls.yaml found")

// LoadConfig finds and loads the nearest .amberls.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up
// to the filesystem root.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(d, name)

			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", ErrConfigNotFound
		}

		d = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DialectFor returns the configured dialect name for a workspace-relative
// file path: a matching glob override (filepath.Match syntax), or the
// default otherwise. Files is a map, so when several patterns match the same
// path, which override is returned is not defined.
// "auto" (whether from an override or the default) is returned verbatim —
// resolving it against the amber binary is the caller's job (spec.md
// §4.10, DetectDialect).
func (c *Config) DialectFor(relPath string) string {
	for pattern, dialect := range c.Files {
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return dialect
		}
	}

	return c.Dialect
}

// ResolveDialect maps DialectFor's result to a concrete Dialect, invoking
// DetectDialect for "auto" and defaulting to the newest dialect for an
// empty or unrecognised string.
func (c *Config) ResolveDialect(relPath string) Dialect {
	name := c.DialectFor(relPath)

	if name == "" {
		return Alpha040
	}

	if name == "auto" {
		return DetectDialect()
	}

	d, err := ParseDialect(name)
	if err != nil {
		return Alpha040
	}

	return d
}
