package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sleuth-go/sleuth/internal/knowledge"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sleuth.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds user-level overrides loaded from a YAML file. Everything
// in it extends the built-in knowledge tables; nothing here is required
// for a report to render.
type File struct {
	// Optional lists extra packages to append to the default optional
	// set of every report.
	Optional []string `yaml:"optional"`

	// Aliases maps package paths to the module name they should be
	// reported under, extending the built-in alias table.
	Aliases map[string]string `yaml:"aliases"`

	// VersionAttributes maps module names to the dotted field path on
	// their live handle where the version string lives, extending the
	// built-in table.
	VersionAttributes map[string]string `yaml:"version_attributes"`

	// Render overrides the rendering defaults. Zero values mean
	// "not set" and leave the corresponding Config field untouched.
	Render Render `yaml:"render"`
}

// Render holds rendering overrides from the config file.
type Render struct {
	NCol      int  `yaml:"ncol"`
	TextWidth int  `yaml:"text_width"`
	Sort      bool `yaml:"sort"`
	ShowOther bool `yaml:"show_other"`
}

// Load loads knowledge overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Aliases == nil {
		cf.Aliases = make(map[string]string)
	}
	if cf.VersionAttributes == nil {
		cf.VersionAttributes = make(map[string]string)
	}

	return &cf, nil
}

// Find searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .sleuth.yaml in the current directory
// 3. Look for .sleuth.yaml in the user's home directory
// 4. Look for .sleuth.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func Find(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Apply merges the file's overrides into the built-in knowledge tables
// and the given Config. User entries win over built-in ones on
// collision. Apply mutates package-level tables and must run before any
// report is built, never concurrently with resolution.
func (f *File) Apply(c *Config) {
	for path, module := range f.Aliases {
		knowledge.Aliases[path] = module
	}
	for module, attr := range f.VersionAttributes {
		knowledge.VersionAttributes[module] = attr
	}

	if f.Render.NCol > 0 {
		c.NCol = f.Render.NCol
	}
	if f.Render.TextWidth > 0 {
		c.TextWidth = f.Render.TextWidth
	}
	if f.Render.Sort {
		c.Sort = true
	}
	if f.Render.ShowOther {
		c.ShowOther = true
	}
}
