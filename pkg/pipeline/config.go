package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/amas/pkg/errors"
)

// ConfigFileName is the project config file looked up in the root.
const ConfigFileName = "amas.toml"

// Config is the on-disk project configuration.
//
//	[scan]
//	extensions = [".ts", ".tsx"]
//	exclude = ["node_modules", "vendor"]
//	gitignore = true
//
//	[layout]
//	width = 1200
//	height = 800
//	iterations = 200
//	seed = 7
//	centering = false
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2
//	names = false
//
//	[cache]
//	redis = "redis://localhost:6379/0"
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// ScanConfig configures file discovery.
type ScanConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	Gitignore  bool     `toml:"gitignore"`
}

// LayoutConfig configures the simulation.
type LayoutConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Iterations int     `toml:"iterations"`
	Seed       uint64  `toml:"seed"`
	Centering  *bool   `toml:"centering"`
}

// RenderConfig configures output.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
	Names   *bool    `toml:"names"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Redis    string `toml:"redis"`
	Disabled bool   `toml:"disabled"`
}

// ParseConfig decodes TOML config data. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return c, nil
}

// LoadConfig reads and decodes a config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return c, nil
}

// FindConfig returns the path of root's config file, if there is one.
func FindConfig(root string) (string, bool) {
	path := filepath.Join(root, ConfigFileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Apply fills options left at their zero value from the config. Options
// set explicitly (by flags or requests) win.
func (c Config) Apply(o *Options) {
	if len(o.Extensions) == 0 {
		o.Extensions = c.Scan.Extensions
	}
	if len(o.Exclude) == 0 {
		o.Exclude = c.Scan.Exclude
	}
	o.RespectGitignore = o.RespectGitignore || c.Scan.Gitignore

	if o.Width == 0 {
		o.Width = c.Layout.Width
	}
	if o.Height == 0 {
		o.Height = c.Layout.Height
	}
	if o.Iterations == 0 {
		o.Iterations = c.Layout.Iterations
	}
	if o.Seed == 0 {
		o.Seed = c.Layout.Seed
	}
	if c.Layout.Centering != nil && !*c.Layout.Centering {
		o.NoCentering = true
	}

	if len(o.Formats) == 0 {
		o.Formats = c.Render.Formats
	}
	if o.Scale == 0 {
		o.Scale = c.Render.Scale
	}
	if c.Render.Names != nil && !*c.Render.Names {
		o.HideNames = true
	}
}
