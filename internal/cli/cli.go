// Package cli implements the amas command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/buildinfo"
	"github.com/matzehuels/amas/pkg/cache"
	"github.com/matzehuels/amas/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "amas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	logOut io.Writer

	// Persistent flags.
	configPath string
	redisURL   string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), logOut: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "amas",
		Short: "amas maps the import graph of a JavaScript or TypeScript project",
		Long: `amas scans a JavaScript/TypeScript source tree, resolves relative imports
between its files and lays the resulting graph out with a force simulation.

The layout can be written to SVG, PNG or Graphviz, explored in the terminal
with 'amas view', or served over HTTP with 'amas serve'.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			c.installHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <root>/"+pipeline.ConfigFileName+")")
	root.PersistentFlags().StringVar(&c.redisURL, "redis", "", "share the cache through Redis (redis://host:port/db)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build version.
func (c *CLI) newRunner(ctx context.Context, cfg pipeline.CacheConfig) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CachePrefix())
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache picks the cache backend: nothing with --no-cache, Redis when a
// URL is configured, the XDG file cache otherwise.
func (c *CLI) newCache(ctx context.Context, cfg pipeline.CacheConfig) (cache.Cache, error) {
	if c.noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}

	url := c.redisURL
	if url == "" {
		url = cfg.Redis
	}
	if url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "url", url)
		return rc, nil
	}

	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("file cache unavailable", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Config
// =============================================================================

// loadConfig returns the config named by --config, or root's amas.toml if
// there is one, or an empty config.
func (c *CLI) loadConfig(root string) (pipeline.Config, error) {
	if c.configPath != "" {
		return pipeline.LoadConfig(c.configPath)
	}
	if root == "" {
		return pipeline.Config{}, nil
	}
	path, ok := pipeline.FindConfig(root)
	if !ok {
		return pipeline.Config{}, nil
	}
	c.Logger.Debug("loaded config", "path", path)
	return pipeline.LoadConfig(path)
}

// projectOptions applies the project config under the flag values in opts.
func (c *CLI) projectOptions(root string, opts *pipeline.Options) (pipeline.Config, error) {
	cfg, err := c.loadConfig(root)
	if err != nil {
		return pipeline.Config{}, err
	}
	opts.Root = root
	opts.Logger = c.Logger
	cfg.Apply(opts)
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/amas/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// rootArg returns the project root from args, defaulting to the working
// directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so config and defaults can apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseList parses a comma-separated list flag.
func parseList(s string) []string {
	return parseFormats(s)
}
