// Package pipeline provides the build → layout → render pipeline for amas.
//
// This package is the one place that wires the core packages together, so
// the CLI commands, the terminal viewer and the HTTP server behave the same
// way for the same options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: scan a project, extract and resolve imports, assemble the graph
//  2. Layout: run the force simulation over the graph
//  3. Render: draw the layout as SVG, PNG, DOT or Graphviz SVG
//
// Each stage can be run on its own or through [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:    "./web",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Caching
//
// Extracted specifiers are cached per file content, and rendered artifacts
// per layout and render options. Layouts themselves are always recomputed.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/amas/pkg/cache"
	"github.com/matzehuels/amas/pkg/errors"
	"github.com/matzehuels/amas/pkg/imports"
	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/render"
	"github.com/matzehuels/amas/pkg/source"
	"github.com/matzehuels/amas/pkg/workspace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default canvas height.
	DefaultHeight = layout.DefaultHeight

	// DefaultIterations is the default number of simulation steps.
	DefaultIterations = layout.DefaultIterations

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(layout.DefaultSeed)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.FormatSVG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Root             string   `json:"root,omitempty"`
	Extensions       []string `json:"extensions,omitempty"`
	Exclude          []string `json:"exclude,omitempty"`
	RespectGitignore bool     `json:"gitignore,omitempty"`

	// Layout options
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Iterations  int     `json:"iterations,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
	NoCentering bool    `json:"no_centering,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	HideNames   bool     `json:"hide_names,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Selected    []string `json:"selected,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger       `json:"-"`
	Extractor imports.Extractor `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Build is the raw build outcome, including diagnostics.
	Build *imports.Result

	// Graph is the import graph.
	Graph *workspace.Graph

	// Layout is the computed placement.
	Layout layout.Result

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Files       int
	NodeCount   int
	EdgeCount   int
	Specifiers  int
	Resolved    int
	Diagnostics int
	BuildTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, render.Formats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks that Root is a usable directory.
func (o *Options) ValidateForBuild() error {
	if err := errors.ValidateRoot(o.Root); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %vx%v", o.Width, o.Height)
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must be positive, got %d", o.Iterations)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ScanOptions returns the file discovery options.
func (o *Options) ScanOptions() source.Options {
	return source.Options{
		Extensions:       o.Extensions,
		Exclude:          o.Exclude,
		RespectGitignore: o.RespectGitignore,
	}
}

// LayoutOptions returns the simulation options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Width:       o.Width,
		Height:      o.Height,
		Iterations:  o.Iterations,
		Seed:        o.Seed,
		NoCentering: o.NoCentering,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Scale:       o.Scale,
		HideNames:   o.HideNames,
		Interactive: o.Interactive,
		Selected:    o.Selected,
	}
}
