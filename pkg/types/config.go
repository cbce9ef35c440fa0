// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared configuration and result types for mdwatch.
// See docs/ARCHITECTURE § Data Model.
package types

const (
	// DefaultSource is the source file watched when no argument is given.
	DefaultSource = "document.md"

	// DefaultOutput is the artifact base name when no argument is given.
	DefaultOutput = "document"
)

// OutputMode selects the artifact family produced by a build.
type OutputMode string

const (
	// ModePDF renders a typeset PDF through a LaTeX engine.
	ModePDF OutputMode = "pdf"

	// ModeHTML renders a standalone styled HTML document. It is the
	// fallback when no LaTeX engine is installed.
	ModeHTML OutputMode = "html"
)

// Extension returns the artifact file extension for the mode, with the dot.
func (m OutputMode) Extension() string {
	if m == ModeHTML {
		return ".html"
	}
	return ".pdf"
}

// RenderOptions holds the presentation settings passed to pandoc on every
// build, independent of output mode.
type RenderOptions struct {
	// Language is the document locale (pandoc -V lang).
	Language string `json:"language" yaml:"language"`

	// FontSize is the base font size, e.g. "12pt" (pandoc -V fontsize).
	FontSize string `json:"font_size" yaml:"font_size"`

	// Margin is the page margin, e.g. "2.5cm" (pandoc -V geometry:margin).
	Margin string `json:"margin" yaml:"margin"`

	// HighlightStyle selects the syntax-highlighting theme.
	HighlightStyle string `json:"highlight_style" yaml:"highlight_style"`

	// Stylesheet is the CSS reference attached in HTML mode. It may be a
	// local path or a URL.
	Stylesheet string `json:"stylesheet" yaml:"stylesheet"`
}

// DefaultRenderOptions returns the presentation settings used when no config
// file overrides them.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Language:       "en-US",
		FontSize:       "12pt",
		Margin:         "2.5cm",
		HighlightStyle: "tango",
		Stylesheet:     "https://cdn.jsdelivr.net/npm/water.css@2/out/water.css",
	}
}

// HistoryConfig holds settings for the optional build-history store.
type HistoryConfig struct {
	// Enabled turns on per-build recording into the sqlite store.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the sqlite database location (default ".mdwatch/history.db").
	Path string `json:"path" yaml:"path"`
}

// Config is the immutable build configuration, created once from process
// arguments and the config file and read-only thereafter.
type Config struct {
	// SourcePath is the watched markdown source file.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputName is the artifact base name, without extension.
	OutputName string `json:"output_name" yaml:"output_name"`

	// TemplatePath is an optional pandoc template; it is passed to the
	// converter only while the file exists.
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`

	// BibliographyPath is an optional bibliography file; same existence
	// rule as TemplatePath.
	BibliographyPath string `json:"bibliography_path,omitempty" yaml:"bibliography_path,omitempty"`

	// Watch selects the watch loop; false means a single build.
	Watch bool `json:"watch" yaml:"watch"`

	Render  RenderOptions `json:"render" yaml:"render"`
	History HistoryConfig `json:"history" yaml:"history"`
}
