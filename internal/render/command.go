// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles and executes pandoc invocations, one conversion
// cycle at a time. Command assembly is a pure function of the configuration
// and the current filesystem state; execution is a plain argv-list spawn with
// no shell interpretation. See docs/ARCHITECTURE § Render Pipeline.
package render

import (
	"os"

	"github.com/pdiddy/mdwatch/pkg/types"
)

// converterBin is the external document converter.
const converterBin = "pandoc"

// Invocation is a complete, self-contained converter command: the full argv
// (program first) plus the artifact path the command is expected to produce.
type Invocation struct {
	Args     []string
	Artifact string
}

// Build assembles the converter command for one cycle. The template and
// bibliography arguments are included only while the referenced files exist,
// checked fresh on every call since they may appear or disappear between
// runs. Build performs no execution and has no side effects.
func Build(cfg types.Config, mode types.OutputMode, engine string) Invocation {
	artifact := cfg.OutputName + mode.Extension()
	args := []string{converterBin, cfg.SourcePath, "-o", artifact}

	if fileExists(cfg.TemplatePath) {
		args = append(args, "--template="+cfg.TemplatePath)
	}
	if fileExists(cfg.BibliographyPath) {
		args = append(args, "--citeproc", "--bibliography="+cfg.BibliographyPath)
	}

	switch mode {
	case types.ModePDF:
		args = append(args, "--pdf-engine="+engine)
	case types.ModeHTML:
		args = append(args, "--standalone", "--css="+cfg.Render.Stylesheet)
	}

	args = append(args,
		"-V", "lang="+cfg.Render.Language,
		"-V", "fontsize="+cfg.Render.FontSize,
		"-V", "geometry:margin="+cfg.Render.Margin,
		"--highlight-style="+cfg.Render.HighlightStyle,
	)

	return Invocation{Args: args, Artifact: artifact}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
