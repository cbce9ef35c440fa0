// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BuildResult is the outcome of one conversion cycle. One value is produced
// per cycle and consumed immediately; nothing holds it across cycles.
type BuildResult struct {
	// Succeeded reports whether the converter exited zero.
	Succeeded bool

	// ArtifactPath is the expected output location. Set only on success.
	ArtifactPath string

	// Diagnostic is the converter's stderr, preserved verbatim, or a
	// local explanation when no subprocess was spawned.
	Diagnostic string
}

// DependencyReport records which external programs were found at startup.
// It is computed once, before the first build.
type DependencyReport struct {
	// ConverterPresent reports whether pandoc is on PATH.
	ConverterPresent bool

	// WatcherPresent reports whether a filesystem watch can be
	// established on this platform.
	WatcherPresent bool

	// Engine is the first available LaTeX engine, or empty when none is
	// installed.
	Engine string
}

// EnginePresent reports whether any LaTeX engine was found.
func (r DependencyReport) EnginePresent() bool {
	return r.Engine != ""
}

// Mode resolves the output mode: PDF when a LaTeX engine is available,
// HTML otherwise.
func (r DependencyReport) Mode() OutputMode {
	if r.EnginePresent() {
		return ModePDF
	}
	return ModeHTML
}
