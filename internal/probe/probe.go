// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe implements startup detection of the external programs the
// build pipeline depends on. See docs/ARCHITECTURE § Dependency Probe.
package probe

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/mdwatch/pkg/types"
)

const (
	binPandoc   = "pandoc"
	binPdflatex = "pdflatex"
	binXelatex  = "xelatex"
)

// engineOrder lists the LaTeX engines in preference order.
var engineOrder = []string{binPdflatex, binXelatex}

// executor abstracts PATH lookups for testing.
type executor interface {
	LookPath(file string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

var defaultExec executor = osExecutor{}

// Run inspects the environment once and reports which external programs are
// present: the pandoc converter, the filesystem watch backend, and the LaTeX
// engines. It has no side effects beyond the read-only inspection.
func Run() types.DependencyReport {
	return run(defaultExec, watchBackendAvailable)
}

func run(exec executor, watchCheck func() bool) types.DependencyReport {
	var r types.DependencyReport

	if _, err := exec.LookPath(binPandoc); err == nil {
		r.ConverterPresent = true
	}

	r.WatcherPresent = watchCheck()

	for _, engine := range engineOrder {
		if _, err := exec.LookPath(engine); err == nil {
			r.Engine = engine
			break
		}
	}

	return r
}

// watchBackendAvailable reports whether a filesystem watcher can actually be
// created on this platform, by opening and immediately releasing one.
func watchBackendAvailable() bool {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return false
	}
	w.Close()
	return true
}

// Check validates the report against the requested mode. A missing converter
// is always fatal; a missing watch backend is fatal only when watching.
// A missing LaTeX engine is not checked here: it downgrades the output mode
// instead of aborting.
func Check(r types.DependencyReport, watch bool) error {
	if !r.ConverterPresent {
		return fmt.Errorf("converter not available: %s not found on PATH", binPandoc)
	}
	if watch && !r.WatcherPresent {
		return errors.New("watch mode not available: filesystem watch backend could not be initialized")
	}
	return nil
}
