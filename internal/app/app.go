// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app wires the probe, render, watch, status, and history pieces
// into the two run modes: a single build, or the watch loop.
// See docs/ARCHITECTURE § Control Flow.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pdiddy/mdwatch/internal/history"
	"github.com/pdiddy/mdwatch/internal/render"
	"github.com/pdiddy/mdwatch/internal/status"
	"github.com/pdiddy/mdwatch/internal/watch"
	"github.com/pdiddy/mdwatch/pkg/types"
)

// ErrBuildFailed is returned by Once when the single build does not succeed,
// mapping to a non-zero process exit.
var ErrBuildFailed = errors.New("conversion failed")

// App drives conversion cycles for one configuration. The output mode and
// engine are fixed at construction from the dependency report and never
// change for the process lifetime.
type App struct {
	cfg    types.Config
	mode   types.OutputMode
	engine string

	runner render.Runner
	rep    *status.Reporter
	hist   *history.Store // nil when history recording is disabled
}

// New builds an App from the configuration and the startup dependency
// report. The caller is expected to have rejected fatal reports already.
func New(cfg types.Config, report types.DependencyReport, runner render.Runner, rep *status.Reporter, hist *history.Store) *App {
	return &App{
		cfg:    cfg,
		mode:   report.Mode(),
		engine: report.Engine,
		runner: runner,
		rep:    rep,
		hist:   hist,
	}
}

// Mode returns the output mode resolved at construction.
func (a *App) Mode() types.OutputMode {
	return a.mode
}

// Once performs a single conversion cycle. It returns ErrBuildFailed when
// the cycle does not succeed.
func (a *App) Once(ctx context.Context) error {
	if res := a.build(ctx); !res.Succeeded {
		return ErrBuildFailed
	}
	return nil
}

// Watch subscribes to change notifications for the source file, performs an
// initial build, and then rebuilds once per save until ctx is cancelled.
// Failed builds never stop the loop. The subscription is released on every
// exit path.
func (a *App) Watch(ctx context.Context) error {
	w, err := watch.New(a.cfg.SourcePath, a.rep)
	if err != nil {
		return err
	}
	defer w.Close()

	a.rep.Infof("watching %s (output mode: %s)", a.cfg.SourcePath, a.mode)
	return w.Run(ctx, func() { a.build(ctx) })
}

// build runs one cycle, reports its outcome, and records it when history is
// enabled. History failures are warnings; they never affect the build.
func (a *App) build(ctx context.Context) types.BuildResult {
	start := time.Now()
	res := render.Cycle(a.runner, a.cfg, a.mode, a.engine)
	elapsed := time.Since(start)

	if res.Succeeded {
		a.rep.Successf("built %s in %s", res.ArtifactPath, elapsed.Round(time.Millisecond))
	} else {
		a.rep.Errorf("build failed: %s", strings.TrimSpace(res.Diagnostic))
	}

	if a.hist != nil {
		err := a.hist.Record(ctx, history.Cycle{
			StartedAt:  start,
			Duration:   elapsed,
			Source:     a.cfg.SourcePath,
			Artifact:   res.ArtifactPath,
			Mode:       string(a.mode),
			Succeeded:  res.Succeeded,
			Diagnostic: res.Diagnostic,
		})
		if err != nil {
			a.rep.Warnf("recording history: %v", err)
		}
	}

	return res
}
