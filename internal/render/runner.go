// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/mdwatch/pkg/types"
)

// Runner executes an assembled converter invocation and captures its
// outcome. Exactly one BuildResult is produced per call; no retries.
type Runner interface {
	Run(inv Invocation) types.BuildResult
}

// executor abstracts subprocess execution for testing.
type executor interface {
	RunCapture(name string, args []string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) RunCapture(name string, args []string) (string, error) {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

var defaultExec executor = osExecutor{}

// PandocRunner spawns the converter as a child process and blocks until it
// exits. The argv list is passed to the spawn primitive directly; shell
// metacharacters in paths are never re-interpreted.
type PandocRunner struct {
	exec executor
}

// NewRunner returns a Runner backed by real subprocess execution.
func NewRunner() *PandocRunner {
	return &PandocRunner{exec: defaultExec}
}

// Run executes the invocation. Exit status zero maps to a successful result
// with the expected artifact path; any non-zero status maps to a failure
// with the child's stderr preserved verbatim.
func (r *PandocRunner) Run(inv Invocation) types.BuildResult {
	if len(inv.Args) == 0 {
		return types.BuildResult{Diagnostic: "empty converter command"}
	}

	stderr, err := r.exec.RunCapture(inv.Args[0], inv.Args[1:])
	if err != nil {
		return types.BuildResult{Diagnostic: diagnostic(stderr, err)}
	}
	return types.BuildResult{Succeeded: true, ArtifactPath: inv.Artifact}
}

// diagnostic prefers the child's own stderr; the exec error is only a
// fallback for spawn failures that produced no output.
func diagnostic(stderr string, err error) string {
	if strings.TrimSpace(stderr) != "" {
		return stderr
	}
	return err.Error()
}

// Cycle performs one conversion cycle: it verifies the source exists,
// assembles the command, and runs it. When the source file is absent no
// subprocess is spawned and the failure is reported directly.
func Cycle(r Runner, cfg types.Config, mode types.OutputMode, engine string) types.BuildResult {
	if _, err := os.Stat(cfg.SourcePath); err != nil {
		return types.BuildResult{
			Diagnostic: fmt.Sprintf("source file not found: %s", cfg.SourcePath),
		}
	}
	return r.Run(Build(cfg, mode, engine))
}
