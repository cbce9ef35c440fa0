// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdwatch/internal/probe"
	"github.com/pdiddy/mdwatch/pkg/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the external programs mdwatch depends on",
	Long: `Doctor probes the environment the way a normal run does and prints what
it found: the pandoc converter, the filesystem watch backend, and the LaTeX
engines. It exits non-zero when a run would abort at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.OutOrStdout(), probe.Run())
	},
}

// runDoctor prints the dependency report and returns the same fatality
// verdict a watch-mode run would reach.
func runDoctor(w io.Writer, deps types.DependencyReport) error {
	fmt.Fprintf(w, "converter (pandoc):  %s\n", presence(deps.ConverterPresent))
	fmt.Fprintf(w, "filesystem watch:    %s\n", presence(deps.WatcherPresent))

	engine := deps.Engine
	if engine == "" {
		engine = "not found (pdflatex, xelatex)"
	}
	fmt.Fprintf(w, "latex engine:        %s\n", engine)
	fmt.Fprintf(w, "output mode:         %s\n", deps.Mode())

	return probe.Check(deps, true)
}

func presence(ok bool) string {
	if ok {
		return "found"
	}
	return "not found"
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
