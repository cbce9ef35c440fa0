// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdwatch/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the recorded build history",
	Long: `History reads the SQLite build history written by runs started with
--history (or history.enabled in the config file). Use subcommands to list
recent builds or export everything as YAML.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent builds, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(viper.GetString("history.path"))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	cycles, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cycles) == 0 {
		fmt.Fprintln(out, "no builds recorded")
		return nil
	}

	for _, c := range cycles {
		outcome := "ok    "
		detail := c.Artifact
		if !c.Succeeded {
			outcome = "failed"
			detail = firstLine(c.Diagnostic)
		}
		fmt.Fprintf(out, "%s  %s  %-4s  %-8s %s\n",
			c.StartedAt.Local().Format("2006-01-02 15:04:05"),
			outcome, c.Mode, c.Duration.Round(time.Millisecond), detail)
	}
	return nil
}

// firstLine trims a multi-line diagnostic down to its first line for the
// one-row-per-build listing.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the full build history as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	path := "mdwatch-history.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	store, err := history.Open(viper.GetString("history.path"))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(cmd.Context(), path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "exported to", path)
	return nil
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "maximum number of builds to list (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
