// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdwatch/internal/history"
)

// seedHistory points viper at a fresh database holding one successful build.
func seedHistory(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dbPath := filepath.Join(t.TempDir(), "history.db")
	viper.Set("history.path", dbPath)

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(context.Background(), history.Cycle{
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  900 * time.Millisecond,
		Source:    "doc.md",
		Artifact:  "doc.pdf",
		Mode:      "pdf",
		Succeeded: true,
	}))
}

func newListCmd(ctx context.Context, out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "list", RunE: runHistoryList}
	cmd.Flags().IntP("limit", "n", 20, "")
	cmd.SetOut(out)
	cmd.SetContext(ctx)
	return cmd
}

func TestHistoryList(t *testing.T) {
	seedHistory(t)

	var out bytes.Buffer
	cmd := newListCmd(context.Background(), &out)

	require.NoError(t, runHistoryList(cmd, nil))
	assert.Contains(t, out.String(), "doc.pdf")
	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "pdf")
}

// The subcommand works off the command's own context, so a cancelled
// invocation stops at the query instead of running to completion.
func TestHistoryList_CancelledContext(t *testing.T) {
	seedHistory(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	cmd := newListCmd(ctx, &out)

	err := runHistoryList(cmd, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryExport(t *testing.T) {
	seedHistory(t)

	exportPath := filepath.Join(t.TempDir(), "export.yaml")
	var out bytes.Buffer
	cmd := &cobra.Command{Use: "export", RunE: runHistoryExport}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, runHistoryExport(cmd, []string{exportPath}))
	assert.Contains(t, out.String(), "exported to "+exportPath)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "artifact: doc.pdf")
}
