// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleCycle(succeeded bool) Cycle {
	c := Cycle{
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1250 * time.Millisecond,
		Source:    "doc.md",
		Mode:      "pdf",
		Succeeded: succeeded,
	}
	if succeeded {
		c.Artifact = "doc.pdf"
	} else {
		c.Diagnostic = "! LaTeX Error: something broke"
	}
	return c
}

func TestRecordAndList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, sampleCycle(true)))
	require.NoError(t, s.Record(ctx, sampleCycle(false)))

	cycles, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, cycles, 2)

	// Newest first.
	assert.False(t, cycles[0].Succeeded)
	assert.Equal(t, "! LaTeX Error: something broke", cycles[0].Diagnostic)
	assert.True(t, cycles[1].Succeeded)
	assert.Equal(t, "doc.pdf", cycles[1].Artifact)
	assert.Equal(t, 1250*time.Millisecond, cycles[1].Duration)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), cycles[1].StartedAt)
}

func TestListLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, sampleCycle(true)))
	}

	cycles, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, cycles, 2)
}

func TestListEmpty(t *testing.T) {
	s := openStore(t)

	cycles, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, cycles)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestExportYAML(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, sampleCycle(true)))
	require.NoError(t, s.Record(ctx, sampleCycle(false)))

	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, s.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "total: 2")
	assert.Contains(t, content, "source: doc.md")
	assert.Contains(t, content, "artifact: doc.pdf")
	assert.Contains(t, content, "succeeded: false")
	assert.Contains(t, content, "LaTeX Error")
}
