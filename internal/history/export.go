// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one cycle in the export document.
type ExportEntry struct {
	StartedAt  string `yaml:"started_at"`
	DurationMS int64  `yaml:"duration_ms"`
	Source     string `yaml:"source"`
	Artifact   string `yaml:"artifact,omitempty"`
	Mode       string `yaml:"mode"`
	Succeeded  bool   `yaml:"succeeded"`
	Diagnostic string `yaml:"diagnostic,omitempty"`
}

// ExportDocument is the top-level structure of the export file.
type ExportDocument struct {
	ExportedAt time.Time     `yaml:"exported_at"`
	Total      int           `yaml:"total"`
	Cycles     []ExportEntry `yaml:"cycles"`
}

// ExportYAML writes the full history, newest first, to a YAML file at path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	cycles, err := s.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	doc := ExportDocument{
		ExportedAt: time.Now().UTC(),
		Total:      len(cycles),
		Cycles:     make([]ExportEntry, len(cycles)),
	}
	for i, c := range cycles {
		doc.Cycles[i] = ExportEntry{
			StartedAt:  c.StartedAt.Format(time.RFC3339Nano),
			DurationMS: c.Duration.Milliseconds(),
			Source:     c.Source,
			Artifact:   c.Artifact,
			Mode:       c.Mode,
			Succeeded:  c.Succeeded,
			Diagnostic: c.Diagnostic,
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling history export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
