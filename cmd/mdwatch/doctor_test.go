// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/mdwatch/pkg/types"
)

func TestRunDoctor(t *testing.T) {
	tests := []struct {
		name     string
		deps     types.DependencyReport
		wantOut  []string
		wantErr  string
	}{
		{
			name: "everything present",
			deps: types.DependencyReport{ConverterPresent: true, WatcherPresent: true, Engine: "pdflatex"},
			wantOut: []string{
				"converter (pandoc):  found",
				"filesystem watch:    found",
				"latex engine:        pdflatex",
				"output mode:         pdf",
			},
		},
		{
			name: "missing converter is reported and fatal",
			deps: types.DependencyReport{WatcherPresent: true, Engine: "pdflatex"},
			wantOut: []string{
				"converter (pandoc):  not found",
			},
			wantErr: "converter not available",
		},
		{
			name: "missing engine downgrades without failing",
			deps: types.DependencyReport{ConverterPresent: true, WatcherPresent: true},
			wantOut: []string{
				"latex engine:        not found (pdflatex, xelatex)",
				"output mode:         html",
			},
		},
		{
			name: "missing watch backend is fatal",
			deps: types.DependencyReport{ConverterPresent: true, Engine: "xelatex"},
			wantOut: []string{
				"filesystem watch:    not found",
			},
			wantErr: "watch mode not available",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runDoctor(&out, tt.deps)

			for _, want := range tt.wantOut {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output %q should contain %q", out.String(), want)
				}
			}
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
