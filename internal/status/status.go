// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package status writes timestamped status lines for the build loop.
// It is presentation only and never influences control flow.
package status

import (
	"fmt"
	"io"
	"time"
)

// Level tags a status line with its severity.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelSuccess Level = "OK"
	LevelWarning Level = "WARN"
	LevelError   Level = "ERROR"
)

// Reporter formats status events as "[HH:MM:SS] LEVEL message" lines on an
// injected writer.
type Reporter struct {
	w   io.Writer
	now func() time.Time
}

// New returns a Reporter writing to w with wall-clock timestamps.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w, now: time.Now}
}

func (r *Reporter) Infof(format string, args ...any)    { r.emit(LevelInfo, format, args...) }
func (r *Reporter) Successf(format string, args ...any) { r.emit(LevelSuccess, format, args...) }
func (r *Reporter) Warnf(format string, args ...any)    { r.emit(LevelWarning, format, args...) }
func (r *Reporter) Errorf(format string, args ...any)   { r.emit(LevelError, format, args...) }

func (r *Reporter) emit(level Level, format string, args ...any) {
	fmt.Fprintf(r.w, "[%s] %-5s %s\n",
		r.now().Format("15:04:05"), level, fmt.Sprintf(format, args...))
}
