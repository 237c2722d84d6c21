// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the structured logger used by all
// other packages, which log through [log/slog] directly.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// UserLevel is the verbosity [slog.Level] that the user has selected.
// It defaults to [slog.LevelInfo], or [slog.LevelDebug] with the debug build tag.
var UserLevel = defaultUserLevel

// Init installs a text handler on stderr at [UserLevel]
// as the default slog logger.
func Init() {
	InitWriter(os.Stderr)
}

// InitWriter is like [Init] but writes to the given writer.
func InitWriter(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel})
	slog.SetDefault(slog.New(h))
}

// ParseLevel converts a level name (debug, info, warn, error)
// into a [slog.Level].
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logx: unknown log level %q", s)
}
