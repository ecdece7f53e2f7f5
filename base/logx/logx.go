// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides a thin layer of level-gated logging functions
// on top of the standard [log/slog] infrastructure.
package logx

import (
	"fmt"
	"log/slog"
	"os"
)

// UserLevel is the verbosity level that the user has selected,
// typically from a -v or -vv command line flag. Everything at
// this level and above is logged; everything below is discarded.
var UserLevel = defaultUserLevel

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar(),
	})))
}

// leveler allows UserLevel changes after init to take effect.
type leveler struct{}

func (l leveler) Level() slog.Level { return UserLevel }

func levelVar() slog.Leveler { return leveler{} }

// Debug logs the given message at the debug level.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs the given message at the info level.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs the given message at the warn level.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs the given message at the error level.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// PrintlnInfo prints the given arguments with [fmt.Println] if
// [UserLevel] is at or below [slog.LevelInfo]. It is intended for
// user-facing progress messages that do not need structured fields.
func PrintlnInfo(a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Println(a...)
	}
}

// PrintfInfo prints the given format with [fmt.Printf] if
// [UserLevel] is at or below [slog.LevelInfo].
func PrintfInfo(format string, a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Printf(format, a...)
	}
}
