// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging sets up the slog default logger and a logr logger backed by zap.
// Logs are written to stderr: stdout is reserved for the inventory.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var ErrInvalidLevel = errors.New("invalid log level")

// Options configures the logger behavior.
type Options struct {
	// Development enables development mode logging (more verbose, human-readable).
	Development bool

	// Level sets the minimum log level. Defaults to slog.LevelInfo.
	Level slog.Level

	// Writer receives the logs. Defaults to os.Stderr.
	Writer io.Writer
}

// DefaultOptions returns the default logging options.
func DefaultOptions() Options {
	return Options{
		Development: false,
		Level:       slog.LevelInfo,
		Writer:      os.Stderr,
	}
}

// ParseLevel parses "debug", "info", "warn" or "error". An empty string is slog.LevelInfo.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("%w: %q (valid values: debug, info, warn, error)", ErrInvalidLevel, s)
	}

	return level, nil
}

// Setup sets the slog default logger and returns a logr logger writing to the same destination.
//
// The logr logger only emits V(1) messages when the level is debug.
func Setup(opts Options) logr.Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.Development {
		handler = slog.NewTextHandler(opts.Writer, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(opts.Writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))

	zapOpts := zap.Options{
		Development: opts.Development || opts.Level <= slog.LevelDebug,
		DestWriter:  opts.Writer,
	}

	return zap.New(zap.UseFlagOptions(&zapOpts))
}

// SetupDefault sets up logging with default options.
func SetupDefault() logr.Logger {
	return Setup(DefaultOptions())
}
