/*
Copyright 2024 Alexandre Mahdhaoui

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package gracefulshutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// GracefulShutdown holds the run context of a command and the hooks to execute before it exits.
type GracefulShutdown struct {
	ctx    context.Context
	cancel context.CancelFunc
	name   string

	once  sync.Once
	mu    sync.Mutex
	hooks []func(ctx context.Context) error

	// exitFunc allows injecting exit behavior for testing
	exitFunc func(int)
}

// NewWithExit creates a new GracefulShutdown with a custom exit function.
// This is primarily useful for testing where os.Exit() would terminate the test process.
func NewWithExit(name string, exitFunc func(int)) *GracefulShutdown {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)

	return &GracefulShutdown{
		ctx:      ctx,
		cancel:   cancel,
		name:     name,
		hooks:    make([]func(ctx context.Context) error, 0),
		exitFunc: exitFunc,
	}
}

// New creates a new GracefulShutdown whose context is cancelled by a SIGTERM or SIGINT.
func New(name string) *GracefulShutdown {
	return NewWithExit(name, os.Exit)
}

// OnShutdown registers a hook. Hooks run in reverse registration order when Shutdown is called.
func (s *GracefulShutdown) OnShutdown(hook func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, hook)
}

// Shutdown runs the hooks, cancels the context and exits with exitCode.
// A failing hook is logged and does not change the exit code.
func (s *GracefulShutdown) Shutdown(exitCode int) {
	s.once.Do(func() {
		slog.DebugContext(s.ctx, "shutting down", "binary", s.name, "exitCode", exitCode)

		s.mu.Lock()
		hooks := s.hooks
		s.mu.Unlock()

		// hooks get a context that survives the cancellation of the run context.
		hookCtx := context.WithoutCancel(s.ctx)

		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i](hookCtx); err != nil {
				slog.ErrorContext(hookCtx, "running shutdown hook", "binary", s.name, "error", err.Error())
			}
		}

		s.cancel()
		s.exitFunc(exitCode)
	})
}

// Context returns the run context.
func (s *GracefulShutdown) Context() context.Context {
	return s.ctx
}

// CancelFunc returns the cancel function of the run context.
func (s *GracefulShutdown) CancelFunc() context.CancelFunc {
	return s.cancel
}
