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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/adapter"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/controller"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/metrics"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/gracefulshutdown"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/httputil"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/logging"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/tlsutil"
)

const (
	Name = "proxmox-inventory"
)

var (
	Version        = "dev" //nolint:gochecknoglobals // set by ldflags
	CommitSHA      = "n/a" //nolint:gochecknoglobals // set by ldflags
	BuildTimestamp = "n/a" //nolint:gochecknoglobals // set by ldflags
)

// ------------------------------------------------- Main ----------------------------------------------------------- //

func main() {
	// --------------------------------------------- Graceful Shutdown ---------------------------------------------- //

	gs := gracefulshutdown.New(Name)
	ctx := gs.Context()

	logging.SetupDefault()

	// --------------------------------------------- Flags ---------------------------------------------------------- //

	f, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		gs.Shutdown(0)
	}

	if err != nil {
		slog.ErrorContext(ctx, "parsing flags", "error", err.Error())
		gs.Shutdown(1)
	}

	if f.version {
		_, _ = fmt.Fprintf(os.Stdout, "%s version %s (%s) %s\n", Name, Version, CommitSHA, BuildTimestamp)
		gs.Shutdown(0)
	}

	// --------------------------------------------- Run ------------------------------------------------------------ //

	if err := run(ctx, gs, f, os.Stdout, os.Stderr); err != nil {
		slog.ErrorContext(ctx, "generating inventory", "error", err.Error())
		gs.Shutdown(1)
	}

	gs.Shutdown(0)
}

// run writes the inventory, or the vars of a single host, to stdout. Logs go to stderr.
// Metrics are written by a shutdown hook registered on gs.
func run(
	ctx context.Context,
	gs *gracefulshutdown.GracefulShutdown,
	f *flags,
	stdout, stderr io.Writer,
) (err error) {
	// Vars are carried by groups: a single host has none of its own.
	if f.host != "" {
		out, err := render(map[string]any{}, f.output, f.pretty)
		if err != nil {
			return err
		}

		_, err = stdout.Write(out)

		return err
	}

	// --------------------------------------------- Config --------------------------------------------------------- //

	configPath, err := resolveConfigPath(f.configPath)
	if err != nil {
		return err
	}

	config, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	// --------------------------------------------- Logging -------------------------------------------------------- //

	level, _ := logging.ParseLevel(config.Logging.Level) // validated by loadConfig

	runID := uuid.New().String()
	log := logging.Setup(logging.Options{
		Development: config.Logging.Development,
		Level:       level,
		Writer:      stderr,
	}).WithValues("run", runID)

	ctx = logr.NewContext(ctx, log)
	logger := slog.Default().With("run", runID)

	// --------------------------------------------- Metrics -------------------------------------------------------- //

	recorder := metrics.New()
	start := time.Now()

	gs.OnShutdown(func(context.Context) error {
		return recorder.WriteToTextfile(config.Metrics.TextfilePath)
	})

	defer func() { recorder.RecordRun(err, start) }()

	// --------------------------------------------- Client --------------------------------------------------------- //

	httpClient, err := tlsutil.NewHTTPClient(&tlsutil.Config{
		Verify: ptr.Deref(config.VerifySSL, true),
		CAPath: config.CABundlePath,
	})
	if err != nil {
		return errors.Join(err, ErrConfig)
	}

	proxmox := adapter.NewProxmox(httputil.NewClient(httpClient), adapter.ProxmoxConfig{
		APIURL:   config.APIURL,
		Username: config.Username,
		Password: config.Password,
	}, recorder)

	// --------------------------------------------- Inventory ------------------------------------------------------ //

	builder := controller.NewBuilder(proxmox, controller.Options{
		AnsibleUser:    config.AnsibleUser,
		DefaultVMIP:    config.DefaultVMIP,
		OSGroups:       types.KeywordGroups(config.OSGroups),
		MaxConcurrency: config.MaxConcurrency,
		Recorder:       recorder,
	})

	inventory, err := builder.BuildInventory(ctx)
	if err != nil {
		return err
	}

	out, err := render(inventory, f.output, f.pretty)
	if err != nil {
		return err
	}

	if _, err := stdout.Write(out); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}

	logger.InfoContext(ctx, "inventory generated",
		"digest", digest(out),
		"hosts", countHosts(inventory),
		"duration", time.Since(start).String(),
	)

	return nil
}
