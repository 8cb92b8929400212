package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

var errConflictingFlags = errors.New("--list and --host are mutually exclusive")

// flags are the command line options. Ansible calls dynamic inventories with either --list or --host <name>.
type flags struct {
	list       bool
	host       string
	configPath string
	output     string
	pretty     bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}

	fs := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&f.list, "list", false, "print the whole inventory (default action)")
	fs.StringVar(&f.host, "host", "", "print the variables of a single host")
	fs.StringVarP(&f.configPath, "config", "c", "",
		fmt.Sprintf("path to the configuration file (env: %s)", ConfigPathEnvKey))
	fs.StringVarP(&f.output, "output", "o", OutputJSON, "output format: json or yaml")
	fs.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	fs.BoolVar(&f.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.list && f.host != "" {
		return nil, errConflictingFlags
	}

	if f.output != OutputJSON && f.output != OutputYAML {
		return nil, fmt.Errorf("%w: %q", errInvalidOutput, f.output)
	}

	return f, nil
}
