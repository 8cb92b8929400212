package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/logging"
)

const (
	// ConfigPathEnvKey is the environment variable key for the config file path.
	ConfigPathEnvKey = "PROXMOX_INVENTORY_CONFIG_PATH"
	// PasswordEnvKey is the environment variable key overriding the configured password.
	PasswordEnvKey = "PROXMOX_INVENTORY_PASSWORD"
	// DefaultConfigFileName is looked up next to the executable when no path is given.
	DefaultConfigFileName = "config.yaml"
)

var (
	ErrConfig = errors.New("loading configuration")

	errMissingField    = errors.New("missing required field")
	errInvalidField    = errors.New("invalid field")
	errReservedGroup   = errors.New("group name is reserved")
	errDuplicateGroup  = errors.New("duplicate group name")
	errEmptyKeyword    = errors.New("keyword must not be empty")
	errOSGroupsMapping = errors.New("osGroups must be a mapping of group name to a list of keywords")
)

// resolveConfigPath returns flagValue, else the path in ConfigPathEnvKey, else DefaultConfigFileName next to
// the executable.
func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if configPath := os.Getenv(ConfigPathEnvKey); configPath != "" {
		return configPath, nil
	}

	executable, err := os.Executable()
	if err != nil {
		return "", errors.Join(
			fmt.Errorf("cannot locate executable; set --config or %s", ConfigPathEnvKey),
			err,
			ErrConfig,
		)
	}

	return filepath.Join(filepath.Dir(executable), DefaultConfigFileName), nil
}

// loadConfig loads and validates the configuration file at configPath.
func loadConfig(ctx context.Context, configPath string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("reading config file: %w", err), ErrConfig)
	}

	// Parse YAML. JSON documents are valid YAML.
	config := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(config); err != nil {
		return nil, errors.Join(fmt.Errorf("parsing config: %w", err), ErrConfig)
	}

	if password := os.Getenv(PasswordEnvKey); password != "" {
		config.Password = password
	}

	if err := config.validate(); err != nil {
		return nil, errors.Join(err, ErrConfig)
	}

	slog.DebugContext(ctx, "configuration loaded",
		"path", configPath,
		"apiURL", config.APIURL,
		"osGroups", len(config.OSGroups),
	)

	return config, nil
}

// Config is used to configure the inventory generator.
//
// The password may be passed through the PROXMOX_INVENTORY_PASSWORD environment variable.
type Config struct {
	// Proxmox API

	// APIURL is the API base URL, e.g. https://pve.example.com:8006/api2/json.
	APIURL string `yaml:"apiURL"`
	// Username is the API user, including its realm, e.g. root@pam.
	Username string `yaml:"username"`
	// Password is the API user's password.
	Password string `yaml:"password"`
	// VerifySSL enables TLS verification of the API. It must be set explicitly.
	VerifySSL *bool `yaml:"verifySSL"`
	// CABundlePath is an optional PEM bundle trusted when VerifySSL is true.
	CABundlePath string `yaml:"caBundlePath"`
	// MaxConcurrency bounds the number of nodes whose VMs are listed at the same time. Defaults to 1.
	MaxConcurrency int `yaml:"maxConcurrency"`

	// Inventory

	// AnsibleUser is the login name used by Ansible on managed hosts.
	AnsibleUser string `yaml:"ansibleUser"`
	// DefaultVMIP identifies VMs that do not report an IP address.
	DefaultVMIP string `yaml:"defaultVMIP"`
	// OSGroups maps a group name to keywords matched against VM names. Declaration order matters.
	OSGroups OSGroups `yaml:"osGroups"`

	// Metrics is the configuration of run metrics.
	Metrics struct {
		// TextfilePath is where metrics are written for the node-exporter textfile collector.
		TextfilePath string `yaml:"textfilePath"`
	} `yaml:"metrics"`

	// Logging is the configuration of the logger.
	Logging struct {
		// Development switches to human-readable logs.
		Development bool `yaml:"development"`
		// Level is one of debug, info, warn or error.
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func (c *Config) validate() error {
	errs := make([]error, 0)

	required := []struct {
		name  string
		empty bool
	}{
		{name: "apiURL", empty: c.APIURL == ""},
		{name: "username", empty: c.Username == ""},
		{name: "password", empty: c.Password == ""},
		{name: "verifySSL", empty: c.VerifySSL == nil},
		{name: "ansibleUser", empty: c.AnsibleUser == ""},
		{name: "defaultVMIP", empty: c.DefaultVMIP == ""},
	}

	for _, field := range required {
		if field.empty {
			errs = append(errs, fmt.Errorf("%w: %s", errMissingField, field.name))
		}
	}

	if c.APIURL != "" {
		if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: apiURL %q must be an absolute http(s) URL", errInvalidField, c.APIURL))
		}
	}

	if c.MaxConcurrency < 0 {
		errs = append(errs, fmt.Errorf("%w: maxConcurrency must not be negative", errInvalidField))
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, errors.Join(fmt.Errorf("%w: logging.level", errInvalidField), err))
	}

	errs = append(errs, c.OSGroups.validate()...)

	return errors.Join(errs...)
}

// -------------------------------------------------- OS GROUPS ----------------------------------------------------- //

// OSGroups is decoded from a YAML mapping while keeping the declaration order of its keys.
type OSGroups types.KeywordGroups

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *OSGroups) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*g = nil
		return nil
	}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d", errOSGroupsMapping, value.Line)
	}

	out := make(OSGroups, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return errors.Join(err, errOSGroupsMapping)
		}

		var keywords []string
		if err := value.Content[i+1].Decode(&keywords); err != nil {
			return errors.Join(fmt.Errorf("group %q", name), err, errOSGroupsMapping)
		}

		out = append(out, types.KeywordGroup{Name: name, Keywords: keywords})
	}

	*g = out

	return nil
}

func (g OSGroups) validate() []error {
	errs := make([]error, 0)
	seen := make(map[string]struct{}, len(g))

	for _, group := range g {
		switch group.Name {
		case "":
			errs = append(errs, fmt.Errorf("%w: osGroups contains an empty group name", errInvalidField))
		case types.GroupAll, types.GroupProxmoxNodes:
			errs = append(errs, fmt.Errorf("%w: %q", errReservedGroup, group.Name))
		}

		if _, ok := seen[group.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: %q", errDuplicateGroup, group.Name))
		}

		seen[group.Name] = struct{}{}

		for _, keyword := range group.Keywords {
			if keyword == "" {
				errs = append(errs, fmt.Errorf("%w: group %q", errEmptyKeyword, group.Name))
			}
		}
	}

	return errs
}
