package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
)

const validConfigYAML = `
apiURL: "https://pve.example.com:8006/api2/json"
username: "root@pam"
password: "secret"
verifySSL: false
ansibleUser: "ansible"
defaultVMIP: "192.168.1.254"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	return configPath
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name           string
		configYAML     string
		expectedConfig *Config
	}{
		{
			name: "valid config with all fields",
			configYAML: validConfigYAML + `
caBundlePath: "/etc/pve/pve-root-ca.pem"
maxConcurrency: 4
osGroups:
  windows: ["win", "ws2022"]
  linux: ["ubuntu", "debian"]
  databases: ["postgres"]
metrics:
  textfilePath: "/var/lib/node_exporter/proxmox_inventory.prom"
logging:
  development: true
  level: debug
`,
			expectedConfig: &Config{
				APIURL:         "https://pve.example.com:8006/api2/json",
				Username:       "root@pam",
				Password:       "secret",
				VerifySSL:      ptr.To(false),
				CABundlePath:   "/etc/pve/pve-root-ca.pem",
				MaxConcurrency: 4,
				AnsibleUser:    "ansible",
				DefaultVMIP:    "192.168.1.254",
				OSGroups: OSGroups{
					{Name: "windows", Keywords: []string{"win", "ws2022"}},
					{Name: "linux", Keywords: []string{"ubuntu", "debian"}},
					{Name: "databases", Keywords: []string{"postgres"}},
				},
			},
		},
		{
			name:       "minimal config",
			configYAML: validConfigYAML,
			expectedConfig: &Config{
				APIURL:      "https://pve.example.com:8006/api2/json",
				Username:    "root@pam",
				Password:    "secret",
				VerifySSL:   ptr.To(false),
				AnsibleUser: "ansible",
				DefaultVMIP: "192.168.1.254",
			},
		},
		{
			name: "JSON config",
			configYAML: `{
  "apiURL": "https://pve.example.com:8006/api2/json",
  "username": "root@pam",
  "password": "secret",
  "verifySSL": true,
  "ansibleUser": "ansible",
  "defaultVMIP": "192.168.1.254",
  "osGroups": {"zeta": ["z"], "alpha": ["a"]}
}`,
			expectedConfig: &Config{
				APIURL:      "https://pve.example.com:8006/api2/json",
				Username:    "root@pam",
				Password:    "secret",
				VerifySSL:   ptr.To(true),
				AnsibleUser: "ansible",
				DefaultVMIP: "192.168.1.254",
				OSGroups: OSGroups{
					{Name: "zeta", Keywords: []string{"z"}},
					{Name: "alpha", Keywords: []string{"a"}},
				},
			},
		},
		{
			name:       "null osGroups",
			configYAML: validConfigYAML + "osGroups: null\n",
			expectedConfig: &Config{
				APIURL:      "https://pve.example.com:8006/api2/json",
				Username:    "root@pam",
				Password:    "secret",
				VerifySSL:   ptr.To(false),
				AnsibleUser: "ansible",
				DefaultVMIP: "192.168.1.254",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := loadConfig(context.Background(), writeConfig(t, tt.configYAML))
			require.NoError(t, err)
			require.NotNil(t, config)

			assert.Equal(t, tt.expectedConfig.APIURL, config.APIURL)
			assert.Equal(t, tt.expectedConfig.Username, config.Username)
			assert.Equal(t, tt.expectedConfig.Password, config.Password)
			assert.Equal(t, tt.expectedConfig.VerifySSL, config.VerifySSL)
			assert.Equal(t, tt.expectedConfig.CABundlePath, config.CABundlePath)
			assert.Equal(t, tt.expectedConfig.MaxConcurrency, config.MaxConcurrency)
			assert.Equal(t, tt.expectedConfig.AnsibleUser, config.AnsibleUser)
			assert.Equal(t, tt.expectedConfig.DefaultVMIP, config.DefaultVMIP)
			assert.Equal(t, len(tt.expectedConfig.OSGroups), len(config.OSGroups))

			for i := range tt.expectedConfig.OSGroups {
				assert.Equal(t, tt.expectedConfig.OSGroups[i], config.OSGroups[i], "osGroups[%d] mismatch", i)
			}
		})
	}
}

func TestLoadConfig_Logging(t *testing.T) {
	config, err := loadConfig(context.Background(), writeConfig(t, validConfigYAML+`
logging:
  development: true
  level: warn
metrics:
  textfilePath: /tmp/x.prom
`))
	require.NoError(t, err)

	assert.True(t, config.Logging.Development)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "/tmp/x.prom", config.Metrics.TextfilePath)
}

func TestLoadConfig_PasswordFromEnv(t *testing.T) {
	t.Setenv(PasswordEnvKey, "from-env")

	config, err := loadConfig(context.Background(), writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Password)
}

func TestLoadConfig_PasswordOnlyFromEnv(t *testing.T) {
	t.Setenv(PasswordEnvKey, "from-env")

	content := `
apiURL: "https://pve.example.com:8006/api2/json"
username: "root@pam"
verifySSL: true
ansibleUser: "ansible"
defaultVMIP: "192.168.1.254"
`

	config, err := loadConfig(context.Background(), writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Password)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		expectedErr error
		contains    string
	}{
		{
			name:        "missing verifySSL",
			configYAML:  "apiURL: https://pve:8006/api2/json\nusername: u\npassword: p\nansibleUser: a\ndefaultVMIP: 1.1.1.1\n",
			expectedErr: errMissingField,
			contains:    "verifySSL",
		},
		{
			name:        "missing everything",
			configYAML:  "maxConcurrency: 1\n",
			expectedErr: errMissingField,
			contains:    "defaultVMIP",
		},
		{
			name:        "relative apiURL",
			configYAML:  "apiURL: pve:8006\nusername: u\npassword: p\nverifySSL: true\nansibleUser: a\ndefaultVMIP: 1.1.1.1\n",
			expectedErr: errInvalidField,
			contains:    "apiURL",
		},
		{
			name:        "negative maxConcurrency",
			configYAML:  validConfigYAML + "maxConcurrency: -1\n",
			expectedErr: errInvalidField,
		},
		{
			name:        "invalid log level",
			configYAML:  validConfigYAML + "logging:\n  level: verbose\n",
			expectedErr: errInvalidField,
		},
		{
			name:        "reserved group",
			configYAML:  validConfigYAML + "osGroups:\n  proxmox_nodes: [pve]\n",
			expectedErr: errReservedGroup,
		},
		{
			name:        "duplicate group",
			configYAML:  validConfigYAML + "osGroups:\n  linux: [ubuntu]\n  linux: [debian]\n",
			expectedErr: errDuplicateGroup,
		},
		{
			name:        "empty keyword",
			configYAML:  validConfigYAML + "osGroups:\n  linux: [\"\"]\n",
			expectedErr: errEmptyKeyword,
		},
		{
			name:        "osGroups is a list",
			configYAML:  validConfigYAML + "osGroups: [linux]\n",
			expectedErr: errOSGroupsMapping,
		},
		{
			name:        "keywords are not a list",
			configYAML:  validConfigYAML + "osGroups:\n  linux:\n    ubuntu: true\n",
			expectedErr: errOSGroupsMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := loadConfig(context.Background(), writeConfig(t, tt.configYAML))

			assert.Nil(t, config)
			assert.ErrorIs(t, err, ErrConfig)
			assert.True(t, errors.Is(err, tt.expectedErr), "got %v", err)

			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	config, err := loadConfig(context.Background(), "/non/existent/path/config.yaml")

	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, config)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	config, err := loadConfig(context.Background(), writeConfig(t, "invalid: yaml: content: ["))

	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, config)
}

func TestLoadConfig_UnknownField(t *testing.T) {
	config, err := loadConfig(context.Background(), writeConfig(t, validConfigYAML+"verifySsl: true\n"))

	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, config)
}

func TestLoadConfig_Empty(t *testing.T) {
	config, err := loadConfig(context.Background(), writeConfig(t, ""))

	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, config)
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(ConfigPathEnvKey, "/from/env.yaml")

		path, err := resolveConfigPath("/from/flag.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/from/flag.yaml", path)
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv(ConfigPathEnvKey, "/from/env.yaml")

		path, err := resolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env.yaml", path)
	})

	t.Run("next to the executable", func(t *testing.T) {
		t.Setenv(ConfigPathEnvKey, "")

		path, err := resolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfigFileName, filepath.Base(path))
	})
}

func TestOSGroupsConversion(t *testing.T) {
	groups := OSGroups{{Name: "linux", Keywords: []string{"ubuntu"}}}

	assert.Equal(t, types.KeywordGroups{{Name: "linux", Keywords: []string{"ubuntu"}}}, types.KeywordGroups(groups))
}

func TestLoadConfig_ScriptConfigRejected(t *testing.T) {
	content := `{
  "PROXMOX_API_URL": "https://pve.example.com:8006/api2/json",
  "USERNAME": "root@pam",
  "PASSWORD": "secret",
  "VERIFY_SSL": false,
  "ANSIBLE_USER": "ansible",
  "DEFAULT_VM_IP_PREFIX": "192.168.1.254"
}`

	config, err := loadConfig(context.Background(), writeConfig(t, content))

	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "PROXMOX_API_URL")
	assert.Nil(t, config)
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	config, err := loadConfig(context.Background(), filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "root@pam", config.Username)
	assert.Equal(t, ptr.To(true), config.VerifySSL)
	assert.Equal(t, OSGroups{
		{Name: "windows", Keywords: []string{"win"}},
		{Name: "linux", Keywords: []string{"ubuntu", "debian", "centos"}},
	}, config.OSGroups)
}
