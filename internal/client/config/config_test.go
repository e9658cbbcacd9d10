package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "ap-southeast-2_5OWr5yHu8", c.UserPoolID)
	assert.Equal(t, "3936nngb9i12t5ei6rjn9fblgc", c.ClientID)
	assert.Equal(t, "ap-southeast-2", c.Region)
	assert.True(t, c.UseKeyring)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	os.Args = []string{"geni"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "ap-southeast-2_5OWr5yHu8", cfg.UserPoolID)
	assert.True(t, cfg.UseKeyring)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GENI_USER_POOL_ID", "eu-west-1_EnvPool")
	t.Setenv("GENI_CLIENT_ID", "env-client")
	t.Setenv("GENI_REGION", "eu-west-1")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "eu-west-1_EnvPool", cfg.UserPoolID)
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "overrides pool and client",
			args: []string{"geni", "-pool", "us-east-1_FlagPool", "-client", "flag-client"},
			expected: Config{
				UserPoolID: "us-east-1_FlagPool",
				ClientID:   "flag-client",
				Region:     "ap-southeast-2",
				UseKeyring: true,
			},
		},
		{
			name: "no-keyring disables the secure backend",
			args: []string{"geni", "login", "-no-keyring"},
			expected: Config{
				UserPoolID: "ap-southeast-2_5OWr5yHu8",
				ClientID:   "3936nngb9i12t5ei6rjn9fblgc",
				Region:     "ap-southeast-2",
				UseKeyring: false,
			},
		},
		{
			name: "subcommands and foreign flags are ignored",
			args: []string{"geni", "login", "-e", "alice@example.com", "-region", "us-west-2"},
			expected: Config{
				UserPoolID: "ap-southeast-2_5OWr5yHu8",
				ClientID:   "3936nngb9i12t5ei6rjn9fblgc",
				Region:     "us-west-2",
				UseKeyring: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}
			cfg.LoadDefaults()
			require.NotPanics(t, func() { parseFlags(cfg) })

			assert.Equal(t, tt.expected, *cfg)
		})
	}
}
