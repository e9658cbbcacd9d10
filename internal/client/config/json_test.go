package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"user_pool_id": "eu-central-1_JsonPool",
		"app_client_id": "json-client",
		"use_keyring": false
	}`), 0o600))

	os.Args = []string{"geni", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseJson(cfg) })

	assert.Equal(t, "eu-central-1_JsonPool", cfg.UserPoolID)
	assert.Equal(t, "json-client", cfg.ClientID)
	assert.False(t, cfg.UseKeyring)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	os.Args = []string{"geni"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseJson(cfg) })

	assert.Equal(t, "ap-southeast-2_5OWr5yHu8", cfg.UserPoolID)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	os.Args = []string{"geni", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}
