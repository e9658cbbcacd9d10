package config

import (
	"encoding/json"
	"os"

	"github.com/mnedelko/geniable/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values, so a partial file only
// overrides what it names.
type JsonConfig struct {
	UserPoolID *string `json:"user_pool_id"`
	ClientID   *string `json:"app_client_id"`
	Region     *string `json:"region"`
	ConfigDir  *string `json:"config_dir"`
	UseKeyring *bool   `json:"use_keyring"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. If no flag is given, nothing is loaded. Panics on
// read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	applyJson(cfg, &jc)
}

func applyJson(cfg *Config, jc *JsonConfig) {
	if jc.UserPoolID != nil {
		cfg.UserPoolID = *jc.UserPoolID
	}
	if jc.ClientID != nil {
		cfg.ClientID = *jc.ClientID
	}
	if jc.Region != nil {
		cfg.Region = *jc.Region
	}
	if jc.ConfigDir != nil {
		cfg.ConfigDir = *jc.ConfigDir
	}
	if jc.UseKeyring != nil {
		cfg.UseKeyring = *jc.UseKeyring
	}
}
