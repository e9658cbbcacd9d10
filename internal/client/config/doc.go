// Package config loads runtime configuration for the Geniable CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables: GENI_USER_POOL_ID, GENI_CLIENT_ID, GENI_REGION.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-pool string    identity-provider user pool id
//	-client string  identity-provider app client id
//	-region string  provider region
//	-no-keyring     use file storage instead of the platform keyring
//
// # JSON schema
//
//	{
//	  "user_pool_id": "ap-southeast-2_XXXXXXXXX",
//	  "app_client_id": "xxxxxxxxxxxxxxxxxxxxxxxxxx",
//	  "region": "ap-southeast-2",
//	  "config_dir": "/home/user/.geniable",
//	  "use_keyring": true
//	}
package config
