package config

import (
	"flag"
	"os"

	"github.com/mnedelko/geniable/internal/flagx"
)

// parseEnv overlays Config with the GENI_* environment variables.
func parseEnv(cfg *Config) {
	if v := os.Getenv("GENI_USER_POOL_ID"); v != "" {
		cfg.UserPoolID = v
	}
	if v := os.Getenv("GENI_CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv("GENI_REGION"); v != "" {
		cfg.Region = v
	}
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-pool string    identity-provider user pool id
//	-client string  identity-provider app client id
//	-region string  provider region
//	-no-keyring     use file storage instead of the platform keyring
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with subcommands and flags
// owned by other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-pool", "-client", "-region", "-no-keyring"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.UserPoolID, "pool", cfg.UserPoolID, "identity provider user pool id")
	fs.StringVar(&cfg.ClientID, "client", cfg.ClientID, "identity provider app client id")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "identity provider region")
	noKeyring := fs.Bool("no-keyring", !cfg.UseKeyring, "use file storage instead of the system keyring")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.UseKeyring = !*noKeyring
}
