package config

// Config holds runtime settings for the Geniable CLI.
//
// Fields:
//   - UserPoolID: identity-provider user pool identifier.
//   - ClientID: identity-provider app client identifier.
//   - Region: provider region.
//   - ConfigDir: directory for fallback file storage (empty means ~/.geniable).
//   - UseKeyring: whether to try the platform keyring before file storage.
type Config struct {
	UserPoolID string
	ClientID   string
	Region     string
	ConfigDir  string
	UseKeyring bool
}

// LoadDefaults populates c with the hosted-service defaults. All users
// connect to the same cloud service unless overridden.
func (c *Config) LoadDefaults() {
	c.UserPoolID = "ap-southeast-2_5OWr5yHu8"
	c.ClientID = "3936nngb9i12t5ei6rjn9fblgc"
	c.Region = "ap-southeast-2"
	c.ConfigDir = ""
	c.UseKeyring = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
