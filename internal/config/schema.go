package config

// Config holds hungie configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
	Extract ExtractCfg `mapstructure:"extract" yaml:"extract"`
	Inbox   InboxCfg   `mapstructure:"inbox" yaml:"inbox"`
	LogLevel string    `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// ExtractCfg configures extraction runs.
type ExtractCfg struct {
	// DefaultRuleset names the ruleset used when a run doesn't specify one.
	DefaultRuleset string `mapstructure:"default_ruleset" yaml:"default_ruleset"`
	// DatabasePath overrides the default {home}/hungie.db location.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
}

// InboxCfg configures the PDF inbox watcher.
type InboxCfg struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// SettleSeconds is how long a file must stop growing before it is
	// considered fully written.
	SettleSeconds int `mapstructure:"settle_seconds" yaml:"settle_seconds"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Extract: ExtractCfg{
			DefaultRuleset: "default",
		},
		Inbox: InboxCfg{
			Enabled:       true,
			SettleSeconds: 2,
		},
		LogLevel: "info",
	}
}
