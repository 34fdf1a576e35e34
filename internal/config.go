package internal

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved runtime configuration. Precedence is
// flags > environment (HUBCTL_*) > config.yaml in the data dir > defaults.
type Config struct {
	SyncEnabled    bool
	StaleThreshold time.Duration
	HTTPTimeout    time.Duration
}

// LoadConfig reads config.yaml from the data directory, if present,
// and applies environment overrides. A missing config file is not an
// error; defaults apply.
func LoadConfig(dataDir string) *Config {
	v := viper.New()
	v.SetDefault("sync.enabled", true)
	v.SetDefault("sync.stale_minutes", 15)
	v.SetDefault("http.timeout_seconds", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)

	v.SetEnvPrefix("HUBCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			LogWarn("Ignoring unreadable config file: %v", err)
		}
	}

	return &Config{
		SyncEnabled:    v.GetBool("sync.enabled"),
		StaleThreshold: time.Duration(v.GetInt("sync.stale_minutes")) * time.Minute,
		HTTPTimeout:    time.Duration(v.GetInt("http.timeout_seconds")) * time.Second,
	}
}
