package config

import (
	"github.com/spf13/viper"
)

// Config holds the runtime settings for the profiler backend.
type Config struct {
	Port      string
	DBPath    string
	DataDir   string
	JWTSecret string
}

// Load reads configuration from the environment with sane defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("DB_PATH", "./data/profiler.db")
	v.SetDefault("DATA_DIR", "./data/csv")
	v.SetDefault("JWT_SECRET", "")

	return &Config{
		Port:      v.GetString("PORT"),
		DBPath:    v.GetString("DB_PATH"),
		DataDir:   v.GetString("DATA_DIR"),
		JWTSecret: v.GetString("JWT_SECRET"),
	}
}
