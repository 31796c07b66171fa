package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	DBDSN    string
	Env      string
	LogLevel string
	LogFile  string
	Metrics  bool
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "stockledger.db") // sqlite file in project root
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("METRICS", true)

	cfg := Config{
		Port:     v.GetString("PORT"),
		DBDSN:    v.GetString("DB_DSN"),
		Env:      v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),
		Metrics:  v.GetBool("METRICS"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s APP_ENV=%s LOG_LEVEL=%s METRICS=%v",
		cfg.Port, cfg.DBDSN, cfg.Env, cfg.LogLevel, cfg.Metrics)
	return cfg
}
