package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"primary"`
	} `mapstructure:"database"`

	Server struct {
		Address string `mapstructure:"address"`
		Port    string `mapstructure:"port"`
	} `mapstructure:"server"`

	Search struct {
		DefaultLimit    int `mapstructure:"default_limit"`
		MaxLimit        int `mapstructure:"max_limit"`
		SuggestLimit    int `mapstructure:"suggest_limit"`
		SuggestCacheTTL int `mapstructure:"suggest_cache_ttl"` // seconds
	} `mapstructure:"search"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.BindEnv("database.primary.dsn", "DATABASE_URL")
	viper.BindEnv("redis.address", "REDIS_ADDR")

	viper.SetDefault("server.address", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("search.default_limit", 10)
	viper.SetDefault("search.max_limit", 100)
	viper.SetDefault("search.suggest_limit", 5)
	viper.SetDefault("search.suggest_cache_ttl", 60)
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.queues", map[string]int{"analytics": 1})

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
