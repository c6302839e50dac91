package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Scheduler SchedulerConfig
	JWT       JWTConfig
	Admin     AdminConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// StoreConfig holds ledger persistence configuration
type StoreConfig struct {
	DataDir string
}

// SchedulerConfig holds refresh scheduling configuration
type SchedulerConfig struct {
	Interval     time.Duration
	FetchTimeout time.Duration // per-adapter budget within one run
	GamesFile    string        // optional games.yaml overriding the built-in table
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AdminConfig holds the single admin account guarding mutating endpoints
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "8000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("Store.DataDir", "./data")
	viper.SetDefault("Scheduler.Interval", 30*time.Minute)
	viper.SetDefault("Scheduler.FetchTimeout", 15*time.Second)
	viper.SetDefault("Scheduler.GamesFile", "")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
}
