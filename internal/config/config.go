package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type SecurityConfig struct {
	BcryptCost  int `yaml:"bcrypt_cost"`
	TokenLength int `yaml:"token_length"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Security SecurityConfig `yaml:"security"`
}

type Config struct {
	Port        string
	GinMode     string
	DSN         string
	BcryptCost  int
	TokenLength int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml when present and applies environment
// variable overrides on top. A missing file is not an error; the service
// can run entirely from the environment.
func Load() (*Config, error) {
	path := env("CONFIG_PATH", "config/config.yml")

	file, err := loadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		file = &ConfigFile{}
	}

	cfg := &Config{
		Port:        env("PORT", defaultString(intToString(file.App.Port), "8080")),
		GinMode:     env("GIN_MODE", defaultString(file.App.GinMode, "release")),
		DSN:         env("DATABASE_DSN", file.Database.DSN),
		BcryptCost:  file.Security.BcryptCost,
		TokenLength: file.Security.TokenLength,
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}
	if v := os.Getenv("TOKEN_LENGTH"); v != "" {
		length, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_LENGTH: %w", err)
		}
		cfg.TokenLength = length
	}

	if cfg.TokenLength == 0 {
		cfg.TokenLength = 32
	}
	if cfg.TokenLength < 32 {
		return nil, fmt.Errorf("token length %d is below the 32 character minimum", cfg.TokenLength)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required (database.dsn or DATABASE_DSN)")
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func intToString(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

func defaultString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
