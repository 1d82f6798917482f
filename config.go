package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config config.
type Config struct {
	Addr     string         `yaml:"addr"`
	LogLevel string         `yaml:"log_level"`
	LogJSON  bool           `yaml:"log_json"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// ArchiveConfig selects where saved games live: "postgres" or "badger".
type ArchiveConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
	// Path is the badger directory. Empty runs badger in memory.
	Path string `yaml:"path"`
}

// SessionsConfig selects where games in play live: "memory" or "redis".
type SessionsConfig struct {
	Backend  string        `yaml:"backend"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

func defaultConfig() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Archive:  ArchiveConfig{Backend: "badger"},
		Sessions: SessionsConfig{Backend: "memory", TTL: time.Hour},
	}
}

func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &config); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	config.applyEnv()
	return config, config.validate()
}

func (config *Config) applyEnv() {
	if v, ok := os.LookupEnv("CHESS_ARCHIVE"); ok {
		config.Archive.Backend = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.Archive.DSN = strings.TrimSpace(v)
	} else if dbname, ok := os.LookupEnv("PGDATABASE"); ok && config.Archive.DSN == "" {
		config.Archive.DSN = strings.Join([]string{"dbname", dbname}, "=")
	}
	if v, ok := os.LookupEnv("REDIS_URL"); ok {
		config.Sessions.Backend = "redis"
		config.Sessions.RedisURL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		config.LogLevel = strings.TrimSpace(v)
	}
}

func (config Config) validate() error {
	switch config.Archive.Backend {
	case "badger":
	case "postgres":
		if config.Archive.DSN == "" {
			return fmt.Errorf("postgres archive needs a dsn")
		}
	default:
		return fmt.Errorf("unknown archive backend %q", config.Archive.Backend)
	}
	switch config.Sessions.Backend {
	case "memory":
	case "redis":
		if config.Sessions.RedisURL == "" {
			return fmt.Errorf("redis sessions need a redis_url")
		}
	default:
		return fmt.Errorf("unknown sessions backend %q", config.Sessions.Backend)
	}
	return nil
}
