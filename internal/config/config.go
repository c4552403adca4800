package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		Bank       string `yaml:"bank"`
		TTL        string `yaml:"ttl"`
		SessionTTL string `yaml:"sessionTTL"`
	} `yaml:"quiz"`
	Stats struct {
		RecentLimit     int    `yaml:"recentLimit"`
		CompletionLimit int    `yaml:"completionLimit"`
		DashboardRecent int    `yaml:"dashboardRecent"`
		IdempotencyTTL  string `yaml:"idempotencyTTL"`
	} `yaml:"stats"`
	Submit struct {
		RatePerMinute int `yaml:"ratePerMinute"`
		Burst         int `yaml:"burst"`
	} `yaml:"submit"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads YAML config from path. Unset values take their defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Defaults()
	return cfg, nil
}

// Defaults fills zero values.
func (c *Config) Defaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Quiz.Bank == "" {
		c.Quiz.Bank = "playstyle-v1"
	}
	if c.Stats.RecentLimit <= 0 {
		c.Stats.RecentLimit = 100
	}
	if c.Stats.CompletionLimit <= 0 {
		c.Stats.CompletionLimit = 100
	}
	if c.Stats.DashboardRecent <= 0 {
		c.Stats.DashboardRecent = 10
	}
	if c.Submit.RatePerMinute <= 0 {
		c.Submit.RatePerMinute = 30
	}
	if c.Submit.Burst <= 0 {
		c.Submit.Burst = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
