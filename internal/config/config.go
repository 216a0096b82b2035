package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trivia-quiz/pkg/validator"
)

// Leaderboard backends.
const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

type Config struct {
	App struct {
		Env string `yaml:"env" validate:"omitempty,oneof=development production"`
	} `yaml:"app"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	OpenTDB struct {
		BaseURL string `yaml:"baseURL" validate:"omitempty,url"`
		Timeout string `yaml:"timeout"`
		Amount  int    `yaml:"amount" validate:"min=0,max=50"`
	} `yaml:"opentdb"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"min=0"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Firestore struct {
		ProjectID       string `yaml:"projectID"`
		CredentialsFile string `yaml:"credentialsFile"`
		Collection      string `yaml:"collection"`
	} `yaml:"firestore"`
	Leaderboard struct {
		Backend string `yaml:"backend" validate:"omitempty,oneof=memory redis postgres firestore"`
		Limit   int    `yaml:"limit" validate:"min=0,max=100"`
	} `yaml:"leaderboard"`
	Categories struct {
		TTL string `yaml:"ttl"`
	} `yaml:"categories"`
}

// Load reads YAML config from path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "production"
	}
	if c.Leaderboard.Backend == "" {
		c.Leaderboard.Backend = BackendMemory
	}
	if c.Leaderboard.Limit == 0 {
		c.Leaderboard.Limit = 10
	}
	if c.OpenTDB.Amount == 0 {
		c.OpenTDB.Amount = 10
	}
}

// Validate checks field ranges and that the chosen leaderboard backend is configured.
func (c Config) Validate() error {
	if err := validator.ValidateStruct(c); err != nil {
		return err
	}
	switch c.Leaderboard.Backend {
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("leaderboard backend redis requires redis.addr")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return errors.New("leaderboard backend postgres requires postgres.url")
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			return errors.New("leaderboard backend firestore requires firestore.projectID")
		}
	}
	return nil
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
