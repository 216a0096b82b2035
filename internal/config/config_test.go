package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Leaderboard.Backend != BackendMemory || cfg.Leaderboard.Limit != 10 {
		t.Fatalf("unexpected leaderboard defaults %+v", cfg.Leaderboard)
	}
	if cfg.OpenTDB.Amount != 10 || cfg.App.Env != "production" {
		t.Fatalf("unexpected defaults %+v %+v", cfg.OpenTDB, cfg.App)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, `
app:
  env: development
server:
  port: "9090"
opentdb:
  baseURL: http://localhost:8081
  timeout: 3s
  amount: 5
redis:
  addr: localhost:6379
  ttl: 30m
leaderboard:
  backend: redis
  limit: 20
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.OpenTDB.Amount != 5 || cfg.Leaderboard.Limit != 20 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if got := TTLDuration(cfg.OpenTDB.Timeout, time.Second); got != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown backend":      "leaderboard:\n  backend: mongo\n",
		"redis without addr":   "leaderboard:\n  backend: redis\n",
		"postgres without url": "leaderboard:\n  backend: postgres\n",
		"firestore no project": "leaderboard:\n  backend: firestore\n",
		"amount out of range":  "opentdb:\n  amount: 51\n",
		"bad env":              "app:\n  env: staging\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := TTLDuration("garbage", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on parse error, got %s", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
}
