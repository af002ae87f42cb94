package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
mirai:
  base_url: "http://127.0.0.1:8080"
  verify_key: "secret"
  bot_qq: 10000
economy:
  pool_base: 800
groups:
  - id: 111
    currency: true
    daily: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if cfg.Economy.PoolBase != 800 {
		t.Errorf("expected pool_base 800, got %d", cfg.Economy.PoolBase)
	}
	// Untouched fields pick up defaults.
	if cfg.Economy.DailyBase != 50 {
		t.Errorf("expected default daily_base 50, got %d", cfg.Economy.DailyBase)
	}
	if cfg.Economy.MaxStamina != 100 || cfg.Economy.RegenSeconds != 300 {
		t.Errorf("unexpected stamina defaults: %d / %d", cfg.Economy.MaxStamina, cfg.Economy.RegenSeconds)
	}
	if cfg.Schedule.DailyCron != "0 0 0 * * *" {
		t.Errorf("unexpected default cron: %s", cfg.Schedule.DailyCron)
	}
	if len(cfg.Groups) != 1 || cfg.Groups[0].ID != 111 {
		t.Errorf("groups not parsed: %+v", cfg.Groups)
	}
}

func TestValidate_MissingMirai(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without mirai settings")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MIRAI_BASE_URL", "http://example:9000")
	t.Setenv("BOT_QQ", "424242")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mirai.BaseURL != "http://example:9000" {
		t.Errorf("base_url override not applied: %s", cfg.Mirai.BaseURL)
	}
	if cfg.Mirai.BotQQ != 424242 {
		t.Errorf("bot_qq override not applied: %d", cfg.Mirai.BotQQ)
	}
}
