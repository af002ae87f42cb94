package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GroupEntry declares one group's feature flags.
type GroupEntry struct {
	ID       int64 `yaml:"id"`
	Currency bool  `yaml:"currency"`
	Daily    bool  `yaml:"daily"`
}

// Config holds all application configuration.
type Config struct {
	Mirai struct {
		BaseURL   string `yaml:"base_url"`
		VerifyKey string `yaml:"verify_key"`
		BotQQ     int64  `yaml:"bot_qq"`
	} `yaml:"mirai"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Economy struct {
		InitialBalance int64 `yaml:"initial_balance"`
		DailyBase      int64 `yaml:"daily_base"`
		PoolBase       int64 `yaml:"pool_base"`
		EarlyBirdCap   int64 `yaml:"early_bird_cap"`
		MaxStamina     int   `yaml:"max_stamina"`
		RegenSeconds   int   `yaml:"regen_seconds"`
		ClampBoxCount  bool  `yaml:"clamp_box_count"`
	} `yaml:"economy"`
	AliasFile           string       `yaml:"alias_file"`
	DefaultGroupEnabled bool         `yaml:"default_group_enabled"`
	Groups              []GroupEntry `yaml:"groups"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MIRAI_BASE_URL"); v != "" {
		cfg.Mirai.BaseURL = v
	}
	if v := os.Getenv("MIRAI_VERIFY_KEY"); v != "" {
		cfg.Mirai.VerifyKey = v
	}
	if v := os.Getenv("BOT_QQ"); v != "" {
		if qq, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Mirai.BotQQ = qq
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}

	// Defaults
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 0 * * *"
	}
	if cfg.Economy.InitialBalance == 0 {
		cfg.Economy.InitialBalance = 100
	}
	if cfg.Economy.DailyBase == 0 {
		cfg.Economy.DailyBase = 50
	}
	if cfg.Economy.PoolBase == 0 {
		cfg.Economy.PoolBase = 500
	}
	if cfg.Economy.EarlyBirdCap == 0 {
		cfg.Economy.EarlyBirdCap = 66
	}
	if cfg.Economy.MaxStamina == 0 {
		cfg.Economy.MaxStamina = 100
	}
	if cfg.Economy.RegenSeconds == 0 {
		cfg.Economy.RegenSeconds = 300
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/groupbank.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Mirai.BaseURL == "" {
		return fmt.Errorf("mirai.base_url is required")
	}
	if c.Mirai.VerifyKey == "" {
		return fmt.Errorf("mirai.verify_key is required")
	}
	if c.Mirai.BotQQ == 0 {
		return fmt.Errorf("mirai.bot_qq is required")
	}
	if c.Economy.EarlyBirdCap < 1 {
		return fmt.Errorf("economy.early_bird_cap must be at least 1")
	}
	return nil
}
