package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"api"`
	Dashboard struct {
		Ticker string `yaml:"ticker"`
		Days   int    `yaml:"days"`
		Theme  string `yaml:"theme"`
	} `yaml:"dashboard"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		ClockCron   string `yaml:"clock_cron"`
	} `yaml:"schedule"`
	Trades struct {
		Backend string `yaml:"backend"` // memory, file or sqlite
		Path    string `yaml:"path"`
	} `yaml:"trades"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env file: %v", err)
	}

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
	if v := os.Getenv("STOCKPULSE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOCKPULSE_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("STOCKPULSE_TICKER"); v != "" {
		cfg.Dashboard.Ticker = v
	}
	if v := os.Getenv("STOCKPULSE_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse STOCKPULSE_DAYS: %w", err)
		}
		cfg.Dashboard.Days = days
	}
	if v := os.Getenv("STOCKPULSE_THEME"); v != "" {
		cfg.Dashboard.Theme = v
	}
	if v := os.Getenv("TRADES_BACKEND"); v != "" {
		cfg.Trades.Backend = v
	}
	if v := os.Getenv("TRADES_PATH"); v != "" {
		cfg.Trades.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}

	// Defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://127.0.0.1:5000"
	}
	cfg.Dashboard.Ticker = strings.ToUpper(strings.TrimSpace(cfg.Dashboard.Ticker))
	if cfg.Dashboard.Ticker == "" {
		cfg.Dashboard.Ticker = "AAPL"
	}
	if cfg.Dashboard.Days == 0 {
		cfg.Dashboard.Days = 7
	}
	if cfg.Dashboard.Theme == "" {
		cfg.Dashboard.Theme = "light"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "@every 60s"
	}
	if cfg.Schedule.ClockCron == "" {
		cfg.Schedule.ClockCron = "@every 1s"
	}
	if cfg.Trades.Backend == "" {
		cfg.Trades.Backend = "file"
	}
	if cfg.Trades.Path == "" {
		cfg.Trades.Path = "data/trades.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockpulse.db"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "logs/stockpulse.log"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 14
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Dashboard.Days < 1 || c.Dashboard.Days > 7 {
		return fmt.Errorf("dashboard.days must be between 1 and 7, got %d", c.Dashboard.Days)
	}
	switch c.Dashboard.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("dashboard.theme must be light or dark, got %q", c.Dashboard.Theme)
	}
	switch c.Trades.Backend {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("trades.backend must be memory, file or sqlite, got %q", c.Trades.Backend)
	}
	if c.Schedule.RefreshCron == "" || c.Schedule.ClockCron == "" {
		return fmt.Errorf("schedule.refresh_cron and schedule.clock_cron are required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether alerts and remote commands are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
