package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	TaxRate  float64        `yaml:"tax_rate" toml:"tax_rate"`
	Currency string         `yaml:"currency" toml:"currency"`
	CPI      CPIConfig      `yaml:"cpi" toml:"cpi"`
	Ledger   LedgerConfig   `yaml:"ledger" toml:"ledger"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Chart    ChartConfig    `yaml:"chart" toml:"chart"`
	Telegram TelegramConfig `yaml:"telegram" toml:"telegram"`
	Email    EmailConfig    `yaml:"email" toml:"email"`
	Schedule ScheduleConfig `yaml:"schedule" toml:"schedule"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Proxy    string         `yaml:"proxy" toml:"proxy"`
}

// CPIEntry is one year of the consumer price index table.
type CPIEntry struct {
	Year  int     `yaml:"year" toml:"year"`
	Value float64 `yaml:"value" toml:"value"`
}

// CPIConfig holds the CPI table and the optional SDMX feed it can be refreshed from.
type CPIConfig struct {
	Table     []CPIEntry `yaml:"table" toml:"table"`
	SourceURL string     `yaml:"source_url" toml:"source_url"`
	Timeout   string     `yaml:"timeout" toml:"timeout"`
}

// GetTimeout parses and returns the feed timeout.
func (c *CPIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Values returns the table as a year to index map.
func (c *CPIConfig) Values() map[int]float64 {
	m := make(map[int]float64, len(c.Table))
	for _, e := range c.Table {
		m[e.Year] = e.Value
	}
	return m
}

type LedgerConfig struct {
	StateFile string `yaml:"state_file" toml:"state_file"`
}

type DatabaseConfig struct {
	SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"`
}

type ChartConfig struct {
	Output string `yaml:"output" toml:"output"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" toml:"bot_token"`
	ChatID   string `yaml:"chat_id" toml:"chat_id"`
}

// EmailConfig configures the SMTP notification channel. Empty Host disables it.
type EmailConfig struct {
	Host     string   `yaml:"host" toml:"host"`
	Port     int      `yaml:"port" toml:"port"`
	Username string   `yaml:"username" toml:"username"`
	Password string   `yaml:"password" toml:"password"`
	From     string   `yaml:"from" toml:"from"`
	To       []string `yaml:"to" toml:"to"`
}

// ScheduleConfig holds cron expressions (with seconds) for watch mode.
type ScheduleConfig struct {
	CPICron      string `yaml:"cpi_cron" toml:"cpi_cron"`
	AnalysisCron string `yaml:"analysis_cron" toml:"analysis_cron"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// DefaultCPITable is the yearly index used when no other table is configured.
var DefaultCPITable = []CPIEntry{
	{2015, 100.0}, {2016, 100.0}, {2017, 100.2}, {2018, 101.0}, {2019, 101.9},
	{2020, 101.3}, {2021, 102.8}, {2022, 107.3}, {2023, 111.8}, {2024, 113.8},
}

// NewDefaultConfig returns a Config with the built-in defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{
		TaxRate:  0.25,
		Currency: "ILS",
	}
	cfg.CPI.Table = append([]CPIEntry(nil), DefaultCPITable...)
	cfg.CPI.Timeout = "30s"
	cfg.Ledger.StateFile = "data/ledger.json"
	cfg.Database.SQLitePath = "data/analyzer.db"
	cfg.Chart.Output = "investment_comparison.png"
	cfg.Chart.Width = 1000
	cfg.Chart.Height = 600
	cfg.Email.Port = 587
	// CBS publishes the CPI on the 15th of each month.
	cfg.Schedule.CPICron = "0 0 6 16 * *"
	cfg.Schedule.AnalysisCron = "0 0 8 * * 1"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load reads config from a YAML or TOML file over the defaults, then applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		// a configured table replaces the default one instead of extending it
		cfg.CPI.Table = nil
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if len(cfg.CPI.Table) == 0 {
			cfg.CPI.Table = append([]CPIEntry(nil), DefaultCPITable...)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ANALYZER_TAX_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ANALYZER_TAX_RATE: %w", err)
		}
		cfg.TaxRate = rate
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("CPI_SOURCE_URL"); v != "" {
		cfg.CPI.SourceURL = v
	}
	if v := os.Getenv("LEDGER_FILE"); v != "" {
		cfg.Ledger.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Validate checks that the configuration can drive an analysis.
func (c *Config) Validate() error {
	if math.IsNaN(c.TaxRate) || c.TaxRate < 0 || c.TaxRate > 1 {
		return fmt.Errorf("tax_rate must be within [0, 1], got %g", c.TaxRate)
	}
	if len(c.CPI.Table) == 0 {
		return fmt.Errorf("cpi.table must not be empty")
	}
	seen := make(map[int]bool, len(c.CPI.Table))
	for _, e := range c.CPI.Table {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) || e.Value <= 0 {
			return fmt.Errorf("cpi.table: value for %d must be a positive finite number", e.Year)
		}
		if seen[e.Year] {
			return fmt.Errorf("cpi.table: duplicate year %d", e.Year)
		}
		seen[e.Year] = true
	}
	if c.Ledger.StateFile == "" {
		return fmt.Errorf("ledger.state_file is required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Email.Host != "" && (c.Email.From == "" || len(c.Email.To) == 0) {
		return fmt.Errorf("email.from and email.to are required when email.host is set")
	}
	return nil
}
