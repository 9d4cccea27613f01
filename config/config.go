package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/ledger"
	"github.com/rustyeddy/tradejournal/shots"
)

// Config is the complete journal configuration.
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Shots   ShotsConfig   `json:"shots" yaml:"shots"`
	Log     LogConfig     `json:"log" yaml:"log"`
	API     APIConfig     `json:"api" yaml:"api"`
}

// JournalConfig holds the money and session constants.
type JournalConfig struct {
	StartingBalance        float64 `json:"starting_balance" yaml:"starting_balance"`
	RatePerContractPerSide float64 `json:"rate_per_contract_per_side" yaml:"rate_per_contract_per_side"`
	BreakevenDayBand       float64 `json:"breakeven_day_band" yaml:"breakeven_day_band"`
	SessionStart           string  `json:"session_start" yaml:"session_start"` // HH:MM
	SessionEnd             string  `json:"session_end" yaml:"session_end"`     // HH:MM
	NotesMaxLen            int     `json:"notes_max_len" yaml:"notes_max_len"`
}

// StorageConfig selects the blob backend.
type StorageConfig struct {
	Type      string `json:"type" yaml:"type"` // "sqlite", "redis" or "memory"
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisDB   int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
	Key       string `json:"key" yaml:"key"`
}

type ShotsConfig struct {
	MaxWidth int     `json:"max_width" yaml:"max_width"`
	Quality  float64 `json:"quality" yaml:"quality"`
	MaxCount int     `json:"max_count" yaml:"max_count"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"` // "json" or "console"
	Development bool   `json:"development" yaml:"development"`
}

type APIConfig struct {
	Addr    string `json:"addr" yaml:"addr"`
	Release bool   `json:"release" yaml:"release"`
}

// LoadFromFile loads configuration from a YAML or JSON file. Missing fields
// keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML (.yaml/.yml) or JSON.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	j := c.Journal
	if !finite(j.StartingBalance) {
		return fmt.Errorf("journal.starting_balance must be a finite number")
	}
	if !finite(j.RatePerContractPerSide) || j.RatePerContractPerSide < 0 {
		return fmt.Errorf("journal.rate_per_contract_per_side must be >= 0")
	}
	if !finite(j.BreakevenDayBand) || j.BreakevenDayBand < 0 {
		return fmt.Errorf("journal.breakeven_day_band must be >= 0")
	}
	times, err := journal.SessionTimes(j.SessionStart, j.SessionEnd)
	if err != nil {
		return fmt.Errorf("journal session: %w", err)
	}
	if len(times) == 0 {
		return fmt.Errorf("journal.session_end must not be before session_start")
	}
	if j.NotesMaxLen < 0 {
		return fmt.Errorf("journal.notes_max_len must be >= 0")
	}

	switch c.Storage.Type {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage db_path required for sqlite type")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage redis_addr required for redis type")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.type must be 'sqlite', 'redis' or 'memory'")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}

	if c.Shots.MaxWidth <= 0 {
		return fmt.Errorf("shots.max_width must be positive")
	}
	if c.Shots.Quality <= 0 || c.Shots.Quality > 1 {
		return fmt.Errorf("shots.quality must be in (0, 1]")
	}
	if c.Shots.MaxCount < 1 || c.Shots.MaxCount > journal.MaxShots {
		return fmt.Errorf("shots.max_count must be between 1 and %d", journal.MaxShots)
	}

	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		return fmt.Errorf("log.encoding must be 'json' or 'console'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			StartingBalance:        analytics.DefaultStartingBalance,
			RatePerContractPerSide: journal.DefaultRatePerContractPerSide,
			BreakevenDayBand:       analytics.DefaultBreakevenDayBand,
			SessionStart:           journal.DefaultSessionStart,
			SessionEnd:             journal.DefaultSessionEnd,
			NotesMaxLen:            journal.DefaultNotesMaxLen,
		},
		Storage: StorageConfig{
			Type:   "sqlite",
			DBPath: "./journal.sqlite",
			Key:    ledger.DefaultKey,
		},
		Shots: ShotsConfig{
			MaxWidth: shots.DefaultMaxWidth,
			Quality:  shots.DefaultQuality,
			MaxCount: shots.DefaultMaxCount,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		API: APIConfig{
			Addr: ":8080",
		},
	}
}

// TradeOptions builds the NewTrade options for this config.
func (c *Config) TradeOptions() journal.Options {
	opts := journal.DefaultOptions()
	opts.Calculator = journal.Calculator{RatePerContractPerSide: c.Journal.RatePerContractPerSide}
	opts.SessionStart = c.Journal.SessionStart
	opts.SessionEnd = c.Journal.SessionEnd
	opts.NotesMaxLen = c.Journal.NotesMaxLen
	return opts
}

// Settings builds the aggregator settings for this config.
func (c *Config) Settings() analytics.Settings {
	return analytics.Settings{
		StartingBalance:  c.Journal.StartingBalance,
		BreakevenDayBand: c.Journal.BreakevenDayBand,
	}
}

// Encoder builds the screenshot encoder for this config.
func (c *Config) Encoder() shots.Encoder {
	return shots.Encoder{
		MaxWidth: c.Shots.MaxWidth,
		Quality:  c.Shots.Quality,
		MaxCount: c.Shots.MaxCount,
	}
}

// ApplyEnv overrides selected fields from TJ_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("TJ_DB"); v != "" {
		c.Storage.Type = "sqlite"
		c.Storage.DBPath = v
	}
	if v := getenv("TJ_REDIS_ADDR"); v != "" {
		c.Storage.Type = "redis"
		c.Storage.RedisAddr = v
	}
	if v := getenv("TJ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("TJ_API_ADDR"); v != "" {
		c.API.Addr = v
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
