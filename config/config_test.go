package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 4475.0, cfg.Journal.StartingBalance)
	assert.Equal(t, 0.67, cfg.Journal.RatePerContractPerSide)
	assert.Equal(t, 10.0, cfg.Journal.BreakevenDayBand)
	assert.Equal(t, "06:30", cfg.Journal.SessionStart)
	assert.Equal(t, "08:00", cfg.Journal.SessionEnd)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "slstrades_journal_v3", cfg.Storage.Key)
	assert.Equal(t, 1400, cfg.Shots.MaxWidth)
	assert.Equal(t, 2, cfg.Shots.MaxCount)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{
			name:   "memory storage",
			mutate: func(c *Config) { c.Storage.Type = "memory"; c.Storage.DBPath = "" },
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.Journal.RatePerContractPerSide = -0.1 },
			wantErr: true,
			errMsg:  "rate_per_contract_per_side",
		},
		{
			name:    "bad session start",
			mutate:  func(c *Config) { c.Journal.SessionStart = "6:30" },
			wantErr: true,
			errMsg:  "journal session",
		},
		{
			name:    "session end before start",
			mutate:  func(c *Config) { c.Journal.SessionEnd = "06:00" },
			wantErr: true,
			errMsg:  "must not be before session_start",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: true,
			errMsg:  "db_path required",
		},
		{
			name:    "redis without addr",
			mutate:  func(c *Config) { c.Storage.Type = "redis" },
			wantErr: true,
			errMsg:  "redis_addr required",
		},
		{
			name:    "unknown storage",
			mutate:  func(c *Config) { c.Storage.Type = "postgres" },
			wantErr: true,
			errMsg:  "storage.type",
		},
		{
			name:    "empty key",
			mutate:  func(c *Config) { c.Storage.Key = "" },
			wantErr: true,
			errMsg:  "storage.key",
		},
		{
			name:    "quality out of range",
			mutate:  func(c *Config) { c.Shots.Quality = 1.5 },
			wantErr: true,
			errMsg:  "shots.quality",
		},
		{
			name:    "too many shots",
			mutate:  func(c *Config) { c.Shots.MaxCount = 3 },
			wantErr: true,
			errMsg:  "shots.max_count",
		},
		{
			name:    "zero shots",
			mutate:  func(c *Config) { c.Shots.MaxCount = 0 },
			wantErr: true,
			errMsg:  "shots.max_count must be between 1",
		},
		{
			name:   "one shot",
			mutate: func(c *Config) { c.Shots.MaxCount = 1 },
		},
		{
			name:    "bad log encoding",
			mutate:  func(c *Config) { c.Log.Encoding = "xml" },
			wantErr: true,
			errMsg:  "log.encoding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.StartingBalance = 10000
			cfg.Storage.Key = "custom_key"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Storage, loaded.Storage)
			assert.Equal(t, cfg.Shots, loaded.Shots)
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  starting_balance: 2500\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, cfg.Journal.StartingBalance)
	assert.Equal(t, 0.67, cfg.Journal.RatePerContractPerSide)
	assert.Equal(t, "slstrades_journal_v3", cfg.Storage.Key)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: ftp\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TJ_REDIS_ADDR": "localhost:6379",
		"TJ_LOG_LEVEL":  "debug",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.API.Addr)
}

func TestDerivedSettings(t *testing.T) {
	cfg := Default()
	cfg.Journal.RatePerContractPerSide = 0.5
	cfg.Journal.NotesMaxLen = 20

	opts := cfg.TradeOptions()
	assert.Equal(t, 0.5, opts.Calculator.RatePerContractPerSide)
	assert.Equal(t, 20, opts.NotesMaxLen)
	assert.NotNil(t, opts.NewID)

	s := cfg.Settings()
	assert.Equal(t, 4475.0, s.StartingBalance)
	assert.Equal(t, 10.0, s.BreakevenDayBand)

	enc := cfg.Encoder()
	assert.Equal(t, 1400, enc.MaxWidth)
	assert.Equal(t, 0.74, enc.Quality)
}
