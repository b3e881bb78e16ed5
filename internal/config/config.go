package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Formats lists the supported report formats.
var Formats = []string{"text", "markdown", "json", "html"}

// Config represents the chunkprompt configuration.
type Config struct {
	Provider  string        `json:"provider"`
	Model     string        `json:"model"`
	ChunkSize int           `json:"chunkSize"`
	Output    string        `json:"output"`
	Format    string        `json:"format"`
	Logs      LogConfig     `json:"logs"`
	Retry     RetryConfig   `json:"retry"`
	Cache     CacheConfig   `json:"cache"`
	Privacy   PrivacyConfig `json:"privacy"`
}

// LogConfig names the category log files. Empty disables a file.
type LogConfig struct {
	PromptFile string `json:"promptFile"`
	ResultFile string `json:"resultFile"`
}

// RetryConfig controls per-chunk rate-limit retries.
type RetryConfig struct {
	MaxAttempts   int `json:"maxAttempts"`
	BackoffFactor int `json:"backoffFactor"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:  "openai",
		Model:     "gpt-4",
		ChunkSize: 1000,
		Output:    "analysis_report.txt",
		Format:    "text",
		Logs: LogConfig{
			PromptFile: "prompts.log",
			ResultFile: "results.log",
		},
		Retry: RetryConfig{
			MaxAttempts:   5,
			BackoffFactor: 2,
		},
		Cache: CacheConfig{
			TTLSeconds: 86400,
		},
	}
}

// ErrInvalidChunkSize is returned by Validate for a non-positive chunk size.
var ErrInvalidChunkSize = errors.New("chunk size must be a positive integer")

// Validate reports settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.maxAttempts must be positive (got %d)", c.Retry.MaxAttempts)
	}
	if c.Retry.BackoffFactor < 1 {
		return fmt.Errorf("retry.backoffFactor must be at least 1 (got %d)", c.Retry.BackoffFactor)
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	return nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ConfigDir returns the platform-appropriate config directory for chunkprompt.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chunkprompt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "chunkprompt"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "chunkprompt"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "chunkprompt"), nil
	default:
		return filepath.Join(home, ".config", "chunkprompt"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only flags the user set should be present).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithDefaults overlays the non-zero settings of a file config on Default.
func WithDefaults(file Config) Config {
	cfg := Default()
	mergeFile(&cfg, file)
	return cfg
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.ChunkSize != 0 {
		dst.ChunkSize = src.ChunkSize
	}
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Logs.PromptFile != "" {
		dst.Logs.PromptFile = src.Logs.PromptFile
	}
	if src.Logs.ResultFile != "" {
		dst.Logs.ResultFile = src.Logs.ResultFile
	}
	if src.Retry.MaxAttempts != 0 {
		dst.Retry.MaxAttempts = src.Retry.MaxAttempts
	}
	if src.Retry.BackoffFactor != 0 {
		dst.Retry.BackoffFactor = src.Retry.BackoffFactor
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	// Both bools default to false, so a file can only switch them on.
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
	dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets || dst.Privacy.RedactSecrets
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("CHUNKPROMPT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("CHUNKPROMPT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CHUNKPROMPT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CHUNKPROMPT_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("CHUNKPROMPT_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHUNKPROMPT_CHUNK_SIZE must be an integer: %w", err)
		}
		cfg.ChunkSize = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "chunkSize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("chunkSize must be an integer: %w", err)
		}
		cfg.ChunkSize = n
	case "output":
		cfg.Output = value
	case "format":
		cfg.Format = value
	case "logs.promptFile":
		cfg.Logs.PromptFile = value
	case "logs.resultFile":
		cfg.Logs.ResultFile = value
	case "retry.maxAttempts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("retry.maxAttempts must be an integer: %w", err)
		}
		cfg.Retry.MaxAttempts = n
	case "retry.backoffFactor":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("retry.backoffFactor must be an integer: %w", err)
		}
		cfg.Retry.BackoffFactor = n
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
