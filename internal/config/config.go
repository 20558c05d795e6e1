package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Painting defaults for a new session
	Paint PaintConfig `mapstructure:"paint" yaml:"paint"`

	// Script export settings
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// AI pattern suggestion settings
	AI AIConfig `mapstructure:"ai" yaml:"ai"`

	// Local storage locations
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Logging
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

type PaintConfig struct {
	DefaultLevel   int `mapstructure:"default_level" yaml:"default_level"`     // 1-4, used by drag painting
	RandomizeCount int `mapstructure:"randomize_count" yaml:"randomize_count"` // 1-1000 hits
	DefaultYears   int `mapstructure:"default_years" yaml:"default_years"`     // initial range length
}

type ExportConfig struct {
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	DataFile   string `mapstructure:"data_file" yaml:"data_file"`
	Target     string `mapstructure:"target" yaml:"target"` // nodejs, bash, powershell
	CommitHour int    `mapstructure:"commit_hour" yaml:"commit_hour"`
}

type AIConfig struct {
	Provider          string        `mapstructure:"provider" yaml:"provider"` // "gemini", "openai", "none"
	GeminiKey         string        `mapstructure:"gemini_key" yaml:"gemini_key"`
	GeminiModel       string        `mapstructure:"gemini_model" yaml:"gemini_model"`
	OpenAIKey         string        `mapstructure:"openai_key" yaml:"openai_key"`
	OpenAIModel       string        `mapstructure:"openai_model" yaml:"openai_model"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UseKeychain       bool          `mapstructure:"use_keychain" yaml:"use_keychain"`
}

type StorageConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	PrefsPath   string `mapstructure:"prefs_path" yaml:"prefs_path"`
	HistoryPath string `mapstructure:"history_path" yaml:"history_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".gitart")
	return &Config{
		Paint: PaintConfig{
			DefaultLevel:   3,
			RandomizeCount: 50,
			DefaultYears:   1,
		},
		Export: ExportConfig{
			OutputDir:  ".",
			DataFile:   "./data.json",
			Target:     "bash",
			CommitHour: 12,
		},
		AI: AIConfig{
			Provider:          "gemini",
			GeminiModel:       "gemini-2.0-flash",
			OpenAIModel:       "gpt-4o-mini",
			RequestsPerMinute: 10,
			Timeout:           30 * time.Second,
			UseKeychain:       true,
		},
		Storage: StorageConfig{
			Dir:         base,
			PrefsPath:   filepath.Join(base, "prefs.db"),
			HistoryPath: filepath.Join(base, "history.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(base, "logs", "gitart.log"),
		},
	}
}

// Load loads configuration from file, .env files and the environment
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvPrefix("GITART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".gitart")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".gitart"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// no config file, defaults apply
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	cfg.Storage.Dir = expandPath(cfg.Storage.Dir)
	cfg.Storage.PrefsPath = expandPath(cfg.Storage.PrefsPath)
	cfg.Storage.HistoryPath = expandPath(cfg.Storage.HistoryPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if res := cfg.Validate(); res.HasErrors() {
		return nil, res
	}

	return cfg, nil
}

// setDefaults registers every leaf key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("paint.default_level", cfg.Paint.DefaultLevel)
	v.SetDefault("paint.randomize_count", cfg.Paint.RandomizeCount)
	v.SetDefault("paint.default_years", cfg.Paint.DefaultYears)

	v.SetDefault("export.output_dir", cfg.Export.OutputDir)
	v.SetDefault("export.data_file", cfg.Export.DataFile)
	v.SetDefault("export.target", cfg.Export.Target)
	v.SetDefault("export.commit_hour", cfg.Export.CommitHour)

	v.SetDefault("ai.provider", cfg.AI.Provider)
	v.SetDefault("ai.gemini_key", cfg.AI.GeminiKey)
	v.SetDefault("ai.gemini_model", cfg.AI.GeminiModel)
	v.SetDefault("ai.openai_key", cfg.AI.OpenAIKey)
	v.SetDefault("ai.openai_model", cfg.AI.OpenAIModel)
	v.SetDefault("ai.requests_per_minute", cfg.AI.RequestsPerMinute)
	v.SetDefault("ai.timeout", cfg.AI.Timeout)
	v.SetDefault("ai.use_keychain", cfg.AI.UseKeychain)

	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.prefs_path", cfg.Storage.PrefsPath)
	v.SetDefault("storage.history_path", cfg.Storage.HistoryPath)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.json", cfg.Log.JSON)
}

// loadEnvFiles loads .env files in order of precedence.
// godotenv never overrides variables that are already set, so earlier files win.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".gitart", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies well-known provider variables and keychain secrets.
// Precedence for API keys: 1. env var 2. OS keychain 3. config file
func applyEnvOverrides(cfg *Config) {
	if p := os.Getenv("GITART_AI_PROVIDER"); p != "" {
		cfg.AI.Provider = p
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.GeminiKey = key
	} else if key := os.Getenv("API_KEY"); key != "" && cfg.AI.GeminiKey == "" {
		cfg.AI.GeminiKey = key
	} else if k := storedSecret(cfg, "gemini"); k != "" {
		cfg.AI.GeminiKey = k
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.OpenAIKey = key
	} else if k := storedSecret(cfg, "openai"); k != "" {
		cfg.AI.OpenAIKey = k
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.AI.GeminiModel = model
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.AI.OpenAIModel = model
	}

	if rpm := os.Getenv("GITART_AI_RPM"); rpm != "" {
		if n, err := strconv.Atoi(rpm); err == nil {
			cfg.AI.RequestsPerMinute = n
		}
	}

	if level := os.Getenv("GITART_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

// storedSecret looks up a saved key in the OS keychain, then the credentials file.
// Returns "" when use_keychain is off or nothing is stored.
func storedSecret(cfg *Config, provider string) string {
	if !cfg.AI.UseKeychain {
		return ""
	}
	km := NewKeyringManager()
	if km.IsAvailable() {
		item, _ := ItemForProvider(provider)
		if secret, err := km.Get(item); err == nil && secret != "" {
			return secret
		}
	}
	return NewCredentialManager().FileKey(provider)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save writes the configuration to path as yaml. API keys are never written;
// they belong in the environment or the OS keychain.
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	ai := c.AI
	ai.GeminiKey = ""
	ai.OpenAIKey = ""

	v.Set("paint", c.Paint)
	v.Set("export", c.Export)
	v.Set("ai", ai)
	v.Set("storage", c.Storage)
	v.Set("log", c.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultPath is where `gitart config init` writes the config file
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".gitart", "config.yaml")
}
