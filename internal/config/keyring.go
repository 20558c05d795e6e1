package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "GitArt"

	// KeyringGeminiItem holds the Gemini API key
	KeyringGeminiItem = "gemini-api-key"

	// KeyringOpenAIItem holds the OpenAI API key
	KeyringOpenAIItem = "openai-api-key"
)

// KeyringManager handles secure credential storage in OS keychain
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

// ItemForProvider maps an AI provider name to its keychain item
func ItemForProvider(provider string) (string, error) {
	switch provider {
	case "gemini":
		return KeyringGeminiItem, nil
	case "openai":
		return KeyringOpenAIItem, nil
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
}

// Set stores a secret under item
func (km *KeyringManager) Set(item, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", item)
	}

	if err := keyring.Set(KeyringService, item, secret); err != nil {
		km.logger.Error("failed to save secret to keychain", "item", item, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("secret saved to keychain", "service", KeyringService, "item", item)
	return nil
}

// Get retrieves a secret. A missing item is not an error.
func (km *KeyringManager) Get(item string) (string, error) {
	secret, err := keyring.Get(KeyringService, item)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		km.logger.Error("failed to read secret from keychain", "item", item, "error", err)
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	km.logger.Debug("secret retrieved from keychain", "item", item)
	return secret, nil
}

// Delete removes a secret; deleting a missing item succeeds
func (km *KeyringManager) Delete(item string) error {
	err := keyring.Delete(KeyringService, item)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		km.logger.Error("failed to delete secret from keychain", "item", item, "error", err)
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}

	km.logger.Info("secret deleted from keychain", "item", item)
	return nil
}

// IsAvailable checks if OS keychain is available.
// Returns false on headless systems where no secret service is running.
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")
	if err == keyring.ErrNotFound {
		return true
	}
	if err != nil {
		km.logger.Debug("keychain not available", "error", err)
		return false
	}
	return true
}

// KeySourceInfo describes where an API key came from
type KeySourceInfo struct {
	Source string // "env", "keychain", "config", "none"
	Secure bool
}

// KeySource reports where the key for provider is resolved from
func (km *KeyringManager) KeySource(cfg *Config, provider string) KeySourceInfo {
	envVar, configured := "GEMINI_API_KEY", cfg.AI.GeminiKey
	if provider == "openai" {
		envVar, configured = "OPENAI_API_KEY", cfg.AI.OpenAIKey
	}

	if os.Getenv(envVar) != "" {
		return KeySourceInfo{Source: "env", Secure: true}
	}

	if item, err := ItemForProvider(provider); err == nil && km.IsAvailable() {
		if k, _ := km.Get(item); k != "" {
			return KeySourceInfo{Source: "keychain", Secure: true}
		}
	}

	if configured != "" {
		return KeySourceInfo{Source: "config", Secure: false}
	}

	return KeySourceInfo{Source: "none"}
}

// MaskAPIKey masks an API key for display, keeping the first 7 and last 4 characters
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 11 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
