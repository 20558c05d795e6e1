package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rohankatakam/gitart/internal/errors"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// CredentialManager stores AI provider keys.
// Keys go to the OS keychain when one is available and to a 0600 yaml file otherwise.
type CredentialManager struct {
	keyring *KeyringManager
	path    string
}

// Credentials is the on-disk fallback for hosts without a keychain
type Credentials struct {
	GeminiAPIKey string `yaml:"gemini_api_key,omitempty"`
	OpenAIAPIKey string `yaml:"openai_api_key,omitempty"`
}

// NewCredentialManager creates a manager backed by ~/.gitart/credentials.yaml
func NewCredentialManager() *CredentialManager {
	homeDir, _ := os.UserHomeDir()
	return &CredentialManager{
		keyring: NewKeyringManager(),
		path:    filepath.Join(homeDir, ".gitart", "credentials.yaml"),
	}
}

// Path returns the fallback credentials file location
func (cm *CredentialManager) Path() string {
	return cm.path
}

// StoreKey saves key for provider and reports where it went ("keychain" or the file path)
func (cm *CredentialManager) StoreKey(provider, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.ValidationErrorf("%s API key cannot be empty", provider)
	}
	item, err := ItemForProvider(provider)
	if err != nil {
		return "", errors.ValidationError(err, "cannot store key")
	}

	if cm.keyring.IsAvailable() {
		if err := cm.keyring.Set(item, key); err != nil {
			return "", errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityHigh,
				"failed to save API key to keychain")
		}
		return "keychain", nil
	}

	creds, _ := cm.loadFile()
	if creds == nil {
		creds = &Credentials{}
	}
	switch provider {
	case "gemini":
		creds.GeminiAPIKey = key
	case "openai":
		creds.OpenAIAPIKey = key
	}
	if err := cm.saveFile(*creds); err != nil {
		return "", errors.FileSystemError(err, "failed to write credentials file")
	}
	return cm.path, nil
}

// FileKey returns the key stored in the fallback file, "" when absent
func (cm *CredentialManager) FileKey(provider string) string {
	creds, err := cm.loadFile()
	if err != nil {
		return ""
	}
	switch provider {
	case "gemini":
		return creds.GeminiAPIKey
	case "openai":
		return creds.OpenAIAPIKey
	}
	return ""
}

func (cm *CredentialManager) loadFile() (*Credentials, error) {
	data, err := os.ReadFile(cm.path)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (cm *CredentialManager) saveFile(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(cm.path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}

	return os.WriteFile(cm.path, data, 0600)
}

// ReadSecret prints prompt to out and reads one line from stdin without echo when
// stdin is a terminal, falling back to a plain line read for piped input
func ReadSecret(prompt string, out io.Writer) (string, error) {
	fmt.Fprint(out, prompt)

	if IsInteractive() {
		bytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	return readLine(os.Stdin)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	return term.IsTerminal(int(syscall.Stdin))
}
