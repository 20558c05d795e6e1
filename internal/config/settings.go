package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/viper"
)

// secretKeys are never shown in full or written by SetValue
var secretKeys = map[string]bool{
	"ai.gemini_key": true,
	"ai.openai_key": true,
}

// Values flattens the config into dotted keys, with secrets masked
func (c *Config) Values() map[string]string {
	v := viper.New()
	setDefaults(v, c)

	out := make(map[string]string)
	for _, key := range v.AllKeys() {
		val := fmt.Sprint(v.Get(key))
		if secretKeys[key] {
			val = MaskAPIKey(v.GetString(key))
		}
		out[key] = val
	}
	return out
}

// Keys returns every settable key, sorted
func Keys() []string {
	v := viper.New()
	setDefaults(v, Default())
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}

// Get returns the display value for key
func (c *Config) Get(key string) (string, bool) {
	val, ok := c.Values()[key]
	return val, ok
}

// SetValue updates one key in the config file at path, creating the file if needed.
// The merged result must validate before anything is written.
func SetValue(path, key, value string) error {
	if secretKeys[key] {
		return fmt.Errorf("%s is a secret; use `gitart config set-key` instead", key)
	}

	known := false
	for _, k := range Keys() {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown config key %q", key)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	v.Set(key, value)

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if res := cfg.Validate(); res.HasErrors() {
		return res
	}

	return cfg.Save(path)
}
