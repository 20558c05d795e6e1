package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rohankatakam/gitart/internal/config"
	"github.com/rohankatakam/gitart/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage GitArt configuration",
	Long:  `View and modify GitArt configuration settings.`,
}

var showSource bool

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long: `Get a configuration value, optionally showing where it's stored.

Examples:
  # Get the export target
  gitart config get export.target

  # Show where the Gemini API key is read from
  gitart config get ai.gemini_key --show-source`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set configuration value",
	Long: `Set a configuration value in the config file.

Examples:
  gitart config set export.target powershell
  gitart config set paint.randomize_count 200
  gitart config set ai.provider openai

API keys are not accepted here, use 'gitart config set-key'.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [gemini|openai]",
	Short: "Store an AI provider API key securely",
	Long: `Prompt for an API key and store it in the OS keychain. When no keychain is
available the key goes to ~/.gitart/credentials.yaml with 0600 permissions.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"gemini", "openai"},
	RunE:      runConfigSetKey,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var initForce bool

func init() {
	configGetCmd.Flags().BoolVar(&showSource, "show-source", false, "show where the value comes from")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	val, ok := cfg.Get(key)
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	fmt.Println(val)

	if showSource {
		switch key {
		case "ai.gemini_key", "ai.openai_key":
			provider := strings.TrimSuffix(strings.TrimPrefix(key, "ai."), "_key")
			info := config.NewKeyringManager().KeySource(cfg, provider)
			fmt.Printf("Source: %s\n", info.Source)
			if info.Source == "config" {
				output.Warn(os.Stdout, "key stored in plaintext, run 'gitart config set-key %s'", provider)
			}
		default:
			fmt.Printf("Source: %s\n", configPath())
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.SetValue(path, args[0], args[1]); err != nil {
		return err
	}
	output.Success(os.Stdout, "%s = %s (%s)", args[0], args[1], path)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	provider := strings.ToLower(args[0])
	if _, err := config.ItemForProvider(provider); err != nil {
		return err
	}

	if !config.IsInteractive() {
		output.Info(os.Stderr, "reading %s API key from stdin", provider)
	}
	key, err := config.ReadSecret(fmt.Sprintf("%s API key: ", provider), os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	where, err := config.NewCredentialManager().StoreKey(provider, key)
	if err != nil {
		return err
	}
	output.Success(os.Stdout, "%s key %s saved to %s", provider, config.MaskAPIKey(strings.TrimSpace(key)), where)
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	values := cfg.Values()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, k := range config.Keys() {
		t.AppendRow(table.Row{k, values[k]})
	}
	t.Render()
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	output.Success(os.Stdout, "wrote %s", path)
	return nil
}
