package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/internal/config"
	"github.com/derickschaefer/fredkit/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fredkit configuration",
	Long: `Read and write fredkit configuration stored in config.json or config.toml
in the current directory. When both exist, config.json wins.`,
}

// ─── config init ──────────────────────────────────────────────────────────────

var configInitTOML bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a template config file in the current directory",
	Example: `  fredkit config init
  fredkit config init --toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if configInitTOML {
			path = config.TOMLConfigFile
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (delete it first to re-initialise)", path)
		}
		if err := config.WriteFile(path, config.Template()); err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "✓ Created %s\n", path)
		fmt.Fprintln(w, "  Edit it and set your api_key to get started.")
		fmt.Fprintln(w, "  Get a free key at: https://fred.stlouisfed.org/docs/api/api_key.html")
		return nil
	},
}

// ─── config get ───────────────────────────────────────────────────────────────

var configGetShowSecrets bool

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		apiKey := cfg.RedactedAPIKey()
		if configGetShowSecrets {
			apiKey = cfg.APIKey
		}
		if apiKey == "" {
			apiKey = "(not set)"
		}
		src := cfg.ConfigPath
		if src == "" {
			src = "(not found)"
		}

		rows := [][2]string{
			{"api_key", apiKey},
			{"base_url", cfg.BaseURL},
			{"file_type", cfg.FileType},
			{"default_format", cfg.Format},
			{"timeout", cfg.Timeout.String()},
			{"retry_max", strconv.Itoa(cfg.RetryMax)},
			{"retry_wait", cfg.RetryWait.String()},
			{"rate", fmt.Sprintf("%g req/s", cfg.Rate)},
			{"concurrency", strconv.Itoa(cfg.Concurrency)},
			{"user_agent", cfg.UserAgent},
			{"log_format", cfg.LogFormat},
			{"log_level", cfg.LogLevel},
			{"db_path", cfg.DBPath},
			{"config_file", src},
		}

		w := cmd.OutOrStdout()
		if resolveFormat("") == render.FormatJSON {
			out := make(map[string]string, len(rows))
			for _, r := range rows {
				out[r[0]] = r[1]
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		printKVTable(w, rows)
		return nil
	},
}

// ─── config set ───────────────────────────────────────────────────────────────

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the config file",
	Example: `  fredkit config set api_key abcdef0123456789abcdef0123456789
  fredkit config set concurrency 4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])

		path, f, err := existingConfigFile()
		if err != nil {
			return err
		}
		if err := f.Set(key, args[1]); err != nil {
			return err
		}
		if err := config.WriteFile(path, f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s in %s\n", key, path)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys accepted by 'config set'",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, k := range config.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

// existingConfigFile reads config.json or config.toml from the current
// directory, or returns the template with the config.json path when
// neither exists.
func existingConfigFile() (string, config.File, error) {
	for _, path := range []string{config.DefaultConfigFile, config.TOMLConfigFile} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := config.ReadFile(path)
		if err != nil {
			return "", config.File{}, err
		}
		return path, *f, nil
	}
	return config.DefaultConfigFile, config.Template(), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configGetCmd, configSetCmd, configKeysCmd)

	configInitCmd.Flags().BoolVar(&configInitTOML, "toml", false, "write config.toml instead of config.json")
	configGetCmd.Flags().BoolVar(&configGetShowSecrets, "show-secrets", false, "show API key in plain text")
}
