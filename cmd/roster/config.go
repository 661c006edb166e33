package main

import (
	"fmt"
	"strings"

	"github.com/matsen/roster/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show configuration after applying the config file, .env, and ROSTER_*
environment variables.

The config file lives at $XDG_CONFIG_HOME/roster/config.yml (override with ROSTER_CONFIG).`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path string `json:"path"`
	*config.Config
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if humanOutput {
		fmt.Printf("Config file: %s\n", config.Path())
		fmt.Printf("log_level:   %s\n", cfg.LogLevel)
		fmt.Printf("prompt:      %q\n", cfg.Prompt)
		fmt.Printf("index_db:    %s\n", cfg.IndexDB)
		if len(cfg.Autoload) > 0 {
			fmt.Printf("autoload:    %s\n", strings.Join(cfg.Autoload, ", "))
		} else {
			fmt.Println("autoload:    (none)")
		}
		return nil
	}
	return outputJSON(ConfigResponse{Path: config.Path(), Config: cfg})
}
