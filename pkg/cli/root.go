package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooklinehq/hookline/pkg/config"
	"github.com/hooklinehq/hookline/pkg/database"
	"github.com/hooklinehq/hookline/pkg/logging"
)

var (
	configPath   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:           "hookline",
	Short:         "Webhook delivery and credential testing service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(webhooksCmd)
	rootCmd.AddCommand(deliveriesCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(tokenCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the runtime configuration and logger shared by all
// commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logging.Setup(cfg.Log); err != nil {
		return nil, err
	}

	return cfg, nil
}

// connectDatabase is used by read-side commands that talk to storage
// directly instead of going through the API.
func connectDatabase(cfg *config.Config) error {
	_, err := database.Connect(cfg.Database)
	return err
}

func renderer() (Renderer, error) {
	return NewRenderer(outputFormat, os.Stdout)
}
