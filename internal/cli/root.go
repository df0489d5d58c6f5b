// Package cli holds the labdashd cobra commands.
package cli

import (
	"github.com/spf13/cobra"

	"lab_dashboard/internal/config"
	"lab_dashboard/internal/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "labdashd",
	Short: "Computer lab inventory dashboard server",
	Long: `labdashd serves lab overviews, per-lab computer lists and live view
updates over HTTP and WebSocket. Inventory comes from a simulated source.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default configs/config.yml)")
	rootCmd.AddCommand(serveCmd, createUserCmd)
}

// loadConfig reads configuration and returns it with the process logger.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.Get(cfg.LogLevel), nil
}
