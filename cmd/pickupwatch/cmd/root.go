package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pickupwatch/pkg/config"
)

var (
	configPath string
	envFiles   []string
	targetURL  string
	postalCode string
	headless   bool
	dryRun     bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "pickupwatch",
	Short:         "pickupwatch checks Apple Store pickup availability for one postal code and sends the result to Telegram and Discord.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (yaml or json), default ./pickupwatch.yaml")
	pf.StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	f := rootCmd.Flags()
	f.StringVar(&targetURL, "url", "", "product page URL")
	f.StringVar(&postalCode, "postal-code", "", "postal code to search")
	f.BoolVar(&headless, "headless", false, "run the browser without a window")
	f.BoolVar(&dryRun, "dry-run", false, "print the report without sending notifications")
	f.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	runCmd.Flags().AddFlagSet(f)
	rootCmd.AddCommand(runCmd, configCmd)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the run configuration: file, then .env, then environment, then flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Target.URL = targetURL
	}
	if flags.Changed("postal-code") {
		cfg.Target.PostalCode = postalCode
	}
	if flags.Changed("headless") {
		cfg.Browser.Headless = headless
	}
	if flags.Changed("dry-run") {
		cfg.App.DryRun = dryRun
	}
	if flags.Changed("log-level") {
		cfg.App.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
