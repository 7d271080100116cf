package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/zefix/cmd/zefix/commands"
	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "zefix",
	Short: "Swiss business registry (ZEFIX) CLI",
	Long: `A command-line interface for the ZEFIX public REST API.

Look up Swiss companies by name, UID, CH-ID or EHRA-ID, list legal forms and
registry offices, and read SOGC publications. UID helpers work offline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.zefix/config.yml)")
	rootCmd.PersistentFlags().String("base-url", "", "ZEFIX REST base URL (default is the production API)")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Duration("throttle", 0, "minimum interval between API requests, e.g. 500ms")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(commands.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag(commands.KeyOutput, rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag(commands.KeyThrottle, rootCmd.PersistentFlags().Lookup("throttle"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewUIDCommand())
	rootCmd.AddCommand(commands.NewCompanyCommand())
	rootCmd.AddCommand(commands.NewLegalFormsCommand())
	rootCmd.AddCommand(commands.NewRegistryOfficesCommand())
	rootCmd.AddCommand(commands.NewCommunitiesCommand())
	rootCmd.AddCommand(commands.NewSOGCCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.zefix/config.yml
		viper.AddConfigPath(filepath.Join(home, ".zefix"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// ZEFIX_USERNAME, ZEFIX_PASSWORD, ZEFIX_BASE_URL, ZEFIX_THROTTLE, ...
	viper.SetEnvPrefix("ZEFIX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
