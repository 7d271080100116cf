package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fivetwenty-io/zefix/internal/constants"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration keys shared by the config file, flags and ZEFIX_* variables.
const (
	KeyBaseURL  = "base_url"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyThrottle = "throttle"
	KeyOutput   = "output"
)

// Config represents the persisted CLI configuration.
type Config struct {
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Throttle string `json:"throttle,omitempty" yaml:"throttle,omitempty"`
	Output   string `json:"output,omitempty"   yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the ZEFIX CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration, merged from file, environment and flags. The password is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := effectiveConfig()
			if config.Password != "" {
				config.Password = constants.MaskedSecret
			}

			return render(cmd.OutOrStdout(), config, func() *table {
				t := &table{header: []string{"Property", "Value"}}
				t.add("Base URL", orNA(config.BaseURL))
				t.add("Username", orNA(config.Username))
				t.add("Password", orNA(config.Password))
				t.add("Throttle", orNA(config.Throttle))
				t.add("Output", orNA(config.Output))
				t.add("Config File", orNA(configFilePath()))

				return t
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: "Set a configuration value. Keys: base_url, username, password, throttle, output. " +
			"Flags must come before KEY; everything after it is taken as the value, so negative " +
			"durations and passwords starting with '-' need no quoting.",
		Example: "  zefix config set throttle 500ms\n  zefix config set password -secret-",
		Args:    cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := strings.ToLower(args[0]), args[1]

			config, err := loadFileConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}

	// VALUE may start with '-'.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])

			config, err := loadFileConfig()
			if err != nil {
				return err
			}

			field, err := configField(config, key)
			if err != nil {
				return err
			}

			*field = ""

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

func configField(config *Config, key string) (*string, error) {
	switch key {
	case KeyBaseURL:
		return &config.BaseURL, nil
	case KeyUsername:
		return &config.Username, nil
	case KeyPassword:
		return &config.Password, nil
	case KeyThrottle:
		return &config.Throttle, nil
	case KeyOutput:
		return &config.Output, nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}
}

func setConfigValue(config *Config, key, value string) error {
	field, err := configField(config, key)
	if err != nil {
		return err
	}

	switch key {
	case KeyBaseURL:
		err = validation.Validate(value, validation.Required, is.URL)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case KeyThrottle:
		_, err = parseThrottle(value)
		if err != nil {
			return err
		}
	case KeyOutput:
		value = strings.ToLower(value)
		if value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
			return fmt.Errorf("%w: %q", constants.ErrUnsupportedOutput, value)
		}
	}

	*field = value

	return nil
}

func parseThrottle(value string) (time.Duration, error) {
	interval, err := time.ParseDuration(value)
	if err != nil || interval < 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidThrottle, value)
	}

	return interval, nil
}

// effectiveConfig reads the merged settings from viper.
func effectiveConfig() *Config {
	config := &Config{
		BaseURL:  viper.GetString(KeyBaseURL),
		Username: viper.GetString(KeyUsername),
		Password: viper.GetString(KeyPassword),
		Output:   viper.GetString(KeyOutput),
	}

	if interval := viper.GetDuration(KeyThrottle); interval > 0 {
		config.Throttle = interval.String()
	}

	return config
}

// configFilePath returns the file that set, unset and login write to.
func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	if configFile := viper.GetString("config"); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".zefix", "config.yml")
}

// loadFileConfig reads only the configuration file, so values coming from
// flags or the environment are never written back.
func loadFileConfig() (*Config, error) {
	config := &Config{}

	configFile := configFilePath()
	if configFile == "" {
		return config, nil
	}

	// configFile comes from the user's own flag or home directory
	// #nosec G304
	file, err := os.Open(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	defer func() { _ = file.Close() }()

	err = yaml.NewDecoder(file).Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile := configFilePath()
	if configFile == "" {
		return fmt.Errorf("failed to get user home directory: %w", os.ErrNotExist)
	}

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Reload so later reads in this process see the new values.
	viper.SetConfigFile(configFile)
	_ = viper.ReadInConfig()

	return nil
}
