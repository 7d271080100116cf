package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username   string
		password   string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store ZEFIX API credentials",
		Long:  "Prompt for the ZEFIX API username and password, check them against the API and save them to the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if username == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				username = readLine(reader)
			}

			if username == "" {
				return constants.ErrUsernameRequired
			}

			if password == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

				var err error

				password, err = readPassword(cmd.InOrStdin(), reader)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
			}

			if !skipVerify {
				viper.Set(KeyUsername, username)
				viper.Set(KeyPassword, password)

				zefixClient, err := CreateClient(cmd)
				if err != nil {
					return err
				}

				_, err = zefixClient.LegalForms().List(commandContext(cmd))
				if err != nil {
					return fmt.Errorf("failed to verify credentials: %w", err)
				}
			}

			config, err := loadFileConfig()
			if err != nil {
				return err
			}

			config.Username = username
			config.Password = password

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "API username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "API password (prompted when omitted)")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save the credentials without calling the API")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadFileConfig()
			if err != nil {
				return err
			}

			if config.Username == "" && config.Password == "" {
				return constants.ErrNoCredentials
			}

			config.Username = ""
			config.Password = ""

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

// readPassword reads without echo from a terminal and falls back to a plain
// line for piped input.
func readPassword(input io.Reader, reader *bufio.Reader) (string, error) {
	if file, ok := input.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		bytePassword, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", err
		}

		return string(bytePassword), nil
	}

	return readLine(reader), nil
}
