package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
	"github.com/fivetwenty-io/kinto-client/pkg/kintoclient"
)

// fileConfig is the persisted CLI configuration in ~/.kinto/config.yml.
type fileConfig struct {
	Server   string `yaml:"server"`
	Token    string `yaml:"token,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		serverURL string
		username  string
		password  string
		token     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a Kinto server",
		Long:  "Verify credentials against a Kinto server and save them to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				serverURL = viper.GetString("server")
			}

			if serverURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Server URL: ")
				serverURL, _ = reader.ReadString('\n')
				serverURL = strings.TrimSpace(serverURL)
			}

			if serverURL == "" {
				return ErrServerRequired
			}

			config := &kinto.Config{ServerURL: serverURL}

			if token != "" {
				config.AccessToken = token
			} else {
				if username == "" {
					reader := bufio.NewReader(os.Stdin)
					fmt.Print("Username: ")
					username, _ = reader.ReadString('\n')
					username = strings.TrimSpace(username)
				}

				if password == "" {
					fmt.Print("Password: ")

					bytePassword, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}

					password = string(bytePassword)

					fmt.Println()
				}

				config.Username = username
				config.Password = password
			}

			ctx := context.Background()

			client, err := kintoclient.New(ctx, config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			info, err := client.ServerInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to server: %w", err)
			}

			err = saveConfig(&fileConfig{
				Server:   serverURL,
				Token:    token,
				Username: username,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Logged in to %s (%s %s)\n", serverURL, info.ProjectName, info.ProjectVersion)

			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Kinto server URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for Basic authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for Basic authentication")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (skips the username/password prompt)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the Kinto server",
		Long:  "Clear saved credentials, keeping the server URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := saveConfig(&fileConfig{Server: viper.GetString("server")})
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}

// saveConfig writes the CLI configuration to ~/.kinto/config.yml, or the
// file viper is currently using.
func saveConfig(config *fileConfig) error {
	path := viper.ConfigFileUsed()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}

		dir := filepath.Join(home, ".kinto")

		err = os.MkdirAll(dir, 0750)
		if err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		path = filepath.Join(dir, "config.yml")
	}

	content, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, content, 0600)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
