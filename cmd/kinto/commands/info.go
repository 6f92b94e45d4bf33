package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display server information",
		Long:  "Display information about the Kinto server root endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			info, err := client.ServerInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to get server info: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(info)
			case OutputFormatYAML:
				return renderYAML(info)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Project", info.ProjectName)
				_ = table.Append("Version", info.ProjectVersion)
				_ = table.Append("HTTP API", info.HTTPAPIVersion)
				_ = table.Append("URL", info.URL)
				_ = table.Append("Docs", info.ProjectDocs)

				if len(info.Capabilities) > 0 {
					names := make([]string, 0, len(info.Capabilities))
					for name := range info.Capabilities {
						names = append(names, name)
					}

					sort.Strings(names)
					_ = table.Append("Capabilities", strings.Join(names, "\n"))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
