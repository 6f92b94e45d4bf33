package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"version":    version,
				"commit":     commit,
				"built":      date,
				"go_version": runtime.Version(),
				"platform":   runtime.GOOS + "/" + runtime.GOARCH,
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(info)
			case OutputFormatYAML:
				return renderYAML(info)
			default:
				fmt.Printf("kinto %s (commit %s, built %s, %s, %s/%s)\n",
					version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}

			return nil
		},
	}
}
