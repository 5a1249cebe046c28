package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

// VersionCmd returns the version command
func VersionCmd() *cobra.Command {
	return versionCmd
}
