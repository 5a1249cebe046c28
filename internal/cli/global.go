package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/wire"
)

// AddGlobalFlags registers the flags shared by every command and hands them
// to wire before any command runs.
func AddGlobalFlags(root *cobra.Command) {
	var s wire.Settings
	f := root.PersistentFlags()
	f.StringVar(&s.ConfigPath, "config", "", "config file (default ~/.xdplay/config.json)")
	f.StringVar(&s.DBPath, "db", "", "completion history database (default ~/.xdplay/history.db)")
	f.StringVar(&s.User, "user", "", "player name (default $XDPLAY_USER, then $USER)")
	f.StringVar(&s.TeamDir, "team-dir", "", "shared journal directory (default $TEAMDIR, then .)")
	f.BoolVarP(&s.Verbose, "verbose", "v", false, "log debug messages")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		wire.Configure(s)
	}
}
