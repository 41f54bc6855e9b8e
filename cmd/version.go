package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(out, version)
			return
		}

		fmt.Fprintf(out, "edumentor %s (%s/%s, %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		if latest := latestVersion(cmd.Context()); latest != "" {
			fmt.Fprintf(out, "%s is available, run `edumentor update` to install it\n", latest)
		}
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
}
