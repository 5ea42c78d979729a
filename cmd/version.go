package cmd

import (
	"fmt"

	"github.com/abhisek/counterline/internal/scenario"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "counterline", displayVersion(version))
		fmt.Fprintln(cmd.OutOrStdout(), "day file format", scenario.SupportedFormat)
	},
}

// displayVersion canonicalizes release versions ("1.2" → "v1.2.0") and
// passes anything else through.
func displayVersion(v string) string {
	if !semver.IsValid(v) && semver.IsValid("v"+v) {
		v = "v" + v
	}
	if semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return v
}
