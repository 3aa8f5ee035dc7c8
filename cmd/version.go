package cmd

import (
	"fmt"

	"github.com/rnwolfe/streakmap/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print streakmap version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(_ *cobra.Command, _ []string) error {
	info := version.Get()
	switch {
	case versionJSON:
		return printJSON(info)
	case versionShort:
		fmt.Println(info.Version)
	default:
		fmt.Printf("streakmap %s\n", info)
	}
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build info as JSON")
}
