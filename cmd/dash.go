package cmd

import (
	"fmt"

	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/rnwolfe/streakmap/internal/tui"
	"github.com/rnwolfe/streakmap/internal/ui"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive streak dashboard",
	Long: `Opens a TUI dashboard with your streaks and the last two weeks of activity.

Keyboard shortcuts:
  r          Recompute from the review log
  c          Toggle counting first learns only / every learn step
  q / Ctrl+C Quit`,
	Args: cobra.NoArgs,
	RunE: runDash,
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

func runDash(_ *cobra.Command, _ []string) error {
	if !ui.IsStdinTTY() || !ui.IsStdoutTTY() {
		return fmt.Errorf("dash needs an interactive terminal (try %s)", ui.Accent.Render("streakmap heatmap"))
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	settings, err := sess.settings(report.Overrides{})
	if err != nil {
		return err
	}
	return tui.RunDash(sess.compute, settings.Mode)
}
