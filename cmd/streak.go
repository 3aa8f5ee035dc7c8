package cmd

import (
	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/rnwolfe/streakmap/internal/ui"
	"github.com/spf13/cobra"
)

var streakJSON bool

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and longest learning streak",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func init() {
	streakCmd.Flags().BoolVar(&streakJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(streakCmd)
}

func runStreak(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := sess.compute(report.Overrides{})
	if err != nil {
		return err
	}

	if streakJSON {
		return printJSON(map[string]any{
			"current_streak": res.CurrentStreak,
			"longest_streak": res.LongestStreak,
			"today":          res.Today,
		})
	}

	if res.CurrentStreak > 0 {
		ui.Putsf("  %s %s", ui.IconFire, ui.Accent.Render(ui.Days(res.CurrentStreak)))
	} else {
		ui.Putsf("  %s %s", ui.IconSnow, ui.Muted.Render("no current streak"))
	}
	ui.Kv("Longest", ui.Days(res.LongestStreak))
	return nil
}
