package cmd

import (
	"fmt"
	"os"

	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/rnwolfe/streakmap/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "streakmap",
	Short: "Learning streaks and daily activity from your Anki review log",
	Long: `streakmap reads the review log of an Anki collection (or its own event log)
and reports how many new cards you learned each day and how long your
learning streak is. Days start at the collection's rollover hour.`,
	RunE: runSummary,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if !ui.ColorWanted(flagNoColor) {
			ui.DisableColor()
		}
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCollection, "collection", "", "Anki collection.anki2 to read (overrides collection.path)")
	pf.Var(&flagRollover, "rollover", "Hour past local midnight a new day starts at (0-23)")
	pf.StringVar(&flagTimezone, "tz", "", "IANA timezone that defines calendar days (overrides day.timezone)")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// runSummary shows the at-a-glance status when you just type `streakmap`.
func runSummary(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := sess.compute(report.Overrides{})
	if err != nil {
		return err
	}

	fmt.Println(ui.Title.Render(ui.IconMap + "streakmap"))
	fmt.Println()
	printSummary(res)

	switch {
	case res.Total == 0 && sess.col == nil:
		ui.Tip("`streakmap log <card>` to record a card, or `streakmap config set collection.path <collection.anki2>`.")
	case res.Total == 0:
		ui.Tip("No new cards in this collection yet. Learn one in Anki and check back.")
	case res.CurrentStreak == 0:
		ui.Tip("Learn a card today to start a new streak.")
	default:
		ui.Tip("`streakmap dash` for a live view.")
	}
	fmt.Println()
	return nil
}

func printSummary(res *activity.Result) {
	streak := ui.Days(res.CurrentStreak)
	if res.CurrentStreak > 0 {
		streak = ui.Accent.Render(ui.IconFire+" ") + streak
	}
	ui.Kv("Current", streak)
	ui.Kv("Longest", ui.Days(res.LongestStreak))
	ui.Kv("Learned", fmt.Sprintf("%d cards", res.Total))
	today := res.Today
	if d, err := activity.ParseDay(res.Today); err == nil {
		today = fmt.Sprintf("%s (%s)", res.Today, d.Time().Format("Monday"))
	}
	ui.Kv("Today", today)

	recent := report.Recent(res, 7)
	peak := 0
	for _, d := range recent {
		peak = max(peak, d.Value)
	}
	barW := min(ui.Width(80)-20, 40)
	fmt.Println()
	fmt.Println(ui.Subtitle.Render("  Last 7 days"))
	for _, d := range recent {
		fmt.Printf("  %s %4d %s\n", ui.Muted.Render(d.Date), d.Value, ui.Success.Render(ui.Bar(d.Value, peak, barW)))
	}
}
