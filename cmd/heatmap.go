package cmd

import (
	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/spf13/cobra"
)

var (
	heatmapFill bool
	heatmapAll  bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Print per-day learning counts and streaks as JSON",
	Long: `Prints the heatmap product as JSON:

  {"heatmap_data":[{"date":"2026-03-01","value":4}],"longest_streak":3,"current_streak":1,...}

Only days with activity are listed unless --fill (or heatmap.fill) is set.`,
	Args: cobra.NoArgs,
	RunE: runHeatmap,
}

func init() {
	heatmapCmd.Flags().BoolVar(&heatmapFill, "fill", false, "Include zero-valued days up to today")
	heatmapCmd.Flags().BoolVar(&heatmapAll, "all", false, "Count every learn event, not just each card's first")
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	var o report.Overrides
	if cmd != nil && cmd.Flags().Changed("fill") {
		o.Fill = &heatmapFill
	}
	if heatmapAll {
		mode := activity.CountAll
		o.Mode = &mode
	}

	res, err := sess.compute(o)
	if err != nil {
		return err
	}
	return printJSON(res)
}
