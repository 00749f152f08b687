package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthlog/internal/services"
)

const statsDateLayout = "2006-01-02"

func newStatsCommand(options *rootOptions) *cobra.Command {
	var (
		dateRange rangeFlags
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics and advice for a range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				resolved, err := dateRange.resolve(rt)
				if err != nil {
					return err
				}

				overview, err := rt.stats.Overview(cmd.Context(), resolved)
				if err != nil {
					return err
				}

				if asJSON {
					encoded, err := json.MarshalIndent(overview, "", "  ")
					if err != nil {
						return fmt.Errorf("marshal stats json: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
					return nil
				}
				printStats(cmd.OutOrStdout(), overview, rt)
				return nil
			})
		},
	}
	dateRange.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the statistics as JSON")
	return cmd
}

func printStats(out io.Writer, overview services.StatsOverview, rt *runtime) {
	stats := overview.Stats
	advisory := overview.Advisory
	location := rt.cfg.Location

	fmt.Fprintf(out, "%s: %s to %s (%d days)\n",
		services.PeriodLabel(stats.Period),
		stats.StartDate.In(location).Format(statsDateLayout),
		stats.EndDate.In(location).Format(statsDateLayout),
		stats.DaySpan)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Diet      %d records, %.0f kcal total, %.1f kcal/day (protein %.1f g, carbs %.1f g, fat %.1f g)\n",
		stats.Diet.RecordCount, stats.Diet.TotalCalories, stats.Diet.AvgCaloriesPerDay,
		stats.Diet.TotalProtein, stats.Diet.TotalCarbs, stats.Diet.TotalFat)
	fmt.Fprintf(out, "Exercise  %d records, %d min total, %.1f min/day, %.1f kcal burned/day\n",
		stats.Exercise.RecordCount, stats.Exercise.TotalDurationMinutes,
		stats.Exercise.AvgDurationPerDay, stats.Exercise.AvgCaloriesPerDay)
	fmt.Fprintf(out, "Sleep     %d records, %.1f h average, quality %.1f/5 (%s), %.1f wake-ups per night\n",
		stats.Sleep.RecordCount, stats.Sleep.AvgDurationHours, stats.Sleep.AvgQualityScore,
		advisory.SleepQuality, stats.Sleep.AvgWakeUpCount)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Sleep:    %s. %s\n", advisory.Sleep.Label, advisory.Sleep.Message)
	fmt.Fprintf(out, "Exercise: %s. %s\n", advisory.Exercise.Label, advisory.Exercise.Message)
	fmt.Fprintf(out, "Diet:     %s. %s\n", advisory.Diet.Label, advisory.Diet.Message)

	if last, ok, err := rt.settings.LastExport(); err == nil && ok {
		fmt.Fprintf(out, "\nLast export: %s\n", last.In(location).Format("2006-01-02 15:04"))
	}
}
