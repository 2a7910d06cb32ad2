package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/stats"
	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/utils"
)

var (
	repLapsFile string
	repOutDir   string
	repQuiet    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build per-vehicle performance summaries from cleaned lap times",
	Long: `Reads a cleaned lap-times file (comma-separated, value column in integer
milliseconds per the cleaning output contract) and writes two summary CSVs:
per-vehicle performance (average/best/worst lap, consistency, rank, gap to
fastest) and a field-wide race summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := effectiveConfig()
		lapsPath := repLapsFile
		if lapsPath == "" {
			lapsPath = filepath.Join(conf.OutputDir, "lap_times.csv")
		}
		outDir := repOutDir
		if outDir == "" {
			outDir = conf.OutputDir
		}

		recs, err := stats.LoadLapTimes(lapsPath)
		if err != nil {
			return fmt.Errorf("load lap times: %w", err)
		}
		if len(recs) == 0 {
			return fmt.Errorf("no valid laps in %s", lapsPath)
		}

		perf := stats.Summarize(recs)
		field := stats.FieldSummary(recs)

		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("ensure output dir: %w", err)
		}
		perfPath := filepath.Join(outDir, "bi_vehicle_performance.csv")
		if err := stats.WritePerformanceCSV(perfPath, perf); err != nil {
			return fmt.Errorf("write performance csv: %w", err)
		}
		sumPath := filepath.Join(outDir, "bi_race_summary.csv")
		if err := stats.WriteSummaryCSV(sumPath, field); err != nil {
			return fmt.Errorf("write summary csv: %w", err)
		}

		fmt.Printf("✓ Wrote %s (%d vehicles)\n", perfPath, len(perf))
		fmt.Printf("✓ Wrote %s\n", sumPath)
		if !repQuiet {
			fmt.Printf("\nField: %d vehicles, %d laps, fastest %.3fs, mean %.3fs\n",
				field.Vehicles, field.TotalLaps, field.FastestSec, field.MeanSec)
			for _, p := range perf {
				fmt.Printf("  P%-2d %-14s avg %.3fs (+%.3fs)  best %.3fs  laps %-3d %s\n",
					p.Rank, p.VehicleID, p.AvgSec, p.GapToFastest, p.BestSec, p.Laps,
					stats.PaceLabel(p.AvgSec))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&repLapsFile, "laps", "", "cleaned lap-times CSV (default <output_dir>/lap_times.csv)")
	reportCmd.Flags().StringVar(&repOutDir, "out-dir", "", "directory for summary CSVs (default output_dir)")
	reportCmd.Flags().BoolVar(&repQuiet, "quiet", false, "suppress the per-vehicle listing")
}
