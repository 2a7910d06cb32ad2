package cmd

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/cleanse"
)

var (
	cleanBaseDir    string
	cleanOutDir     string
	cleanChunkSize  int
	cleanDecimation int
	cleanQuiet      bool
	cleanSchedule   string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the race weekend CSV exports into uniform comma-separated files",
	Long: `Runs the built-in file manifest: each known export is normalized per its
file type (numeric/timestamp coercion, sentinel filtering, dedup, sort) and
written to the output directory. Files are processed strictly in sequence and
failures are per-file: a missing or malformed export is reported and skipped,
never aborting the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cleanRunOptions(cmd)

		run := func() {
			if !opts.Quiet {
				fmt.Println("Starting dataset cleaning process...")
				fmt.Println(strings.Repeat("=", 50))
			}
			rep := cleanse.Run(cleanse.DefaultManifest(), opts)
			if !opts.Quiet {
				fmt.Println(strings.Repeat("=", 50))
			}
			fmt.Println("Cleaning complete!")
			fmt.Printf("Total files processed: %d\n", rep.Files)
			fmt.Printf("Total rows in cleaned datasets: %d\n", rep.Rows)
			fmt.Printf("Cleaned files saved to: %s\n", opts.OutDir)
		}

		if cleanSchedule == "" {
			run()
			return nil
		}

		c := cron.New()
		if _, err := c.AddFunc(cleanSchedule, run); err != nil {
			return fmt.Errorf("invalid --schedule %q: %w", cleanSchedule, err)
		}
		fmt.Printf("Scheduled cleaning run (%s); press Ctrl-C to stop\n", cleanSchedule)
		c.Run()
		return nil
	},
}

// cleanRunOptions merges config defaults with any flags set on this run.
func cleanRunOptions(cmd *cobra.Command) cleanse.RunOptions {
	conf := effectiveConfig()
	opts := cleanse.RunOptions{
		BaseDir:    conf.BaseDir,
		OutDir:     conf.OutputDir,
		ChunkSize:  conf.ChunkSize,
		Decimation: conf.Decimation,
		Quiet:      conf.Quiet,
	}
	f := cmd.Flags()
	if f.Changed("base-dir") {
		opts.BaseDir = cleanBaseDir
	}
	if f.Changed("out-dir") {
		opts.OutDir = cleanOutDir
	}
	if f.Changed("chunk-size") && cleanChunkSize > 0 {
		opts.ChunkSize = cleanChunkSize
	}
	if f.Changed("decimation") && cleanDecimation > 0 {
		opts.Decimation = cleanDecimation
	}
	if f.Changed("quiet") {
		opts.Quiet = cleanQuiet
	}
	return opts
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&cleanBaseDir, "base-dir", "", "directory holding the raw exports (overrides config)")
	cleanCmd.Flags().StringVar(&cleanOutDir, "out-dir", "", "directory for cleaned output (overrides config)")
	cleanCmd.Flags().IntVar(&cleanChunkSize, "chunk-size", 10000, "sampler batch size for the telemetry export")
	cleanCmd.Flags().IntVar(&cleanDecimation, "decimation", 10, "keep 1 row in N per sampler batch")
	cleanCmd.Flags().BoolVar(&cleanQuiet, "quiet", false, "suppress per-file progress output")
	cleanCmd.Flags().StringVar(&cleanSchedule, "schedule", "", "cron expression to re-run the manifest on a schedule")
}
