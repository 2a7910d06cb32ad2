package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/cleanse"
)

var (
	watchBaseDir string
	watchOutDir  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the export directory and clean files as they arrive",
	Long: `Watches the base directory for timing-system drops. When a file named in
the manifest appears or changes, its cleaning pipeline runs immediately.
Unknown files are ignored. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cleanse.RunOptions{}
		conf := effectiveConfig()
		opts.BaseDir = conf.BaseDir
		opts.OutDir = conf.OutputDir
		opts.ChunkSize = conf.ChunkSize
		opts.Decimation = conf.Decimation
		if watchBaseDir != "" {
			opts.BaseDir = watchBaseDir
		}
		if watchOutDir != "" {
			opts.OutDir = watchOutDir
		}

		// Manifest inputs keyed by base name for event matching.
		manifest := cleanse.DefaultManifest()
		byName := make(map[string]cleanse.Entry, len(manifest))
		for _, e := range manifest {
			byName[filepath.Base(e.Input)] = e
		}

		w, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer w.Close()
		if err := w.Add(opts.BaseDir); err != nil {
			return fmt.Errorf("watch %s: %w", opts.BaseDir, err)
		}
		fmt.Printf("Watching %s for exports; press Ctrl-C to stop\n", opts.BaseDir)

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
					continue
				}
				entry, known := byName[filepath.Base(ev.Name)]
				if !known {
					continue
				}
				rep := cleanse.Run([]cleanse.Entry{entry}, opts)
				if debug {
					fmt.Fprintf(os.Stderr, "run %s: %d files, %d rows\n", rep.ID, rep.Files, rep.Rows)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "⚠ Watch error: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchBaseDir, "base-dir", "", "directory to watch (overrides config)")
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "directory for cleaned output (overrides config)")
}
