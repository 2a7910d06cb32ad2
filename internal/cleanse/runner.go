package cleanse

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/table"
	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/utils"
)

// RunOptions configures a manifest run.
type RunOptions struct {
	// BaseDir is prepended to manifest input paths.
	BaseDir string
	// OutDir is prepended to manifest output paths and created if missing.
	OutDir string
	// ChunkSize and Decimation shape the sampler for chunked entries.
	ChunkSize  int
	Decimation int
	// Quiet suppresses per-file progress lines.
	Quiet bool
	// Out receives progress output; defaults to os.Stdout.
	Out io.Writer
}

// FileResult records the outcome for one manifest entry.
type FileResult struct {
	Input  string
	Output string
	Rows   int
	// Missing is set when the input file did not exist.
	Missing bool
	Err     error
}

// Report summarizes a manifest run. Files counts successfully processed
// inputs; Rows sums their written row counts.
type Report struct {
	ID      string
	Started time.Time
	Files   int
	Rows    int
	Results []FileResult
}

// CleanFile runs one entry end to end and returns the number of rows written.
func CleanFile(inputPath, outputPath string, d Descriptor, chunkSize, decimation int) (int, error) {
	var t *table.Table
	var err error
	if d.Chunked {
		t, err = SampleFile(inputPath, d.Delimiter, chunkSize, decimation)
	} else {
		t, err = table.ReadFile(inputPath, d.Delimiter)
		if err == nil {
			Clean(t, d)
		}
	}
	if err != nil {
		return 0, err
	}
	if err := t.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return t.Len(), nil
}

// Run processes every manifest entry in order, strictly sequentially.
// Failures are per-file: a missing input or a pipeline error is reported on
// that entry and the run moves on. There is no condition that aborts the
// whole run.
func Run(manifest []Entry, opts RunOptions) *Report {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	rep := &Report{ID: uuid.NewString(), Started: time.Now()}
	if err := utils.EnsureDir(opts.OutDir); err != nil {
		// Every entry will fail to write; still walk the manifest so the
		// report covers all files.
		fmt.Fprintf(out, "✗ Cannot create output dir %s: %v\n", opts.OutDir, err)
	}
	for _, e := range manifest {
		inPath := filepath.Join(opts.BaseDir, e.Input)
		outPath := filepath.Join(opts.OutDir, e.Output)
		res := FileResult{Input: e.Input, Output: e.Output}

		if _, err := os.Stat(inPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				res.Missing = true
				if !opts.Quiet {
					fmt.Fprintf(out, "✗ File not found: %s\n", e.Input)
				}
			} else {
				res.Err = err
				if !opts.Quiet {
					fmt.Fprintf(out, "✗ Error cleaning %s: %v\n", e.Input, err)
				}
			}
			rep.Results = append(rep.Results, res)
			continue
		}

		rows, err := CleanFile(inPath, outPath, e.Desc, opts.ChunkSize, opts.Decimation)
		if err != nil {
			res.Err = err
			if !opts.Quiet {
				fmt.Fprintf(out, "✗ Error cleaning %s: %v\n", e.Input, err)
			}
			rep.Results = append(rep.Results, res)
			continue
		}
		res.Rows = rows
		rep.Results = append(rep.Results, res)
		rep.Files++
		rep.Rows += rows
		if !opts.Quiet {
			fmt.Fprintf(out, "✓ Cleaned %s -> %s (%d rows)\n", e.Input, e.Output, rows)
		}
	}
	return rep
}
