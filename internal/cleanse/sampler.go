package cleanse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/table"
)

// Default batch shape for the oversized telemetry export.
const (
	DefaultChunkSize  = 10000
	DefaultDecimation = 10
)

// SampleFile reduces an oversized export by reading fixed-size row batches,
// then within each batch dropping empty columns, deduplicating, and keeping
// every decimation-th row by position. Batches are concatenated in order and
// deduplicated once more globally.
//
// Peak memory is bounded by the batch size plus the (already decimated)
// survivors. The selection is positional decimation: batch boundaries bias
// which absolute rows survive, so the result is NOT a uniform random sample
// and downstream consumers must not treat it as one.
func SampleFile(path string, delim rune, chunkSize, decimation int) (*table.Table, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if decimation <= 0 {
		decimation = DefaultDecimation
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	out := table.New(header)
	chunk := table.New(header)
	rows := 0
	flush := func() {
		if chunk.Len() == 0 {
			return
		}
		chunk.DropEmptyColumns()
		chunk.DropDuplicates()
		chunk.Decimate(decimation)
		out.Append(chunk)
		chunk = table.New(header)
	}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		rows++
		chunk.AppendRow(rec)
		if chunk.Len() >= chunkSize {
			flush()
		}
	}
	flush()

	out.DropEmptyColumns()
	out.DropDuplicates()
	return out, nil
}
