// Package cleanse implements the race-export cleaning pipeline: per-file-type
// column coercion, sentinel filtering, deduplication, chunked decimation for
// the oversized telemetry export, and the manifest driver that runs the whole
// set best-effort.
package cleanse

import "github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/table"

// ValueKind selects how the dual-meaning "value" column of lap exports is
// interpreted. The timing system reuses one column name for both durations and
// absolute timestamps; which one applies is a property of the file, never
// inferred from the data.
type ValueKind int

const (
	// ValueNone means the file has no special value column.
	ValueNone ValueKind = iota
	// ValueMillis treats value as an integer millisecond duration.
	ValueMillis
	// ValueTimestamp treats value as an absolute timestamp.
	ValueTimestamp
)

// Sentinel rejects rows whose cell in Column is not a number strictly below
// Max. Corrupt encoder values (a lap counter reading 32768 on a sub-100-lap
// race) fail the bound; so do null cells, since a null cannot be shown to be
// within it.
type Sentinel struct {
	Column string
	Max    float64
}

// Descriptor is the static per-file-type configuration: delimiter, column
// semantics, filters, and sort keys. Descriptors are plain values passed into
// the driver, so tests can run the pipeline with synthetic ones.
type Descriptor struct {
	Name      string
	Delimiter rune
	IntCols   []string
	FloatCols []string
	TimeCols  []string
	Value     ValueKind
	Sentinel  *Sentinel
	SortKeys  []table.SortKey
	// Chunked routes the file through the batch sampler instead of a
	// single-pass clean. Used for the telemetry export only.
	Chunked bool
}

// Entry maps one input file to its output name and descriptor.
type Entry struct {
	Input  string
	Output string
	Desc   Descriptor
}

// RaceResults describes the semicolon-delimited timing-system result exports.
func RaceResults(name string) Descriptor {
	return Descriptor{
		Name:      name,
		Delimiter: ';',
		IntCols:   []string{"POSITION", "LAPS", "FL_LAPNUM"},
		FloatCols: []string{"FL_KPH"},
		SortKeys:  []table.SortKey{{Column: "POSITION", Numeric: true}},
	}
}

// Weather describes the semicolon-delimited trackside weather export.
func Weather() Descriptor {
	return Descriptor{
		Name:      "weather",
		Delimiter: ';',
		FloatCols: []string{
			"TIME_UTC_SECONDS", "AIR_TEMP", "TRACK_TEMP", "HUMIDITY",
			"PRESSURE", "WIND_SPEED", "WIND_DIRECTION", "RAIN",
		},
		SortKeys: []table.SortKey{{Column: "TIME_UTC_SECONDS", Numeric: true}},
	}
}

// maxPlausibleLap bounds the lap counter; the encoder emits 32768 when it
// glitches and no race here runs anywhere near 100 laps.
const maxPlausibleLap = 100

// LapData describes the comma-delimited per-lap timing exports. kind selects
// the meaning of the value column: milliseconds for the lap_time file,
// absolute timestamps for the lap start/end files.
func LapData(name string, kind ValueKind) Descriptor {
	return Descriptor{
		Name:      name,
		Delimiter: ',',
		IntCols:   []string{"outing", "lap"},
		TimeCols:  []string{"meta_time", "timestamp", "expire_at"},
		Value:     kind,
		Sentinel:  &Sentinel{Column: "lap", Max: maxPlausibleLap},
		SortKeys: []table.SortKey{
			{Column: "vehicle_id"},
			{Column: "lap", Numeric: true},
		},
	}
}

// Telemetry describes the oversized telemetry export, which is only
// deduplicated and decimated in batches, never column-coerced.
func Telemetry() Descriptor {
	return Descriptor{
		Name:      "telemetry",
		Delimiter: ',',
		Chunked:   true,
	}
}

// DefaultManifest returns the static file list for a Race 1 data drop.
// Inputs are relative to the base directory, outputs to the output directory.
func DefaultManifest() []Entry {
	return []Entry{
		{"00_Results GR Cup Race 1 Official_Anonymized.CSV", "race_results_official.csv", RaceResults("race_results_official")},
		{"03_Provisional Results_Race 1_Anonymized.CSV", "race_results_provisional.csv", RaceResults("race_results_provisional")},
		{"05_Provisional Results by Class_Race 1_Anonymized.CSV", "race_results_by_class.csv", RaceResults("race_results_by_class")},
		{"23_AnalysisEnduranceWithSections_Race 1_Anonymized.CSV", "endurance_analysis.csv", RaceResults("endurance_analysis")},
		{"26_Weather_Race 1_Anonymized.CSV", "weather_data.csv", Weather()},
		{"99_Best 10 Laps By Driver_Race 1_Anonymized.CSV", "best_laps_by_driver.csv", RaceResults("best_laps_by_driver")},
		{"COTA_lap_end_time_R1.csv", "lap_end_times.csv", LapData("lap_end_times", ValueTimestamp)},
		{"COTA_lap_start_time_R1.csv", "lap_start_times.csv", LapData("lap_start_times", ValueTimestamp)},
		{"COTA_lap_time_R1.csv", "lap_times.csv", LapData("lap_times", ValueMillis)},
		{"R1_cota_telemetry_data.csv", "telemetry_data_sampled.csv", Telemetry()},
	}
}
