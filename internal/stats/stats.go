// Package stats derives per-vehicle performance summaries from cleaned
// lap-time data. It consumes the comma-separated output of the cleaning
// pipeline; per the output contract, the "value" column of the lap_times
// file carries integer milliseconds.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/coerce"
	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/table"
)

// LapRecord is one valid lap of one vehicle.
type LapRecord struct {
	VehicleID string
	Lap       int64
	Seconds   float64
}

// LoadLapTimes reads a cleaned lap-times CSV. Rows with a null or zero value
// cell are skipped; they are recording artifacts, not laps.
func LoadLapTimes(path string) ([]LapRecord, error) {
	t, err := table.ReadFile(path, ',')
	if err != nil {
		return nil, err
	}
	vi := t.ColumnIndex("vehicle_id")
	li := t.ColumnIndex("lap")
	xi := t.ColumnIndex("value")
	if vi < 0 || li < 0 || xi < 0 {
		return nil, fmt.Errorf("%s: missing vehicle_id/lap/value columns", path)
	}
	var recs []LapRecord
	for _, row := range t.Rows {
		ms, ok := coerce.Milliseconds(row[xi])
		if !ok || ms == 0 {
			continue
		}
		lap, ok := coerce.Int(row[li])
		if !ok {
			continue
		}
		recs = append(recs, LapRecord{
			VehicleID: row[vi],
			Lap:       lap,
			Seconds:   float64(ms) / 1000,
		})
	}
	return recs, nil
}

// VehiclePerformance aggregates one vehicle's laps.
type VehiclePerformance struct {
	VehicleID    string
	Laps         int
	AvgSec       float64
	BestSec      float64
	WorstSec     float64
	StdDevSec    float64
	Consistency  float64
	Rank         int
	GapToFastest float64
}

// RaceSummary aggregates the whole field.
type RaceSummary struct {
	Vehicles   int
	TotalLaps  int
	FastestSec float64
	SlowestSec float64
	MeanSec    float64
	SpreadSec  float64
}

// Summarize groups laps per vehicle and computes average, best, worst,
// sample standard deviation, a consistency score (100 minus the std dev as a
// percentage of the average), rank by average lap time, and the gap of each
// average to the fastest average. Result is ordered by rank.
func Summarize(recs []LapRecord) []VehiclePerformance {
	byVehicle := make(map[string][]float64)
	for _, r := range recs {
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r.Seconds)
	}
	out := make([]VehiclePerformance, 0, len(byVehicle))
	for id, times := range byVehicle {
		p := VehiclePerformance{VehicleID: id, Laps: len(times)}
		p.BestSec = math.Inf(1)
		p.WorstSec = math.Inf(-1)
		var sum float64
		for _, s := range times {
			sum += s
			if s < p.BestSec {
				p.BestSec = s
			}
			if s > p.WorstSec {
				p.WorstSec = s
			}
		}
		p.AvgSec = sum / float64(len(times))
		if len(times) > 1 {
			var m2 float64
			for _, s := range times {
				d := s - p.AvgSec
				m2 += d * d
			}
			p.StdDevSec = math.Sqrt(m2 / float64(len(times)-1))
		}
		p.Consistency = 100 - p.StdDevSec/p.AvgSec*100
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgSec == out[j].AvgSec {
			return out[i].VehicleID < out[j].VehicleID
		}
		return out[i].AvgSec < out[j].AvgSec
	})
	if len(out) > 0 {
		fastest := out[0].AvgSec
		for i := range out {
			out[i].Rank = i + 1
			out[i].GapToFastest = out[i].AvgSec - fastest
		}
	}
	return out
}

// FieldSummary computes race-wide lap statistics.
func FieldSummary(recs []LapRecord) RaceSummary {
	s := RaceSummary{TotalLaps: len(recs)}
	if len(recs) == 0 {
		return s
	}
	vehicles := make(map[string]struct{})
	s.FastestSec = math.Inf(1)
	s.SlowestSec = math.Inf(-1)
	var sum float64
	for _, r := range recs {
		vehicles[r.VehicleID] = struct{}{}
		sum += r.Seconds
		if r.Seconds < s.FastestSec {
			s.FastestSec = r.Seconds
		}
		if r.Seconds > s.SlowestSec {
			s.SlowestSec = r.Seconds
		}
	}
	s.Vehicles = len(vehicles)
	s.MeanSec = sum / float64(len(recs))
	s.SpreadSec = s.SlowestSec - s.FastestSec
	return s
}

func f(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WritePerformanceCSV writes per-vehicle summaries.
func WritePerformanceCSV(path string, perf []VehiclePerformance) error {
	t := table.New([]string{
		"vehicle_id", "total_laps", "avg_lap_time", "best_lap_time",
		"worst_lap_time", "lap_time_std", "consistency_score",
		"performance_rank", "gap_to_fastest",
	})
	for _, p := range perf {
		t.AppendRow([]string{
			p.VehicleID,
			strconv.Itoa(p.Laps),
			f(p.AvgSec), f(p.BestSec), f(p.WorstSec), f(p.StdDevSec),
			f(p.Consistency),
			strconv.Itoa(p.Rank),
			f(p.GapToFastest),
		})
	}
	return t.WriteFile(path)
}

// WriteSummaryCSV writes the single-row field summary.
func WriteSummaryCSV(path string, s RaceSummary) error {
	t := table.New([]string{
		"total_vehicles", "total_laps_completed", "fastest_lap_overall",
		"slowest_lap_overall", "avg_lap_time_field", "lap_time_spread",
	})
	t.AppendRow([]string{
		strconv.Itoa(s.Vehicles),
		strconv.Itoa(s.TotalLaps),
		f(s.FastestSec), f(s.SlowestSec), f(s.MeanSec), f(s.SpreadSec),
	})
	return t.WriteFile(path)
}

// PaceLabel buckets an average lap time into the pace labels used by the
// report output.
func PaceLabel(avgSec float64) string {
	switch {
	case avgSec < 152:
		return "STRONG"
	case avgSec < 155:
		return "COMPETITIVE"
	default:
		return "NEEDS WORK"
	}
}
