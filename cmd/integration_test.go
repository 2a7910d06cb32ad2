package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func TestCLI_CleanAndReport(t *testing.T) {
	// Use a temp HOME to isolate config
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	base := filepath.Join(home, "race1")
	out := filepath.Join(home, "cleaned")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir base: %v", err)
	}

	lapData := "vehicle_id,lap,value,meta_time\n" +
		"GR86-009-12,1,101500,2024-03-02T15:04:09Z\n" +
		"GR86-004-78,2,103991,2024-03-02T15:05:49Z\n" +
		"GR86-004-78,1,104233,2024-03-02T15:04:05Z\n" +
		"GR86-004-78,1,104233,2024-03-02T15:04:05Z\n" +
		"GR86-004-78,32768,1,2024-03-02T15:05:49Z\n"
	if err := os.WriteFile(filepath.Join(base, "COTA_lap_time_R1.csv"), []byte(lapData), 0o644); err != nil {
		t.Fatalf("write laps: %v", err)
	}

	// Only one manifest input exists; the other nine are reported missing
	// and the run still succeeds.
	runCmd(t, "clean", "--base-dir", base, "--out-dir", out, "--quiet")

	cleaned := filepath.Join(out, "lap_times.csv")
	b, err := os.ReadFile(cleaned)
	if err != nil {
		t.Fatalf("cleaned output missing: %v", err)
	}
	body := string(b)
	if strings.Contains(body, "32768") {
		t.Fatalf("sentinel lap survived:\n%s", body)
	}
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 4 { // header + 3 rows after dedup and sentinel
		t.Fatalf("cleaned rows = %d, want 4 lines:\n%s", len(lines), body)
	}

	runCmd(t, "report", "--laps", cleaned, "--out-dir", out, "--quiet")
	perf, err := os.ReadFile(filepath.Join(out, "bi_vehicle_performance.csv"))
	if err != nil {
		t.Fatalf("performance output missing: %v", err)
	}
	if !strings.Contains(string(perf), "GR86-009-12") {
		t.Fatalf("vehicle missing from performance csv:\n%s", perf)
	}
	if _, err := os.Stat(filepath.Join(out, "bi_race_summary.csv")); err != nil {
		t.Fatalf("race summary missing: %v", err)
	}
}

func TestCLI_ConfigShow(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	runCmd(t, "config", "set", "output_dir", filepath.Join(home, "cleandir"))
	cfgPath := filepath.Join(home, ".grcup", "config.yaml")
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	if !strings.Contains(string(b), "cleandir") {
		t.Fatalf("saved config missing value:\n%s", b)
	}

	runCmd(t, "config", "show")
}
