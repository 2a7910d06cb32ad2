package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// BaseDir holds the raw exports; OutputDir receives cleaned files.
	BaseDir   string `mapstructure:"base_dir" yaml:"base_dir"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Sampler shape for the oversized telemetry export.
	ChunkSize  int `mapstructure:"chunk_size" yaml:"chunk_size"`
	Decimation int `mapstructure:"decimation" yaml:"decimation"`

	// Quiet suppresses per-file progress lines.
	Quiet bool `mapstructure:"quiet" yaml:"quiet"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.grcup/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".grcup")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("GRCUP")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("base_dir", ".")
	v.SetDefault("output_dir", "cleaned")
	v.SetDefault("chunk_size", 10000)
	v.SetDefault("decimation", 10)
	v.SetDefault("quiet", false)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".grcup")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
