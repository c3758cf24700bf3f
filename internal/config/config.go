// Package config resolves the run settings shared by the commands.
//
// Precedence, lowest first: built-in defaults, the YAML file named by
// --config (or POPSTATS_CONFIG), POPSTATS_* environment variables, and
// finally flags set explicitly on the command line (applied by the cli
// package).
package config

import (
	"os"
	"slices"

	"github.com/hyp3rd/ewrap"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"popstats/internal/sentinel"
)

// EnvPrefix prefixes every environment variable, e.g. POPSTATS_SFS_BINS.
const EnvPrefix = "POPSTATS"

// Config holds the bootstrap settings.
type Config struct {
	Replicates int       `yaml:"replicates" envconfig:"REPLICATES"`
	SFSBins    int       `yaml:"sfs_bins" envconfig:"SFS_BINS"`
	LDBins     int       `yaml:"ld_bins" envconfig:"LD_BINS"`
	PhysEdges  []float64 `yaml:"phys_edges" envconfig:"PHYS_EDGES"`
	GenEdges   []float64 `yaml:"gen_edges" envconfig:"GEN_EDGES"`
	Seed       int64     `yaml:"seed" envconfig:"SEED"` // <0: fresh random seed per run
	Threads    int       `yaml:"threads" envconfig:"THREADS"`
	Format     string    `yaml:"format" envconfig:"FORMAT"`
	Trace      string    `yaml:"trace" envconfig:"TRACE"` // span export file, "-" = stderr, "" = off

	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LoggingConfig controls diagnostics on stderr.
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
	Quiet bool   `yaml:"quiet" envconfig:"QUIET"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SFSBins: 10,
		LDBins:  10,
		Seed:    -1,
		Format:  "text",
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load layers the YAML file at path (optional; "" falls back to
// POPSTATS_CONFIG) and the environment over the defaults. It does not
// validate; call Validate once flags are applied.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "environment: %v", err)
	}
	return cfg, nil
}

// loadFile overlays the keys present in the YAML file onto cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ewrap.Wrapf(sentinel.ErrMissingInput, "config %s: %v", path, err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "config %s: %v", path, err)
	}
	return nil
}

// Validate rejects settings no run can use. formats lists the report
// formats that have a writer.
func (c Config) Validate(formats []string) error {
	if c.Replicates <= 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "replicates must be > 0, got %d", c.Replicates)
	}
	if c.SFSBins <= 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "sfs bins must be > 0, got %d", c.SFSBins)
	}
	if (len(c.PhysEdges) == 0 || len(c.GenEdges) == 0) && c.LDBins <= 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "ld bins must be > 0 when edges are not given, got %d", c.LDBins)
	}
	if c.Threads < 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "threads must be >= 0, got %d", c.Threads)
	}
	if !slices.Contains(formats, c.Format) {
		return ewrap.Wrapf(sentinel.ErrUnknownFormat, "%q (want one of %v)", c.Format, formats)
	}
	return nil
}
