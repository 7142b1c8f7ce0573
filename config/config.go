// Package config owns the process-wide region configuration: the per-depth
// thread counts, the nesting flag and the optional thread limit.  Values are
// read from the environment at start-up (PARALLEL_* with OMP_* fallbacks,
// mirroring the OpenMP conventions) and may be overridden programmatically
// or loaded from a YAML file.  Regions read the configuration once, at
// entry.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by FromEnv, in priority order.
const (
	EnvNumThreads    = "PARALLEL_NUM_THREADS"
	EnvNumThreadsOMP = "OMP_NUM_THREADS"
	EnvNested        = "PARALLEL_NESTED"
	EnvNestedOMP     = "OMP_NESTED"
	EnvThreadLimit   = "PARALLEL_THREAD_LIMIT"
	EnvThreadLimitOMP = "OMP_THREAD_LIMIT"
)

// Config is a serialisable representation of the region configuration.  It
// can be populated from YAML, environment variables or code.
type Config struct {
	// NumThreads holds either a single thread count applied uniformly at
	// every nesting depth, or one entry per depth.
	NumThreads []int `yaml:"numThreads" json:"numThreads"`

	// Nested permits regions inside regions.
	Nested bool `yaml:"nested" json:"nested"`

	// ThreadLimit caps concurrently active workers across the whole process;
	// 0 means unlimited.
	ThreadLimit int `yaml:"threadLimit" json:"threadLimit"`
}

// New returns a Config populated with defaults: one entry equal to the
// number of CPUs, nesting disabled, no thread limit.
func New() *Config {
	return &Config{NumThreads: []int{runtime.NumCPU()}}
}

// FromEnv returns a Config built from defaults overlaid with any environment
// settings.
func FromEnv() (*Config, error) {
	cfg := New()
	if value := firstEnv(EnvNumThreads, EnvNumThreadsOMP); value != "" {
		list, err := parseIntList(value)
		if err != nil {
			return nil, fmt.Errorf("invalid thread count list %q: %w", value, err)
		}
		cfg.NumThreads = list
	}
	if value := firstEnv(EnvNested, EnvNestedOMP); value != "" {
		nested, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return nil, fmt.Errorf("invalid nested flag %q: %w", value, err)
		}
		cfg.Nested = nested
	}
	if value := firstEnv(EnvThreadLimit, EnvThreadLimitOMP); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("invalid thread limit %q", value)
		}
		cfg.ThreadLimit = limit
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if len(c.NumThreads) == 0 {
		return fmt.Errorf("numThreads must not be empty")
	}
	for _, n := range c.NumThreads {
		if n < 1 {
			return fmt.Errorf("numThreads entries must be positive, got %v", c.NumThreads)
		}
	}
	if c.ThreadLimit < 0 {
		return fmt.Errorf("threadLimit must not be negative, got %d", c.ThreadLimit)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.NumThreads = append([]int(nil), c.NumThreads...)
	return &clone
}

var (
	defaultMu  sync.Mutex
	defaultCfg *Config
)

// Default returns a copy of the process-wide configuration, initialising it
// from the environment on first use.  Environment errors fall back to plain
// defaults; use FromEnv directly to surface them.
func Default() *Config {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCfg == nil {
		cfg, err := FromEnv()
		if err != nil {
			cfg = New()
		}
		defaultCfg = cfg
	}
	return defaultCfg.Clone()
}

// SetDefault replaces the process-wide configuration.
func SetDefault(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	defaultMu.Lock()
	defaultCfg = cfg.Clone()
	defaultMu.Unlock()
	return nil
}

// SetNumThreads updates the process-wide per-depth thread counts.
func SetNumThreads(counts ...int) error {
	cfg := Default()
	cfg.NumThreads = counts
	return SetDefault(cfg)
}

// SetNested updates the process-wide nesting flag.
func SetNested(nested bool) {
	cfg := Default()
	cfg.Nested = nested
	_ = SetDefault(cfg)
}

// SetThreadLimit updates the process-wide thread limit; 0 removes it.
func SetThreadLimit(limit int) error {
	cfg := Default()
	cfg.ThreadLimit = limit
	return SetDefault(cfg)
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}
	return ""
}

func parseIntList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	list := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}
