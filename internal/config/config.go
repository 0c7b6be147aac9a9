// Package config loads the processor tuning file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/processor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInterval   = time.Second
	DefaultBackoff    = 5 * time.Second
	DefaultMaxBackoff = time.Minute
)

// ProcessorConfig mirrors processor.Options in YAML form.
type ProcessorConfig struct {
	Mode                                           model.Mode `yaml:"mode"`
	MaxLookBehind                                  uint64     `yaml:"max_look_behind"`
	WaitForFinalizedCrossShardSmartContractResults bool       `yaml:"wait_for_finalized_cross_shard_smart_contract_results"`
	NotifyEmptyBlocks                              bool       `yaml:"notify_empty_blocks"`
	IncludeCrossShardStartedTransactions           bool       `yaml:"include_cross_shard_started_transactions"`
}

type RunnerConfig struct {
	Interval   time.Duration `yaml:"interval"`
	Backoff    time.Duration `yaml:"backoff"`
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// Config is the content of a processor tuning file.
type Config struct {
	Processor ProcessorConfig `yaml:"processor"`
	Runner    RunnerConfig    `yaml:"runner"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Processor: ProcessorConfig{Mode: model.ModeShardblock},
		Runner: RunnerConfig{
			Interval:   DefaultInterval,
			Backoff:    DefaultBackoff,
			MaxBackoff: DefaultMaxBackoff,
		},
	}
}

// Load reads path on top of the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the processor options and the schedule.
func (c *Config) Validate() error {
	if err := c.ProcessorOptions().Validate(); err != nil {
		return err
	}
	if c.Runner.Interval < 0 {
		return errors.New("runner interval must not be negative")
	}
	if c.Runner.Backoff < 0 || c.Runner.MaxBackoff < 0 {
		return errors.New("runner backoff must not be negative")
	}
	return nil
}

// ProcessorOptions converts the processor section.
func (c *Config) ProcessorOptions() processor.Options {
	p := c.Processor
	return processor.Options{
		Mode:          p.Mode,
		MaxLookBehind: p.MaxLookBehind,
		WaitForFinalizedCrossShardSmartContractResults: p.WaitForFinalizedCrossShardSmartContractResults,
		NotifyEmptyBlocks:                    p.NotifyEmptyBlocks,
		IncludeCrossShardStartedTransactions: p.IncludeCrossShardStartedTransactions,
	}
}
