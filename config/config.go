// SPDX-License-Identifier: MIT

// Package config loads run settings for the aquanet pipeline.
//
// Settings live in a single YAML file. Missing fields take the defaults of
// Default(); Validate then checks ranges and enumerations with struct tags.
//
//	seed: 7
//	samples: 100
//	train_fraction: 0.8
//	epochs: 200
//	optimizer: {name: adam, lr: 0.01}
//	normalize: {scope: train, zero_range: error}
//	data: {dataset: sogamoso_gcn_dataset.csv}
//	equity: {scenario: drought, epochs: 5000}
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) for any configuration that fails Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Default values.
const (
	DefaultSamples        = 100
	DefaultTrainFraction  = 0.8
	DefaultEpochs         = 200
	DefaultBaselineEpochs = 2000
	DefaultOptimizer      = "adam"
	DefaultLearningRate   = 0.01
	DefaultTarget         = "total_distribution"
	DefaultScope          = "train"
	DefaultZeroRange      = "error"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultBaselineTarget = 260.0
	DefaultScenario       = "normal"
	DefaultEquityEpochs   = 5000
	DefaultEquityLR       = 0.01
	DefaultEquitySupply   = 275.0
)

var (
	defaultHidden        = []int{16, 8}
	defaultBaselineInput = []float64{250, 15, 10}
)

// Config is the root configuration.
type Config struct {
	Seed           int64           `yaml:"seed"`
	Samples        int             `yaml:"samples" validate:"gte=1"`
	TrainFraction  float64         `yaml:"train_fraction" validate:"gt=0,lte=1"`
	Epochs         int             `yaml:"epochs" validate:"gte=1"`
	BaselineEpochs int             `yaml:"baseline_epochs" validate:"gte=1"`
	Target         string          `yaml:"target" validate:"oneof=total_distribution sink_flow total_inflow"`
	Shuffle        *bool           `yaml:"shuffle,omitempty"` // nil = true
	Optimizer      OptimizerConfig `yaml:"optimizer"`
	Model          ModelConfig     `yaml:"model"`
	Normalize      NormalizeConfig `yaml:"normalize"`
	Data           DataConfig      `yaml:"data"`
	Baseline       BaselineConfig  `yaml:"baseline"`
	Equity         EquityConfig    `yaml:"equity"`
	Log            LogConfig       `yaml:"log"`
	Metrics        MetricsConfig   `yaml:"metrics"`
}

// OptimizerConfig selects the parameter update rule.
type OptimizerConfig struct {
	Name string  `yaml:"name" validate:"oneof=adam sgd"`
	LR   float64 `yaml:"lr" validate:"gt=0"`
}

// ModelConfig sets the widths of the propagation rounds.
type ModelConfig struct {
	Hidden []int `yaml:"hidden" validate:"min=1,dive,gt=0"`
}

// NormalizeConfig controls feature scaling.
type NormalizeConfig struct {
	Scope     string  `yaml:"scope" validate:"oneof=train full"`
	ZeroRange string  `yaml:"zero_range" validate:"oneof=error fallback"`
	Fallback  float64 `yaml:"fallback"`
}

// DataConfig locates inputs. An empty Dataset means "generate Samples
// samples"; an empty Topology means the built-in Sogamoso network.
type DataConfig struct {
	Dataset  string `yaml:"dataset,omitempty"`
	Topology string `yaml:"topology,omitempty"`
	Strict   bool   `yaml:"strict"`
}

// BaselineConfig is the single training pair of the feed-forward baseline.
type BaselineConfig struct {
	Input  []float64 `yaml:"input" validate:"min=1"`
	Target float64   `yaml:"target"`
}

// EquityConfig drives the sector allocator. Supply is the total flow the
// allocator is trained on.
type EquityConfig struct {
	Scenario string  `yaml:"scenario" validate:"oneof=normal drought peak failure"`
	Epochs   int     `yaml:"epochs" validate:"gte=1"`
	LR       float64 `yaml:"lr" validate:"gt=0"`
	Supply   float64 `yaml:"supply" validate:"gt=0"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// MetricsConfig toggles the Prometheus registry dump.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return v
}

// Default returns a fully populated configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()

	return c
}

// applyDefaults fills zero values with defaults.
func (c *Config) applyDefaults() {
	if c.Samples == 0 {
		c.Samples = DefaultSamples
	}
	if c.TrainFraction == 0 {
		c.TrainFraction = DefaultTrainFraction
	}
	if c.Epochs == 0 {
		c.Epochs = DefaultEpochs
	}
	if c.BaselineEpochs == 0 {
		c.BaselineEpochs = DefaultBaselineEpochs
	}
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.Shuffle == nil {
		on := true
		c.Shuffle = &on
	}
	if c.Optimizer.Name == "" {
		c.Optimizer.Name = DefaultOptimizer
	}
	if c.Optimizer.LR == 0 {
		c.Optimizer.LR = DefaultLearningRate
	}
	if len(c.Model.Hidden) == 0 {
		c.Model.Hidden = append([]int(nil), defaultHidden...)
	}
	if c.Normalize.Scope == "" {
		c.Normalize.Scope = DefaultScope
	}
	if c.Normalize.ZeroRange == "" {
		c.Normalize.ZeroRange = DefaultZeroRange
	}
	if len(c.Baseline.Input) == 0 {
		c.Baseline.Input = append([]float64(nil), defaultBaselineInput...)
	}
	if c.Baseline.Target == 0 {
		c.Baseline.Target = DefaultBaselineTarget
	}
	if c.Equity.Scenario == "" {
		c.Equity.Scenario = DefaultScenario
	}
	if c.Equity.Epochs == 0 {
		c.Equity.Epochs = DefaultEquityEpochs
	}
	if c.Equity.LR == 0 {
		c.Equity.LR = DefaultEquityLR
	}
	if c.Equity.Supply == 0 {
		c.Equity.Supply = DefaultEquitySupply
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// ShuffleEnabled reports the effective shuffle setting.
func (c *Config) ShuffleEnabled() bool { return c.Shuffle == nil || *c.Shuffle }

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "oneof":
		return fmt.Errorf("%w: %s: must be one of [%s], got %v", ErrInvalid, field, e.Param(), e.Value())
	case "min", "gte", "gt":
		return fmt.Errorf("%w: %s: must be %s %s, got %v", ErrInvalid, field, e.Tag(), e.Param(), e.Value())
	case "lte":
		return fmt.Errorf("%w: %s: must be at most %s, got %v", ErrInvalid, field, e.Param(), e.Value())
	}

	return fmt.Errorf("%w: %s: failed %q", ErrInvalid, field, e.Tag())
}

// Parse decodes YAML from r, applies defaults and validates.
func Parse(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Load reads path, or returns Default() when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer fh.Close()

	return Parse(fh)
}

// Write encodes c as YAML to w.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return enc.Close()
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	return c.Write(fh)
}
