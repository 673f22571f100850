// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/aquanet/config"
	"github.com/katalvlaran/aquanet/dataset"
	"github.com/katalvlaran/aquanet/equity"
	"github.com/katalvlaran/aquanet/gnn"
	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/metrics"
	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/normalize"
	"github.com/katalvlaran/aquanet/optim"
	"github.com/katalvlaran/aquanet/synth"
	"github.com/katalvlaran/aquanet/train"
)

// ErrBaselineInput indicates a baseline input whose length differs from
// the first layer of the feed-forward network.
var ErrBaselineInput = errors.New("pipeline: baseline input width mismatch")

// Model names used for run metrics.
const (
	ModelGCN      = "gcn"
	ModelBaseline = "baseline"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger handed to every stage. Default: discard.
func WithLogger(l *slog.Logger) Option { return func(p *Pipeline) { p.logger = l } }

// WithMetrics records samples, epochs and runs in r. Default: none.
func WithMetrics(r *metrics.Registry) Option { return func(p *Pipeline) { p.metrics = r } }

// WithEpochHook is forwarded to the trainer as train.OnEpoch.
func WithEpochHook(fn func(train.EpochStats)) Option {
	return func(p *Pipeline) { p.hooks = append(p.hooks, fn) }
}

// Pipeline runs the stages of one configuration.
type Pipeline struct {
	cfg     *config.Config
	target  dataset.Target
	scope   normalize.Scope
	logger  *slog.Logger
	metrics *metrics.Registry
	hooks   []func(train.EpochStats)
}

// Prepared is the output of Prepare: examples ready for the trainer and
// the scaler that produced them.
type Prepared struct {
	Train   []train.Example[*matrix.Dense]
	Test    []train.Example[*matrix.Dense]
	Scaler  *normalize.Scaler
	Columns []int // node indices of the scaler columns
	Target  dataset.Target
}

// Result is the output of Train.
type Result struct {
	Report  train.Report
	Model   *gnn.Model
	Scaler  *normalize.Scaler
	Columns []int
	Target  dataset.Target
}

// New validates cfg and returns a Pipeline over it.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target, err := dataset.ParseTarget(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	scope, err := normalize.ParseScope(cfg.Normalize.Scope)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	p := &Pipeline{
		cfg:    cfg,
		target: target,
		scope:  scope,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *config.Config { return p.cfg }

// BuildTopology loads Data.Topology, or the Sogamoso network when the path
// is empty. Lint findings are logged as warnings; with Data.Strict they are
// construction errors instead.
func (p *Pipeline) BuildTopology() (*network.Topology, error) {
	var opts []network.Option
	if p.cfg.Data.Strict {
		opts = append(opts, network.WithStrictReachability())
	}
	var (
		topo *network.Topology
		err  error
	)
	if path := p.cfg.Data.Topology; path != "" {
		topo, err = network.LoadFile(path, opts...)
	} else {
		topo, err = network.Sogamoso(opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("BuildTopology: %w", err)
	}
	for _, issue := range topo.Lint() {
		p.logger.Warn("topology issue", "kind", issue.Kind.String(), "node", issue.Node)
	}
	p.logger.Info("topology ready", "nodes", topo.Len(), "edges", topo.EdgeCount())

	return topo, nil
}

// Synthesize draws Config.Samples samples over topo from the samples stream.
func (p *Pipeline) Synthesize(topo *network.Topology) (dataset.Dataset, error) {
	opts := []synth.Option{
		synth.WithRand(synth.DeriveRand(p.cfg.Seed, synth.StreamSamples)),
		synth.WithLogger(p.logger),
	}
	if p.metrics != nil {
		opts = append(opts, synth.OnSample(p.metrics.SampleGenerated))
	}
	ds, err := synth.Generate(topo, p.cfg.Samples, opts...)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("Synthesize: %w", err)
	}

	return ds, nil
}

// Ingest reads Data.Dataset over topo's node order, or synthesizes samples
// when the path is empty.
func (p *Pipeline) Ingest(topo *network.Topology) (dataset.Dataset, error) {
	path := p.cfg.Data.Dataset
	if path == "" {
		return p.Synthesize(topo)
	}
	ds, err := dataset.ReadFile(path, topo.IDs())
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("Ingest: %w", err)
	}
	if p.metrics != nil {
		p.metrics.SamplesLoaded(ds.Len())
	}
	p.logger.Info("dataset loaded", "path", path, "samples", ds.Len())

	return ds, nil
}

func (p *Pipeline) newScaler() *normalize.Scaler {
	if p.cfg.Normalize.ZeroRange == "fallback" {
		return normalize.New(normalize.WithZeroRangeFallback(p.cfg.Normalize.Fallback))
	}

	return normalize.New()
}

// Prepare splits ds by Config.TrainFraction, fits a Scaler on the
// configured scope and turns every sample into an N×1 node feature matrix
// with its target.
//
// Errors:
//   - dataset.ErrNodeMismatch if ds was not recorded over topo.
//   - dataset.ErrNoSamples when the reference split is empty.
//   - normalize errors (ErrZeroRange) from fitting.
func (p *Pipeline) Prepare(topo *network.Topology, ds dataset.Dataset) (*Prepared, error) {
	if err := ds.Check(topo); err != nil {
		return nil, fmt.Errorf("Prepare: %w", err)
	}
	trainDS, testDS, err := ds.Split(p.cfg.TrainFraction)
	if err != nil {
		return nil, fmt.Errorf("Prepare: %w", err)
	}
	ref := trainDS
	if p.scope == normalize.ScopeFull {
		ref = ds
	}
	cols := dataset.FeatureColumns(topo)
	flows, err := dataset.FlowMatrix(ref, cols)
	if err != nil {
		return nil, fmt.Errorf("Prepare: %s scope: %w", p.scope, err)
	}
	scaler := p.newScaler()
	if err = scaler.Fit(flows); err != nil {
		return nil, fmt.Errorf("Prepare: %w", err)
	}
	if deg := scaler.Degenerate(); len(deg) > 0 {
		p.logger.Warn("constant feature columns", "columns", deg, "fallback", p.cfg.Normalize.Fallback)
	}

	prep := &Prepared{Scaler: scaler, Columns: cols, Target: p.target}
	if prep.Train, err = p.examples(topo, scaler, cols, trainDS); err != nil {
		return nil, fmt.Errorf("Prepare: train: %w", err)
	}
	if prep.Test, err = p.examples(topo, scaler, cols, testDS); err != nil {
		return nil, fmt.Errorf("Prepare: test: %w", err)
	}
	p.logger.Info("dataset prepared",
		"train", len(prep.Train), "test", len(prep.Test),
		"scope", p.scope.String(), "target", p.target.String())

	return prep, nil
}

func (p *Pipeline) examples(topo *network.Topology, s *normalize.Scaler, cols []int, d dataset.Dataset) ([]train.Example[*matrix.Dense], error) {
	out := make([]train.Example[*matrix.Dense], 0, d.Len())
	for _, smp := range d.Samples {
		scaled, err := s.TransformRow(dataset.Flows(smp, cols))
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", smp.ID, err)
		}
		x, err := dataset.NodeFeatures(topo, cols, scaled)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", smp.ID, err)
		}
		out = append(out, train.Example[*matrix.Dense]{
			ID:     smp.ID,
			Input:  x,
			Target: p.target.Value(smp, topo.Sink()),
		})
	}

	return out, nil
}

func (p *Pipeline) trainerOptions(epochs int, shuffle bool) ([]train.Option, error) {
	opt, err := optim.New(p.cfg.Optimizer.Name, p.cfg.Optimizer.LR)
	if err != nil {
		return nil, err
	}
	opts := []train.Option{
		train.WithEpochs(epochs),
		train.WithOptimizer(opt),
		train.WithLogger(p.logger),
	}
	if shuffle {
		opts = append(opts, train.WithShuffle(synth.DeriveRand(p.cfg.Seed, synth.StreamShuffle)))
	}
	if p.metrics != nil {
		opts = append(opts, train.WithRecorder(p.metrics))
	}
	for _, fn := range p.hooks {
		opts = append(opts, train.OnEpoch(fn))
	}

	return opts, nil
}

// Train builds a Model over topo from the weights stream and fits it on
// prep. On ErrNonFinite or cancellation the partial Result is returned
// together with the error.
func (p *Pipeline) Train(ctx context.Context, topo *network.Topology, prep *Prepared) (res *Result, err error) {
	defer func() {
		if p.metrics != nil {
			p.metrics.RecordRun(ModelGCN, err)
		}
	}()

	model, err := gnn.NewModel(topo, synth.DeriveRand(p.cfg.Seed, synth.StreamWeights),
		gnn.WithHidden(p.cfg.Model.Hidden...))
	if err != nil {
		return nil, fmt.Errorf("Train: %w", err)
	}
	if p.metrics != nil {
		p.metrics.TrainableParams.Set(float64(optim.Count(model.Params())))
	}
	opts, err := p.trainerOptions(p.cfg.Epochs, p.cfg.ShuffleEnabled())
	if err != nil {
		return nil, fmt.Errorf("Train: %w", err)
	}
	trainer, err := train.New[*matrix.Dense](model, opts...)
	if err != nil {
		return nil, fmt.Errorf("Train: %w", err)
	}
	rep, err := trainer.Fit(ctx, prep.Train, prep.Test)
	res = &Result{
		Report:  rep,
		Model:   model,
		Scaler:  prep.Scaler,
		Columns: prep.Columns,
		Target:  prep.Target,
	}
	if err != nil {
		return res, fmt.Errorf("Train: %w", err)
	}

	return res, nil
}

// Run executes BuildTopology, Ingest, Prepare and Train.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	topo, err := p.BuildTopology()
	if err != nil {
		return nil, err
	}
	ds, err := p.Ingest(topo)
	if err != nil {
		return nil, err
	}
	prep, err := p.Prepare(topo, ds)
	if err != nil {
		return nil, err
	}

	return p.Train(ctx, topo, prep)
}

// RunBaseline fits the feed-forward network with gnn.LayerSizes(topo) on
// the single pair Baseline.Input → Baseline.Target for BaselineEpochs
// epochs, in fixed order.
//
// Errors:
//   - ErrBaselineInput if the input width is not LayerSizes(topo)[0].
func (p *Pipeline) RunBaseline(ctx context.Context, topo *network.Topology) (rep train.Report, err error) {
	defer func() {
		if p.metrics != nil {
			p.metrics.RecordRun(ModelBaseline, err)
		}
	}()

	sizes := gnn.LayerSizes(topo)
	if len(p.cfg.Baseline.Input) != sizes[0] {
		return rep, fmt.Errorf("RunBaseline: %d values for %v: %w", len(p.cfg.Baseline.Input), sizes, ErrBaselineInput)
	}
	net, err := gnn.NewFeedForward(synth.DeriveRand(p.cfg.Seed, synth.StreamWeights), sizes...)
	if err != nil {
		return rep, fmt.Errorf("RunBaseline: %w", err)
	}
	if p.metrics != nil {
		p.metrics.TrainableParams.Set(float64(optim.Count(net.Params())))
	}
	opts, err := p.trainerOptions(p.cfg.BaselineEpochs, false)
	if err != nil {
		return rep, fmt.Errorf("RunBaseline: %w", err)
	}
	trainer, err := train.New[[]float64](net, opts...)
	if err != nil {
		return rep, fmt.Errorf("RunBaseline: %w", err)
	}
	pair := []train.Example[[]float64]{{
		ID:     1,
		Input:  append([]float64(nil), p.cfg.Baseline.Input...),
		Target: p.cfg.Baseline.Target,
	}}
	if rep, err = trainer.Fit(ctx, pair, nil); err != nil {
		return rep, fmt.Errorf("RunBaseline: %w", err)
	}

	return rep, nil
}

// Allocate trains an equity allocator on the mean sector demands at
// Equity.Supply, then compares it with the proportional split for each of
// hours under Equity.Scenario. Hourly demands are drawn from the demand
// stream in the order given.
func (p *Pipeline) Allocate(topo *network.Topology, hours ...int) (*equity.Allocator, []equity.Snapshot, error) {
	sc, err := equity.ParseScenario(p.cfg.Equity.Scenario)
	if err != nil {
		return nil, nil, fmt.Errorf("Allocate: %w", err)
	}
	sources := equity.SogamosoSources()
	if err = equity.CheckSources(topo, sources); err != nil {
		return nil, nil, fmt.Errorf("Allocate: %w", err)
	}
	sup, err := equity.Available(sources, sc)
	if err != nil {
		return nil, nil, fmt.Errorf("Allocate: %w", err)
	}

	sectors := equity.SogamosoSectors()
	alloc, err := equity.NewAllocator(sectors, synth.DeriveRand(p.cfg.Seed, synth.StreamEquity),
		equity.WithLearningRate(p.cfg.Equity.LR))
	if err != nil {
		return nil, nil, fmt.Errorf("Allocate: %w", err)
	}
	if err = alloc.Train(p.cfg.Equity.Supply, equity.MeanDemands(sectors), p.cfg.Equity.Epochs); err != nil {
		return nil, nil, fmt.Errorf("Allocate: %w", err)
	}
	p.logger.Info("allocator trained", "epochs", p.cfg.Equity.Epochs, "supply", p.cfg.Equity.Supply)

	rng := synth.DeriveRand(p.cfg.Seed, synth.StreamDemand)
	snaps := make([]equity.Snapshot, 0, len(hours))
	for _, h := range hours {
		demands, err := equity.Demands(sectors, h, rng)
		if err != nil {
			return nil, nil, fmt.Errorf("Allocate: %w", err)
		}
		snap, err := alloc.Compare(h, sup, demands)
		if err != nil {
			return nil, nil, fmt.Errorf("Allocate: %w", err)
		}
		p.logger.Debug("hour allocated", "hour", h, "scenario", sc.String(),
			"proportional", snap.Before.Index, "optimized", snap.After.Index)
		if p.metrics != nil {
			p.metrics.ObserveEquity("proportional", snap.Before.Index, snap.Before.Gini)
			p.metrics.ObserveEquity("optimized", snap.After.Index, snap.After.Gini)
		}
		snaps = append(snaps, snap)
	}

	return alloc, snaps, nil
}
