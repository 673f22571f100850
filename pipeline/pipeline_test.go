// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/config"
	"github.com/katalvlaran/aquanet/dataset"
	"github.com/katalvlaran/aquanet/equity"
	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/metrics"
	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/normalize"
	"github.com/katalvlaran/aquanet/pipeline"
	"github.com/katalvlaran/aquanet/train"
)

// smallConfig is the default config with a short training run.
func smallConfig(epochs int) *config.Config {
	cfg := config.Default()
	cfg.Seed = 11
	cfg.Epochs = epochs

	return cfg
}

// at reads m(i,j) or fails the test.
func at(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func stages(t *testing.T, cfg *config.Config) (*pipeline.Pipeline, *network.Topology, dataset.Dataset) {
	t.Helper()
	p, err := pipeline.New(cfg)
	require.NoError(t, err)
	topo, err := p.BuildTopology()
	require.NoError(t, err)
	ds, err := p.Ingest(topo)
	require.NoError(t, err)

	return p, topo, ds
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Optimizer.Name = "lbfgs"
	_, err := pipeline.New(cfg)
	require.ErrorIs(t, err, config.ErrInvalid)

	p, err := pipeline.New(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), p.Config())
}

func TestBuildTopology(t *testing.T) {
	p, topo, _ := stages(t, smallConfig(1))
	assert.Equal(t, 12, topo.Len())
	assert.Equal(t, 14, topo.EdgeCount())

	cfg := smallConfig(1)
	cfg.Data.Strict = true
	p, err := pipeline.New(cfg)
	require.NoError(t, err)
	_, err = p.BuildTopology()
	require.ErrorIs(t, err, network.ErrUnreachable)
}

func TestPrepare_SplitInOrder(t *testing.T) {
	p, topo, ds := stages(t, smallConfig(1))
	require.Equal(t, 100, ds.Len())

	prep, err := p.Prepare(topo, ds)
	require.NoError(t, err)
	require.Len(t, prep.Train, 80)
	require.Len(t, prep.Test, 20)
	for k, ex := range prep.Train {
		assert.Equal(t, k+1, ex.ID)
	}
	for k, ex := range prep.Test {
		assert.Equal(t, 81+k, ex.ID)
	}

	sink := topo.Sink()
	for _, ex := range prep.Train {
		rows, cols := ex.Input.Shape()
		require.Equal(t, topo.Len(), rows)
		require.Equal(t, 1, cols)
		for i := 0; i < rows; i++ {
			v := at(t, ex.Input, i, 0)
			if i == sink {
				assert.Zero(t, v)
				continue
			}
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.GreaterOrEqual(t, ex.Target, 250.0)
		assert.LessOrEqual(t, ex.Target, 310.0)
	}
	assert.Equal(t, dataset.TotalDistribution, prep.Target)
	assert.Equal(t, len(prep.Columns), prep.Scaler.Width())
}

func TestPrepare_FullScopeCoversTest(t *testing.T) {
	cfg := smallConfig(1)
	cfg.Normalize.Scope = "full"
	p, topo, ds := stages(t, cfg)

	prep, err := p.Prepare(topo, ds)
	require.NoError(t, err)
	for _, ex := range prep.Test {
		for _, c := range prep.Columns {
			v := at(t, ex.Input, c, 0)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestPrepare_TargetSelection(t *testing.T) {
	cfg := smallConfig(1)
	cfg.Target = "total_inflow"
	p, topo, ds := stages(t, cfg)

	prep, err := p.Prepare(topo, ds)
	require.NoError(t, err)
	assert.Equal(t, ds.Samples[0].TotalInflow, prep.Train[0].Target)
}

func TestPrepare_ZeroRange(t *testing.T) {
	p, topo, ds := stages(t, smallConfig(1))
	for _, s := range ds.Samples {
		s.Readings[0].Flow = 260
	}
	_, err := p.Prepare(topo, ds)
	require.ErrorIs(t, err, normalize.ErrZeroRange)
	require.ErrorIs(t, err, dataset.ErrData)

	cfg := smallConfig(1)
	cfg.Normalize.ZeroRange = "fallback"
	cfg.Normalize.Fallback = 0.5
	p, err = pipeline.New(cfg)
	require.NoError(t, err)
	prep, err := p.Prepare(topo, ds)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, prep.Scaler.Degenerate())
	assert.Equal(t, 0.5, at(t, prep.Train[0].Input, 0, 0))
}

func TestPrepare_NodeMismatch(t *testing.T) {
	p, topo, ds := stages(t, smallConfig(1))
	ds.NodeIDs = ds.NodeIDs[1:]
	_, err := p.Prepare(topo, ds)
	require.ErrorIs(t, err, dataset.ErrNodeMismatch)
}

func TestIngest_CSV(t *testing.T) {
	p, topo, generated := stages(t, smallConfig(1))
	path := filepath.Join(t.TempDir(), "sogamoso_gcn_dataset.csv")
	require.NoError(t, dataset.WriteFile(path, generated))

	cfg := smallConfig(1)
	cfg.Data.Dataset = path
	reg := metrics.NewRegistry()
	p, err := pipeline.New(cfg, pipeline.WithMetrics(reg))
	require.NoError(t, err)
	loaded, err := p.Ingest(topo)
	require.NoError(t, err)
	require.Equal(t, generated.Len(), loaded.Len())
	cols := dataset.FeatureColumns(topo)
	for k := range loaded.Samples {
		assert.Equal(t, dataset.Flows(generated.Samples[k], cols), dataset.Flows(loaded.Samples[k], cols))
		assert.Equal(t, generated.Samples[k].TotalDistribution, loaded.Samples[k].TotalDistribution)
	}

	var buf bytes.Buffer
	require.NoError(t, reg.WriteText(&buf))
	assert.Contains(t, buf.String(), "aquanet_samples_loaded_total 100")
}

func TestRun_LossDecreases(t *testing.T) {
	reg := metrics.NewRegistry()
	var seen []int
	p, err := pipeline.New(smallConfig(20),
		pipeline.WithMetrics(reg),
		pipeline.WithEpochHook(func(s train.EpochStats) { seen = append(seen, s.Epoch) }))
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	rep := res.Report
	require.Equal(t, 20, rep.Epochs)
	require.Len(t, rep.TrainLoss, 20)
	assert.Less(t, rep.TrainLoss[19], rep.TrainLoss[0])
	assert.Equal(t, 20, rep.TestSamples)
	assert.False(t, math.IsNaN(rep.TestLoss))
	assert.Equal(t, 81, rep.Example.SampleID)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, "adam", rep.Optimizer)
	assert.Len(t, seen, 20)
	assert.NotNil(t, res.Model)
	assert.True(t, res.Scaler.Fitted())

	var buf bytes.Buffer
	require.NoError(t, reg.WriteText(&buf))
	assert.Contains(t, buf.String(), "aquanet_samples_generated_total 100")
	assert.Contains(t, buf.String(), "aquanet_training_epochs_total 20")
	assert.Contains(t, buf.String(), `aquanet_training_runs_total{model="gcn",status="ok"} 1`)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() []float64 {
		p, err := pipeline.New(smallConfig(3))
		require.NoError(t, err)
		res, err := p.Run(context.Background())
		require.NoError(t, err)

		return res.Report.TrainLoss
	}
	assert.Equal(t, run(), run())
}

func TestTrain_Canceled(t *testing.T) {
	reg := metrics.NewRegistry()
	cfg := smallConfig(5)
	p, err := pipeline.New(cfg, pipeline.WithMetrics(reg))
	require.NoError(t, err)
	topo, err := p.BuildTopology()
	require.NoError(t, err)
	ds, err := p.Ingest(topo)
	require.NoError(t, err)
	prep, err := p.Prepare(topo, ds)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := p.Train(ctx, topo, prep)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Zero(t, res.Report.Epochs)

	var buf bytes.Buffer
	require.NoError(t, reg.WriteText(&buf))
	assert.Contains(t, buf.String(), `aquanet_training_runs_total{model="gcn",status="error"} 1`)
}

func TestRunBaseline(t *testing.T) {
	cfg := smallConfig(1)
	cfg.BaselineEpochs = 50
	p, topo, _ := stages(t, cfg)

	rep, err := p.RunBaseline(context.Background(), topo)
	require.NoError(t, err)
	assert.Equal(t, 50, rep.Epochs)
	assert.Len(t, rep.TrainLoss, 50)
	assert.True(t, math.IsNaN(rep.TestLoss))
	assert.Equal(t, 260.0, rep.Example.Actual)

	cfg = smallConfig(1)
	cfg.Baseline.Input = []float64{250, 15}
	p, err = pipeline.New(cfg)
	require.NoError(t, err)
	_, err = p.RunBaseline(context.Background(), topo)
	require.ErrorIs(t, err, pipeline.ErrBaselineInput)
}

func TestAllocate(t *testing.T) {
	cfg := smallConfig(1)
	cfg.Equity.Scenario = "drought"
	cfg.Equity.Epochs = 300
	reg := metrics.NewRegistry()
	p, err := pipeline.New(cfg, pipeline.WithMetrics(reg))
	require.NoError(t, err)
	topo, err := p.BuildTopology()
	require.NoError(t, err)

	alloc, snaps, err := p.Allocate(topo, 7, 12)
	require.NoError(t, err)
	assert.True(t, alloc.Trained())
	require.Len(t, snaps, 2)
	assert.Equal(t, 7, snaps[0].Hour)
	for _, s := range snaps {
		assert.InDelta(t, 192.5, s.Supply.Total, 1e-9)
		var sum float64
		for _, v := range s.Optimized {
			sum += v
		}
		assert.InDelta(t, 192.5, sum, 1e-9)
		// Supply is below demand, so the proportional split is perfectly even.
		assert.InDelta(t, 100, s.Before.Index, 1e-9)
	}

	_, again, err := p.Allocate(topo, 7, 12)
	require.NoError(t, err)
	assert.Equal(t, snaps, again)

	var buf bytes.Buffer
	require.NoError(t, reg.WriteText(&buf))
	assert.Contains(t, buf.String(), `aquanet_equity_index{allocation="proportional"} 100`)

	_, _, err = p.Allocate(topo, 24)
	assert.ErrorIs(t, err, equity.ErrInvalidHour)
}
