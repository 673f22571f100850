// SPDX-License-Identifier: MIT

package train_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/gnn"
	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/optim"
	"github.com/katalvlaran/aquanet/train"
)

var (
	_ train.Learner[*matrix.Dense] = (*gnn.Model)(nil)
	_ train.Learner[[]float64]     = (*gnn.FeedForward)(nil)
)

func TestNew_Errors(t *testing.T) {
	_, err := train.New[float64](nil)
	assert.ErrorIs(t, err, train.ErrNilLearner)
	assert.ErrorIs(t, err, train.ErrTraining)

	_, err = train.New[float64](newLine(), train.WithEpochs(0))
	assert.ErrorIs(t, err, train.ErrInvalidEpochs)
}

func TestFit_LinearConverges(t *testing.T) {
	l := newLine()
	rec := &recorder{}
	var hooks []int
	tr, err := train.New[float64](l,
		train.WithEpochs(300),
		train.WithOptimizer(optim.NewSGD(0.01)),
		train.WithRecorder(rec),
		train.OnEpoch(func(s train.EpochStats) { hooks = append(hooks, s.Epoch) }),
	)
	require.NoError(t, err)

	data := examples(5)
	rep, err := tr.Fit(context.Background(), data[:4], data[4:])
	require.NoError(t, err)

	assert.Equal(t, 300, rep.Epochs)
	assert.Len(t, rep.TrainLoss, 300)
	assert.Equal(t, rep.TrainLoss[299], rep.FinalTrainLoss)
	assert.Less(t, rep.FinalTrainLoss, rep.TrainLoss[0])
	assert.Less(t, rep.TestLoss, 0.05)
	assert.Equal(t, 1, rep.TestSamples)
	assert.Equal(t, "sgd", rep.Optimizer)
	assert.Equal(t, 5, rep.Example.SampleID)
	assert.Equal(t, 11.0, rep.Example.Actual)
	assert.InDelta(t, 11.0, rep.Example.Predicted, 0.3)

	_, err = uuid.Parse(rep.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 300, rec.epochs)
	assert.Equal(t, rep.TestLoss, rec.test)
	assert.Len(t, hooks, 300)
	assert.Equal(t, 1, hooks[0])
}

func TestFit_NoTestSet(t *testing.T) {
	tr, err := train.New[float64](newLine(), train.WithEpochs(2), train.WithRunID("fixed"))
	require.NoError(t, err)
	rep, err := tr.Fit(context.Background(), examples(3), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rep.TestLoss))
	assert.Equal(t, 1, rep.Example.SampleID, "falls back to the first training example")
	assert.Equal(t, "fixed", rep.RunID)
	assert.Equal(t, "adam", rep.Optimizer)
}

func TestFit_EmptyTrainingSet(t *testing.T) {
	tr, err := train.New[float64](newLine())
	require.NoError(t, err)
	_, err = tr.Fit(context.Background(), nil, examples(1))
	assert.ErrorIs(t, err, train.ErrNoExamples)
}

func TestFit_OneSampleAtATimeInOrder(t *testing.T) {
	l := newLine()
	tr, err := train.New[float64](l, train.WithEpochs(2))
	require.NoError(t, err)
	_, err = tr.Fit(context.Background(), examples(4), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 1, 2, 3, 4}, l.seen)
}

func TestFit_Shuffle(t *testing.T) {
	l := newLine()
	tr, err := train.New[float64](l, train.WithEpochs(3), train.WithShuffle(rand.New(rand.NewSource(4))))
	require.NoError(t, err)
	_, err = tr.Fit(context.Background(), examples(8), nil)
	require.NoError(t, err)

	require.Len(t, l.seen, 24)
	inOrder := true
	for e := 0; e < 3; e++ {
		epoch := append([]int(nil), l.seen[e*8:(e+1)*8]...)
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, epoch)
		for k, v := range epoch {
			inOrder = inOrder && v == k+1
		}
	}
	assert.False(t, inOrder)
}

func TestFit_NonFiniteFinishesEpoch(t *testing.T) {
	l := newLine()
	rec := &recorder{}
	epoch := 0
	l.poison = func(x float64) bool { return epoch == 2 && x == 2 }
	tr, err := train.New[float64](l,
		train.WithEpochs(10),
		train.WithRecorder(rec),
		train.OnEpoch(func(train.EpochStats) { epoch++ }),
	)
	require.NoError(t, err)
	// the hook runs after an epoch, so epoch == 2 during the third pass
	rep, err := tr.Fit(context.Background(), examples(4), nil)

	assert.ErrorIs(t, err, train.ErrNonFinite)
	assert.ErrorIs(t, err, train.ErrTraining)
	assert.Equal(t, 3, rep.Epochs)
	require.Len(t, rep.TrainLoss, 3)
	assert.True(t, math.IsNaN(rep.TrainLoss[2]))
	assert.Len(t, l.seen, 12, "the poisoned epoch still visits every sample")
	assert.Equal(t, 1, rec.nonFinite)
}

// A graph sample with an infinite target is counted as non-finite after the
// pass instead of aborting it.
func TestFit_GraphModelNonFiniteTarget(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(9))
	m, err := gnn.NewModel(topo, rng)
	require.NoError(t, err)

	data := make([]train.Example[*matrix.Dense], 3)
	for i := range data {
		x, err := matrix.NewDense(topo.Len(), 1)
		require.NoError(t, err)
		x.Apply(func(r, _ int, _ float64) float64 {
			if r == topo.Sink() {
				return 0
			}

			return rng.Float64()
		})
		data[i] = train.Example[*matrix.Dense]{ID: i + 1, Input: x, Target: 280}
	}
	data[1].Target = math.Inf(1)

	rec := &recorder{}
	tr, err := train.New[*matrix.Dense](m, train.WithEpochs(5), train.WithRecorder(rec))
	require.NoError(t, err)
	rep, err := tr.Fit(context.Background(), data, nil)

	assert.ErrorIs(t, err, train.ErrNonFinite)
	assert.NotContains(t, err.Error(), "nil matrix")
	assert.Equal(t, 1, rep.Epochs)
	assert.Equal(t, 1, rec.nonFinite)
	_, ok := optim.GradsFinite(m.Params())
	assert.True(t, ok)
}

func TestFit_ContextCanceledBetweenEpochs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr, err := train.New[float64](newLine(),
		train.WithEpochs(50),
		train.OnEpoch(func(s train.EpochStats) {
			if s.Epoch == 2 {
				cancel()
			}
		}),
	)
	require.NoError(t, err)

	rep, err := tr.Fit(ctx, examples(3), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, rep.Epochs)
}

func TestEvaluate(t *testing.T) {
	l := newLine()
	l.w.Value.Data()[0] = 2
	mse, err := train.Evaluate[float64](l, examples(3))
	require.NoError(t, err)
	assert.Equal(t, 1.0, mse)

	_, err = train.Evaluate[float64](l, nil)
	assert.ErrorIs(t, err, train.ErrNoExamples)

	l.w.Value.Data()[0] = math.Inf(1)
	_, err = train.Evaluate[float64](l, examples(1))
	assert.ErrorIs(t, err, train.ErrNonFinite)
}

func TestFit_FeedForwardBaseline(t *testing.T) {
	f, err := gnn.NewFeedForward(rand.New(rand.NewSource(1)), 3, 3, 5, 1)
	require.NoError(t, err)
	tr, err := train.New[[]float64](f, train.WithEpochs(50))
	require.NoError(t, err)

	ex := []train.Example[[]float64]{{ID: 1, Input: []float64{0.5, 0.2, 0.1}, Target: 1}}
	rep, err := tr.Fit(context.Background(), ex, nil)
	require.NoError(t, err)
	assert.Len(t, rep.TrainLoss, 50)
	assert.Equal(t, 1.0, rep.Example.Actual)
}
