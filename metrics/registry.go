// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every metric name.
const Namespace = "aquanet"

// Registry holds all metrics of one process or test.
type Registry struct {
	// Training
	EpochsTotal     prometheus.Counter
	EpochLoss       prometheus.Gauge
	EpochDuration   prometheus.Histogram
	TestLoss        prometheus.Gauge
	NonFiniteTotal  prometheus.Counter
	RunsTotal       *prometheus.CounterVec
	TrainableParams prometheus.Gauge

	// Data
	SamplesGeneratedTotal prometheus.Counter
	SamplesLoadedTotal    prometheus.Counter

	// Allocation
	EquityIndex *prometheus.GaugeVec
	EquityGini  *prometheus.GaugeVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// NewRegistry creates a registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initTrainingMetrics()
	r.initDataMetrics()
	r.initEquityMetrics()

	return r
}

func (r *Registry) initTrainingMetrics() {
	factory := promauto.With(r.registry)

	r.EpochsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "training_epochs_total",
		Help:      "Total number of completed training epochs",
	})
	r.EpochLoss = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "training_epoch_loss",
		Help:      "Mean squared error of the most recent training epoch",
	})
	r.EpochDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "training_epoch_duration_seconds",
		Help:      "Wall time of one training epoch",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	r.TestLoss = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "training_test_loss",
		Help:      "Mean squared error on the held-out split after training",
	})
	r.NonFiniteTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "training_nonfinite_total",
		Help:      "Epochs aborted by a NaN or Inf loss or gradient",
	})
	r.RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "training_runs_total",
		Help:      "Training runs by model and outcome",
	}, []string{"model", "status"}) // gcn|baseline, ok|error
	r.TrainableParams = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "model_trainable_parameters",
		Help:      "Number of trainable scalars in the current model",
	})
}

func (r *Registry) initDataMetrics() {
	factory := promauto.With(r.registry)

	r.SamplesGeneratedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "samples_generated_total",
		Help:      "Synthetic samples drawn",
	})
	r.SamplesLoadedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "samples_loaded_total",
		Help:      "Samples read from dataset files",
	})
}

func (r *Registry) initEquityMetrics() {
	factory := promauto.With(r.registry)

	r.EquityIndex = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "equity_index",
		Help:      "Equity index (100 - CV of sector satisfaction) of the latest allocation",
	}, []string{"allocation"})
	r.EquityGini = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "equity_gini",
		Help:      "Gini coefficient of sector satisfaction of the latest allocation",
	}, []string{"allocation"})
}

// ObserveEpoch records one finished epoch.
func (r *Registry) ObserveEpoch(loss float64, d time.Duration) {
	r.EpochsTotal.Inc()
	r.EpochLoss.Set(loss)
	r.EpochDuration.Observe(d.Seconds())
}

// ObserveTest records the post-training test loss.
func (r *Registry) ObserveTest(loss float64) { r.TestLoss.Set(loss) }

// ObserveNonFinite counts an epoch that hit a non-finite value.
func (r *Registry) ObserveNonFinite() { r.NonFiniteTotal.Inc() }

// RecordRun counts a finished run of model ("gcn", "baseline").
func (r *Registry) RecordRun(model string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.RunsTotal.WithLabelValues(model, status).Inc()
}

// ObserveEquity records the scores of an allocation ("proportional",
// "optimized").
func (r *Registry) ObserveEquity(allocation string, index, gini float64) {
	r.EquityIndex.WithLabelValues(allocation).Set(index)
	r.EquityGini.WithLabelValues(allocation).Set(gini)
}

// SampleGenerated counts one synthetic sample.
func (r *Registry) SampleGenerated() { r.SamplesGeneratedTotal.Inc() }

// SamplesLoaded counts n samples read from disk.
func (r *Registry) SamplesLoaded(n int) { r.SamplesLoadedTotal.Add(float64(n)) }

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry { return r.registry }

// Gather returns the current metric families.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) { return r.registry.Gather() }

// WriteText writes every metric family in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}
