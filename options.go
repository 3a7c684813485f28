package matgo

import (
	"log/slog"

	"github.com/hupe1980/matgo/element"
	"github.com/hupe1980/matgo/energy"
	"github.com/hupe1980/matgo/magpie"
)

const defaultBatchConcurrency = 4

type options struct {
	store            *magpie.Store
	elements         element.Source
	energyClient     energy.Client
	reference        *energy.Reference
	metricsCollector MetricsCollector
	logger           *Logger
	concurrency      int
}

// Option configures Engine construction.
type Option func(*options)

// WithTableStore configures the property table store backing the table-based
// descriptors. Without a store, table-backed operations fail with
// ErrNoTableStore.
func WithTableStore(store *magpie.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithElementSource replaces the periodic-table attribute source.
//
// If nil is passed, the built-in source is used.
func WithElementSource(src element.Source) Option {
	return func(o *options) {
		if src == nil {
			src = element.Default()
		}
		o.elements = src
	}
}

// WithEnergyClient configures the formation-energy lookup used by
// CohesiveEnergy. Without a client, CohesiveEnergy fails with
// ErrNoEnergyClient.
//
// Example:
//
//	client := energy.NewRESTClient(os.Getenv("MP_API_KEY"))
//	eng := matgo.New(matgo.WithEnergyClient(client))
func WithEnergyClient(client energy.Client) Option {
	return func(o *options) {
		o.energyClient = client
	}
}

// WithCohesiveReference replaces the elemental cohesive-energy reference
// table.
//
// If nil is passed, the embedded tabulation is used.
func WithCohesiveReference(ref *energy.Reference) Option {
	return func(o *options) {
		if ref == nil {
			ref = energy.DefaultReference()
		}
		o.reference = ref
	}
}

// WithConcurrency bounds the fan-out of FeaturizeBatch.
// Values below 1 keep the default.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &matgo.BasicMetricsCollector{}
//	eng := matgo.New(matgo.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Featurizations: %d, Avg latency: %dns\n", stats.FeaturizeCount, stats.FeaturizeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := matgo.NewJSONLogger(slog.LevelInfo)
//	eng := matgo.New(matgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		elements:         element.Default(),
		reference:        energy.DefaultReference(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		concurrency:      defaultBatchConcurrency,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
