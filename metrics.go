package matgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    featurizeCounter   prometheus.Counter
//	    featurizeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordFeaturize(duration time.Duration, err error) {
//	    p.featurizeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordExpand is called after each per-atom expansion.
	// duration is the total time taken, err is nil if successful.
	RecordExpand(duration time.Duration, err error)

	// RecordFeaturize is called after each feature-vector assembly.
	RecordFeaturize(duration time.Duration, err error)

	// RecordTableLoad is called after each property table load, including
	// loads served from the cache.
	RecordTableLoad(duration time.Duration, err error)

	// RecordEnergyLookup is called after each formation-energy lookup.
	RecordEnergyLookup(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExpand(time.Duration, error)       {}
func (NoopMetricsCollector) RecordFeaturize(time.Duration, error)    {}
func (NoopMetricsCollector) RecordTableLoad(time.Duration, error)    {}
func (NoopMetricsCollector) RecordEnergyLookup(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ExpandCount            atomic.Int64
	ExpandErrors           atomic.Int64
	ExpandTotalNanos       atomic.Int64
	FeaturizeCount         atomic.Int64
	FeaturizeErrors        atomic.Int64
	FeaturizeTotalNanos    atomic.Int64
	TableLoadCount         atomic.Int64
	TableLoadErrors        atomic.Int64
	EnergyLookupCount      atomic.Int64
	EnergyLookupErrors     atomic.Int64
	EnergyLookupTotalNanos atomic.Int64
}

// RecordExpand implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpand(duration time.Duration, err error) {
	b.ExpandCount.Add(1)
	b.ExpandTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExpandErrors.Add(1)
	}
}

// RecordFeaturize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFeaturize(duration time.Duration, err error) {
	b.FeaturizeCount.Add(1)
	b.FeaturizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FeaturizeErrors.Add(1)
	}
}

// RecordTableLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTableLoad(duration time.Duration, err error) {
	b.TableLoadCount.Add(1)
	if err != nil {
		b.TableLoadErrors.Add(1)
	}
}

// RecordEnergyLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnergyLookup(duration time.Duration, err error) {
	b.EnergyLookupCount.Add(1)
	b.EnergyLookupTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EnergyLookupErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ExpandCount:          b.ExpandCount.Load(),
		ExpandErrors:         b.ExpandErrors.Load(),
		ExpandAvgNanos:       b.getAvgExpandNanos(),
		FeaturizeCount:       b.FeaturizeCount.Load(),
		FeaturizeErrors:      b.FeaturizeErrors.Load(),
		FeaturizeAvgNanos:    b.getAvgFeaturizeNanos(),
		TableLoadCount:       b.TableLoadCount.Load(),
		TableLoadErrors:      b.TableLoadErrors.Load(),
		EnergyLookupCount:    b.EnergyLookupCount.Load(),
		EnergyLookupErrors:   b.EnergyLookupErrors.Load(),
		EnergyLookupAvgNanos: b.getAvgEnergyLookupNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgExpandNanos() int64 {
	count := b.ExpandCount.Load()
	if count == 0 {
		return 0
	}
	return b.ExpandTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgFeaturizeNanos() int64 {
	count := b.FeaturizeCount.Load()
	if count == 0 {
		return 0
	}
	return b.FeaturizeTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgEnergyLookupNanos() int64 {
	count := b.EnergyLookupCount.Load()
	if count == 0 {
		return 0
	}
	return b.EnergyLookupTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ExpandCount          int64
	ExpandErrors         int64
	ExpandAvgNanos       int64
	FeaturizeCount       int64
	FeaturizeErrors      int64
	FeaturizeAvgNanos    int64
	TableLoadCount       int64
	TableLoadErrors      int64
	EnergyLookupCount    int64
	EnergyLookupErrors   int64
	EnergyLookupAvgNanos int64
}
