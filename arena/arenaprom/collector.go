// Package arenaprom exports arena and fill statistics as Prometheus metrics.
package arenaprom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/bumpfill"
	"github.com/pavanmanishd/bumpfill/arena"
)

// MetricsSource is anything that can snapshot arena metrics.
// *arena.Arena and *arena.SafeArena implement it; a plain Arena must not be
// scraped while another goroutine allocates from it.
type MetricsSource interface {
	Metrics() arena.ArenaMetrics
}

// Collector implements prometheus.Collector over one arena and, optionally,
// the fill counters of a bumpfill.Builder.
type Collector struct {
	src   MetricsSource
	stats *bumpfill.Stats

	sizeInUse    *prometheus.Desc
	capacity     *prometheus.Desc
	chunks       *prometheus.Desc
	utilization  *prometheus.Desc
	reservations *prometheus.Desc
	exhaustions  *prometheus.Desc

	fills            *prometheus.Desc
	destroyed        *prometheus.Desc
	heapSpills       *prometheus.Desc
	lengthViolations *prometheus.Desc
}

// Option configures a Collector.
type Option func(*Collector)

// WithFillStats adds the fill counters in s to the collector.
func WithFillStats(s *bumpfill.Stats) Option {
	return func(c *Collector) {
		c.stats = s
	}
}

// NewCollector returns a collector for src. namespace prefixes every metric
// name; constLabels are attached to all of them.
func NewCollector(src MetricsSource, namespace string, constLabels prometheus.Labels, opts ...Option) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", name), help, labels, constLabels)
	}
	c := &Collector{
		src:          src,
		sizeInUse:    desc("size_in_use_bytes", "Bytes currently allocated in the arena"),
		capacity:     desc("capacity_bytes", "Total capacity of all arena chunks"),
		chunks:       desc("chunks", "Number of arena chunks"),
		utilization:  desc("utilization_ratio", "Ratio of bytes in use to capacity"),
		reservations: desc("reservations_total", "Successful non-empty reservations"),
		exhaustions:  desc("exhaustions_total", "Reservations refused because the arena could not grow"),

		fills:            desc("fills_total", "Fill operations by outcome", "outcome"),
		destroyed:        desc("fill_destroyed_elements_total", "Elements destroyed by abandoned fills"),
		heapSpills:       desc("fill_heap_spills_total", "Fill blocks placed on the Go heap"),
		lengthViolations: desc("fill_length_violations_total", "Streams whose item count disagreed with their length"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sizeInUse
	ch <- c.capacity
	ch <- c.chunks
	ch <- c.utilization
	ch <- c.reservations
	ch <- c.exhaustions
	if c.stats != nil {
		ch <- c.fills
		ch <- c.destroyed
		ch <- c.heapSpills
		ch <- c.lengthViolations
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.sizeInUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.chunks, prometheus.GaugeValue, float64(m.NumChunks))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
	ch <- prometheus.MustNewConstMetric(c.reservations, prometheus.CounterValue, float64(m.Reservations))
	ch <- prometheus.MustNewConstMetric(c.exhaustions, prometheus.CounterValue, float64(m.Exhaustions))

	if c.stats == nil {
		return
	}
	s := c.stats.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.fills, prometheus.CounterValue, float64(s.Finished), "finished")
	ch <- prometheus.MustNewConstMetric(c.fills, prometheus.CounterValue, float64(s.Abandoned), "abandoned")
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue, float64(s.Destroyed))
	ch <- prometheus.MustNewConstMetric(c.heapSpills, prometheus.CounterValue, float64(s.HeapSpills))
	ch <- prometheus.MustNewConstMetric(c.lengthViolations, prometheus.CounterValue, float64(s.LengthViolations))
}
