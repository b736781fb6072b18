// Package stats subscribes to cluster events and reports them through
// rcrowley/go-metrics counters/gauges, optionally mirrored to a statsd
// sink, grounded on the teacher's event-driven statter.
package stats

import (
	"time"

	"github.com/cactus/go-statsd-client/statsd"
	"github.com/rcrowley/go-metrics"

	"github.com/overlaymesh/clustercore/events"
)

// Sink is the narrow interface the reporter pushes through; tests
// substitute a no-op, production wires a statsd.Statter.
type Sink interface {
	IncCounter(name string, value int64)
	UpdateGauge(name string, value int64)
	RecordTimer(name string, d time.Duration)
}

// NoopSink discards every measurement; it is the default Sink when
// Options.StatsSink is left nil.
type NoopSink struct{}

func (NoopSink) IncCounter(name string, value int64)        {}
func (NoopSink) UpdateGauge(name string, value int64)       {}
func (NoopSink) RecordTimer(name string, d time.Duration)   {}

// StatsdSink adapts a cactus go-statsd-client Statter to the Sink
// interface, an alternate push-over-UDP sink selected by Options.
type StatsdSink struct {
	Statter statsd.Statter
}

func (s StatsdSink) IncCounter(name string, value int64) {
	s.Statter.Inc(name, value, 1.0)
}

func (s StatsdSink) UpdateGauge(name string, value int64) {
	s.Statter.Gauge(name, value, 1.0)
}

func (s StatsdSink) RecordTimer(name string, d time.Duration) {
	s.Statter.TimingDuration(name, d, 1.0)
}

// Registry exposes the go-metrics counters/gauges kept in step with every
// event, for in-process inspection (e.g. by an admin endpoint) separately
// from whatever external Sink is configured.
type Registry struct {
	metrics.Registry
}

// Reporter subscribes to a cluster's event emitter and maps domain events
// onto metrics, mirrored to an external Sink.
type Reporter struct {
	prefix   string
	sink     Sink
	registry metrics.Registry
}

// NewReporter attaches a Reporter to emitter and returns it; emitter is
// typically a *events.AsyncEventEmitter so a slow sink never blocks the
// caller holding a cluster lock.
func NewReporter(prefix string, sink Sink, emitter events.EventRegistrar) *Reporter {
	if sink == nil {
		sink = NoopSink{}
	}
	r := &Reporter{
		prefix:   prefix,
		sink:     sink,
		registry: metrics.NewRegistry(),
	}
	emitter.RegisterListener(events.EventListener(listenerFunc(r.onEvent)))
	return r
}

// listenerFunc adapts a plain function to events.EventListener.
type listenerFunc func(events.Event)

func (f listenerFunc) HandleEvent(e events.Event) { f(e) }

// Metrics returns the underlying go-metrics registry so a host can expose
// it through its own admin/metrics endpoint.
func (r *Reporter) Metrics() metrics.Registry {
	return r.registry
}

func (r *Reporter) counter(name string) metrics.Counter {
	return metrics.GetOrRegisterCounter(r.prefix+name, r.registry)
}

func (r *Reporter) gauge(name string) metrics.Gauge {
	return metrics.GetOrRegisterGauge(r.prefix+name, r.registry)
}

func (r *Reporter) onEvent(event events.Event) {
	switch e := event.(type) {
	case events.MemberAddedEvent:
		r.counter("member.added").Inc(1)
		r.sink.IncCounter(r.prefix+"member.added", 1)

	case events.MemberRemovedEvent:
		r.counter("member.removed").Inc(1)
		r.sink.IncCounter(r.prefix+"member.removed", 1)

	case events.FrameSealedEvent:
		r.counter("frame.sealed").Inc(1)
		r.sink.IncCounter(r.prefix+"frame.sealed", 1)

	case events.FrameDroppedEvent:
		r.counter("frame.dropped").Inc(1)
		r.sink.IncCounter(r.prefix+"frame.dropped", 1)

	case events.AffinityTakeoverEvent:
		r.counter("affinity.takeover").Inc(1)
		r.sink.IncCounter(r.prefix+"affinity.takeover", 1)

	case events.ProxyUniteSentEvent:
		r.counter("proxy.unite").Inc(1)
		r.sink.IncCounter(r.prefix+"proxy.unite", 1)

	case events.RedirectDecisionEvent:
		r.counter("redirect.decision").Inc(1)
		r.sink.IncCounter(r.prefix+"redirect.decision", 1)

	case events.HeartbeatSentEvent:
		r.counter("heartbeat.sent").Inc(1)
		r.sink.IncCounter(r.prefix+"heartbeat.sent", 1)

	case events.StatusSnapshotEvent:
		r.gauge("cluster.size").Update(int64(e.ClusterSize))
		r.sink.UpdateGauge(r.prefix+"cluster.size", int64(e.ClusterSize))
		for _, m := range e.Members {
			r.sink.UpdateGauge(r.prefix+"member.peer-count", int64(m.PeerCount))
		}
	}
}
