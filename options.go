package clustercore

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/uber-common/bark"

	"github.com/overlaymesh/clustercore/discovery"
	"github.com/overlaymesh/clustercore/logger"
	"github.com/overlaymesh/clustercore/stats"
	"github.com/overlaymesh/clustercore/util"
)

// Options configures a Cluster at construction time. Zero-valued fields are
// filled in by mergeDefaultOptions, grounded on the teacher's
// Options/defaultOptions pattern.
type Options struct {
	// ClusterTimeout, ClusterFlushPeriod, HavePeerAnnouncePeriod, and
	// PeerActivityTimeout override the package constants of the same name
	// when non-zero, for the periodic loop and SendViaCluster. Member
	// liveness (FindBetterEndpoint, Status) and Status peer counts always
	// use the ClusterTimeout and PeerActivityTimeout constants.
	ClusterTimeout         time.Duration
	ClusterFlushPeriod     time.Duration
	HavePeerAnnouncePeriod time.Duration
	PeerActivityTimeout    time.Duration

	Clock clock.Clock

	Logger    logger.LogFacility
	BarkSink  bark.Logger
	StatsSink stats.Sink

	IdentityCodec IdentityCodec
	Geolocator    Geolocator
	Topology      Topology
	Switch        Switch
	Multicast     MulticastOracle

	// FrameSender emits one sealed frame to another member; required for
	// any outbound traffic (flush, replication broadcasts, PROXY_SEND).
	FrameSender FrameSender

	// SeedProviders are consulted once at New() to issue AddMember calls
	// before the periodic loop starts, adapting the teacher's discovery
	// providers to member-id-aware seed tuples.
	SeedProviders []discovery.Locator
}

func defaultOptions() *Options {
	return &Options{
		ClusterTimeout:         ClusterTimeout,
		ClusterFlushPeriod:     ClusterFlushPeriod,
		HavePeerAnnouncePeriod: HavePeerAnnouncePeriod,
		PeerActivityTimeout:    PeerActivityTimeout,
		Clock:                  clock.New(),
		StatsSink:              stats.NoopSink{},
	}
}

func mergeDefaultOptions(opts *Options) *Options {
	def := defaultOptions()
	if opts == nil {
		return def
	}

	opts.ClusterTimeout = util.SelectDuration(opts.ClusterTimeout, def.ClusterTimeout)
	opts.ClusterFlushPeriod = util.SelectDuration(opts.ClusterFlushPeriod, def.ClusterFlushPeriod)
	opts.HavePeerAnnouncePeriod = util.SelectDuration(opts.HavePeerAnnouncePeriod, def.HavePeerAnnouncePeriod)
	opts.PeerActivityTimeout = util.SelectDuration(opts.PeerActivityTimeout, def.PeerActivityTimeout)

	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if opts.StatsSink == nil {
		opts.StatsSink = def.StatsSink
	}

	return opts
}
