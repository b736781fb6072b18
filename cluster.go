// Package clustercore implements the member-to-member control plane of a
// peer-to-peer virtual-networking overlay: authenticated framing between
// cluster members, a replicated peer affinity table, proxy-forward and
// proxy-unite relaying, and geo-aware redirection. It is a library embedded
// in a host process, not a standalone service.
package clustercore

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/overlaymesh/clustercore/discovery"
	"github.com/overlaymesh/clustercore/events"
	"github.com/overlaymesh/clustercore/logger"
	"github.com/overlaymesh/clustercore/stats"
)

// Cluster is the embeddable cluster coordination core. The zero value is
// not usable; construct with New.
type Cluster struct {
	localID      MemberID
	masterSecret [64]byte
	localKey     [32]byte
	localLocation Point3D

	registry *registry
	affinity *affinityMap

	opts   *Options
	clock  clock.Clock
	log    logger.LogFacility
	events events.AsyncEventEmitter

	statsReporter *stats.Reporter

	running *atomic.Bool

	periodic struct {
		sync.Mutex
		lastAffinityGC    time.Time
		lastAnnounceCheck time.Time
		lastFlush         time.Time
	}

	loopStop chan bool
	loopWG   sync.WaitGroup

	handlers map[byte]func(MemberID, []byte) error
}

// New constructs a Cluster for the given local member id, deriving the
// master secret from privateKeyMaterial (the local overlay identity's
// private key material, per §3). Seed providers in opts are consulted once
// to issue AddMember calls before returning.
func New(localID MemberID, privateKeyMaterial []byte, opts *Options) (*Cluster, error) {
	opts = mergeDefaultOptions(opts)

	c := &Cluster{
		localID:       localID,
		masterSecret:  deriveMasterSecret(privateKeyMaterial),
		opts:          opts,
		clock:         opts.Clock,
		log:           opts.Logger,
		running:       atomic.NewBool(true),
	}
	c.localKey = deriveLinkKey(c.masterSecret, localID)
	c.registry = newRegistry(localID, c.masterSecret)
	c.affinity = newAffinityMap()
	c.registerHandlers()

	if c.opts.StatsSink != nil {
		c.statsReporter = stats.NewReporter("clustercore.", c.opts.StatsSink, &c.events)
	}

	now := c.clock.Now()
	c.periodic.lastAffinityGC = now
	c.periodic.lastAnnounceCheck = now
	c.periodic.lastFlush = now

	for _, loc := range opts.SeedProviders {
		seeds, err := discovery.Seeds(loc)
		if err != nil {
			c.logf("Registry", "seed provider error: %v", err)
			continue
		}
		for _, seed := range seeds {
			id := MemberID(seed.ID)
			if err := c.AddMember(id, nil); err != nil {
				c.logf("Registry", "seed AddMember(%d) failed: %v", seed.ID, err)
				continue
			}
			if ep, err := parseEndpoint(seed.Endpoint); err == nil {
				m := c.registry.memberAt(id)
				m.Lock()
				m.endpoints = []InetAddress{ep}
				m.Unlock()
			}
		}
	}

	c.events.EmitEvent(events.Ready{})
	return c, nil
}

func (c *Cluster) logf(facility, format string, args ...interface{}) {
	if c.log == nil {
		return
	}
	var l logger.Logger
	switch facility {
	case "Cluster":
		l = c.log.Cluster()
	case "Framer":
		l = c.log.Framer()
	case "Registry":
		l = c.log.Registry()
	case "Affinity":
		l = c.log.Affinity()
	case "Protocol":
		l = c.log.Protocol()
	case "Redirector":
		l = c.log.Redirector()
	default:
		l = c.log.Cluster()
	}
	l.Debugf(format, args...)
}

// AddMember adds a member to the cluster. The second argument is ignored;
// every caller in this module passes nil.
func (c *Cluster) AddMember(id MemberID, _ interface{}) error {
	if !c.running.Load() {
		return ErrDestroyed
	}
	if err := c.registry.add(id); err != nil {
		return err
	}
	c.logf("Registry", "added member %d", uint16(id))
	c.events.EmitEvent(events.MemberAddedEvent{ID: uint16(id)})
	return nil
}

// RemoveMember removes a member from the cluster. Per §7, misuse (unknown
// id) is a silent no-op at the protocol layer, but the public API still
// reports whether the id was actually removed.
func (c *Cluster) RemoveMember(id MemberID) error {
	if !c.running.Load() {
		return ErrDestroyed
	}
	if !c.registry.remove(id) {
		return ErrInvalidMemberID
	}
	c.logf("Registry", "removed member %d", uint16(id))
	c.events.EmitEvent(events.MemberRemovedEvent{ID: uint16(id)})
	return nil
}

// Destroy tears down the cluster: stops any running periodic loop and
// burns key material. The Cluster must not be used afterward.
func (c *Cluster) Destroy() error {
	if !c.running.CAS(true, false) {
		return ErrDestroyed
	}
	c.StopPeriodicLoop()

	var errs error
	zeroBytes(c.masterSecret[:])
	zeroBytes(c.localKey[:])
	zeroBytes(c.registry.masterSecret[:])
	for i := range c.registry.members {
		m := c.registry.members[i]
		m.Lock()
		zeroBytes(m.linkKey[:])
		m.Unlock()
	}

	c.events.EmitEvent(events.Destroyed{})
	return multierr.Append(errs, nil)
}
