package clustercore

import (
	"time"

	"github.com/overlaymesh/clustercore/events"
	"github.com/overlaymesh/clustercore/util"
)

// FindBetterEndpoint consults the geolocation oracle on peerPhysAddr and, if
// some live member is geographically closer to the peer than the given
// baseline, returns an endpoint of that member matching the peer's address
// family. offload forces the baseline to +inf, so any reachable member
// wins; otherwise the baseline is our own distance to the peer.
func (c *Cluster) FindBetterEndpoint(peerAddress PeerAddress, peerPhysAddr InetAddress, offload bool) (InetAddress, bool) {
	if c.opts.Geolocator == nil {
		return InetAddress{}, false
	}
	point, ok := c.opts.Geolocator.Geolocate(peerPhysAddr)
	if !ok || point.IsUnknown() {
		return InetAddress{}, false
	}

	baseline := point.distance(c.localLocation)
	if offload {
		baseline = offloadBaseline
	}

	now := c.clock.Now()
	family := peerPhysAddr.Family()

	var bestID MemberID
	var bestEndpoints []InetAddress
	found := false

	for _, id := range c.registry.snapshotIDs() {
		m := c.registry.memberAt(id)
		m.RLock()
		alive := m.isAliveLocked(now) && !m.location.IsUnknown() && len(m.endpoints) > 0
		var loc Point3D
		var eps []InetAddress
		if alive {
			loc = m.location
			eps = append([]InetAddress{}, m.endpoints...)
		}
		m.RUnlock()
		if !alive {
			continue
		}
		dist := point.distance(loc)
		if dist < baseline {
			baseline = dist
			bestID = id
			bestEndpoints = eps
			found = true
		}
	}

	if !found {
		return InetAddress{}, false
	}

	for _, ep := range bestEndpoints {
		if ep.Family() == family {
			c.events.EmitEvent(events.RedirectDecisionEvent{
				Peer:    peerAddress.String(),
				Member:  uint16(bestID),
				Offload: offload,
			})
			return ep, true
		}
	}
	return InetAddress{}, false
}

// DoPeriodicTasks runs the three periodic actions described in §4.5: affinity
// GC, HAVE_PEER re-announcement, and ALIVE flush. The host is expected to
// call this at a cadence of roughly 1s or less; now is read once from the
// node clock by the caller (or StartPeriodicLoop).
func (c *Cluster) DoPeriodicTasks(now time.Time) {
	c.periodic.Lock()
	runGC := now.Sub(c.periodic.lastAffinityGC) >= 5*c.opts.PeerActivityTimeout
	if runGC {
		c.periodic.lastAffinityGC = now
	}
	runAnnounce := now.Sub(c.periodic.lastAnnounceCheck) >= c.opts.HavePeerAnnouncePeriod/4
	if runAnnounce {
		c.periodic.lastAnnounceCheck = now
	}
	runFlush := now.Sub(c.periodic.lastFlush) >= c.opts.ClusterFlushPeriod
	if runFlush {
		c.periodic.lastFlush = now
	}
	c.periodic.Unlock()

	if runGC {
		cutoff := now.Add(-5 * c.opts.PeerActivityTimeout)
		c.affinity.sweep(cutoff)
	}

	if runAnnounce && c.opts.Topology != nil {
		c.opts.Topology.EachPeer(func(p Peer) {
			path, ok := p.BestPath(now)
			if !ok {
				return
			}
			c.ReplicateHavePeer(p.Address(), path.PhysicalAddress())
		})
	}

	if runFlush {
		c.flushDueAlives(now)
	}

	c.events.EmitEvent(events.StatusSnapshotEvent{
		ClusterSize: len(c.registry.snapshotIDs()) + 1,
		Members:     c.statusMembers(),
	})
}

// flushDueAlives enqueues a fresh ALIVE to every member whose last
// announcement is due, per §4.5's CLUSTER_TIMEOUT/2-1s cadence, and flushes
// every member's queue, so sub-messages queued since the last flush go out
// on this tick.
func (c *Cluster) flushDueAlives(now time.Time) {
	due := c.opts.ClusterTimeout/2 - time.Second
	var location Point3D
	if c.opts.Geolocator != nil {
		location = c.localLocation
	}
	endpoints := c.localEndpoints()

	for _, id := range c.registry.snapshotIDs() {
		m := c.registry.memberAt(id)
		m.Lock()
		if now.Sub(m.lastAnnouncedAliveTo) < due {
			c.sealAndResetLocked(m)
			m.Unlock()
			continue
		}
		msg := AliveMessage{
			Proto:      1,
			Location:   location,
			LocalClock: uint64(util.UnixMS(now)),
			Load:       0,
			Flags:      0,
			Endpoints:  endpoints,
		}
		payload := encodeAlive(msg)
		if m.queue.WouldExceed(len(payload)) {
			c.sealAndResetLocked(m)
		}
		m.queue.Enqueue(MsgAlive, payload)
		c.sealAndResetLocked(m)
		m.lastAnnouncedAliveTo = now
		m.Unlock()

		c.events.EmitEvent(events.HeartbeatSentEvent{Member: uint16(id)})
	}
}

// localEndpoints returns our own advertised physical endpoints. It always
// returns nil: this core has no source for its own physical endpoints, so
// outbound ALIVE messages advertise none.
func (c *Cluster) localEndpoints() []InetAddress {
	return nil
}
