package clustercore

import (
	"github.com/overlaymesh/clustercore/events"
	"github.com/overlaymesh/clustercore/framer"
)

// sealAndResetLocked seals m's queue and hands the result to the
// configured FrameSender, then reseeds the queue with a fresh IV. m must
// already be locked by the caller. A header-only queue seals to nothing and
// is a no-op, matching the framer's "empty flush does nothing" rule.
func (c *Cluster) sealAndResetLocked(m *member) {
	sealed, ok := framer.Seal(m.queue, m.linkKey)
	if ok {
		c.events.EmitEvent(events.FrameSealedEvent{Recipient: uint16(m.id), Bytes: len(sealed)})
		if c.opts.FrameSender != nil {
			c.opts.FrameSender(m.id, sealed)
		}
	}
	m.queue.Reset(uint16(c.registry.localID), uint16(m.id))
}

// broadcast enqueues the given sub-message to every current member and
// flushes each queue immediately. Used by the straight-broadcast
// replication operations.
func (c *Cluster) broadcast(typ byte, payload []byte) {
	for _, id := range c.registry.snapshotIDs() {
		m := c.registry.memberAt(id)
		m.Lock()
		if !m.queue.WouldExceed(len(payload)) {
			m.queue.Enqueue(typ, payload)
			c.sealAndResetLocked(m)
		} else {
			// flush whatever is already queued in the same critical section
			// before enqueuing, so we never drop-and-reacquire the lock.
			c.sealAndResetLocked(m)
			m.queue.Enqueue(typ, payload)
			c.sealAndResetLocked(m)
		}
		m.Unlock()
	}
}

// SendViaCluster is called by the switch when it cannot deliver a payload
// directly: look up the peer's owning member in the affinity map and hand
// the payload to that member's first advertised endpoint, bypassing
// overlay encryption since the payload is already overlay-encrypted.
func (c *Cluster) SendViaCluster(fromPeer, toPeer PeerAddress, payload []byte, uniteHint bool) bool {
	if len(payload) > MaxMessageLen {
		return false
	}

	entry, ok := c.affinity.lookup(toPeer)
	if !ok || entry.owner == c.registry.localID {
		return false
	}
	now := c.clock.Now()
	if now.Sub(entry.ts) >= c.opts.PeerActivityTimeout {
		return false
	}

	if uniteHint && c.opts.Topology != nil {
		if peer, ok := c.opts.Topology.GetPeerNoCache(fromPeer, now); ok {
			v4, v6 := peer.GetBestActiveAddresses(now)
			var remotePaths []InetAddress
			if v4 != nil {
				remotePaths = append(remotePaths, *v4)
			}
			if v6 != nil {
				remotePaths = append(remotePaths, *v6)
			}
			if len(remotePaths) > 0 {
				c.enqueueProxyUnite(entry.owner, ProxyUniteMessage{
					LocalPeer:   toPeer,
					RemotePeer:  fromPeer,
					RemotePaths: remotePaths,
				})
			}
		}
	}

	m := c.registry.memberAt(entry.owner)
	m.RLock()
	endpoints := m.endpoints
	var dst InetAddress
	haveDst := len(endpoints) > 0
	if haveDst {
		dst = endpoints[0]
	}
	m.RUnlock()
	if !haveDst || c.opts.Switch == nil {
		return false
	}
	return c.opts.Switch.PutPacket(nil, dst, payload) == nil
}

// enqueueProxyUnite enqueues a PROXY_UNITE sub-message to the given member.
// If the message would not fit, the queue is flushed first, in the same
// critical section; otherwise the message goes out with that member's next
// flush.
func (c *Cluster) enqueueProxyUnite(to MemberID, msg ProxyUniteMessage) {
	m := c.registry.memberAt(to)
	m.Lock()
	payload := encodeProxyUnite(msg)
	if m.queue.WouldExceed(len(payload)) {
		c.sealAndResetLocked(m)
	}
	m.queue.Enqueue(MsgProxyUnite, payload)
	m.Unlock()
}

// ReplicateHavePeer is called when we observe traffic from a peer on a path
// we own: takes ownership unconditionally and broadcasts if absent or owned
// elsewhere, debounces repeated calls while we already own it, and
// otherwise refreshes and broadcasts.
func (c *Cluster) ReplicateHavePeer(peerID PeerAddress, addr InetAddress) {
	now := c.clock.Now()
	entry, ok := c.affinity.lookup(peerID)

	if !ok || entry.owner != c.registry.localID {
		previous := uint16(0)
		if ok {
			previous = uint16(entry.owner)
		}
		c.affinity.set(peerID, c.registry.localID, now)
		c.events.EmitEvent(events.AffinityTakeoverEvent{
			Peer:     peerID.String(),
			OwnerID:  uint16(c.registry.localID),
			Previous: previous,
		})
	} else if now.Sub(entry.ts) < c.opts.HavePeerAnnouncePeriod {
		return
	} else {
		c.affinity.set(peerID, c.registry.localID, now)
	}

	if c.opts.IdentityCodec == nil || c.opts.Topology == nil {
		return
	}
	peer, ok := c.opts.Topology.GetPeerNoCache(peerID, now)
	if !ok {
		return
	}
	msg := HavePeerMessage{Identity: peer.Identity(), Address: addr}
	c.broadcast(MsgHavePeer, encodeHavePeer(c.opts.IdentityCodec, msg))
}

// ReplicateMulticastLike broadcasts a learned multicast subscription to
// every member.
func (c *Cluster) ReplicateMulticastLike(networkID uint64, address PeerAddress, group MulticastGroup) {
	msg := MulticastLikeMessage{NetworkID: networkID, Address: address, Group: group}
	c.broadcast(MsgMulticastLike, encodeMulticastLike(msg))
}

// ReplicateCertificateOfMembership broadcasts a raw COM payload to every
// member. The inbound handler only length-validates and drops it; see the
// COM handler in handlers.go.
func (c *Cluster) ReplicateCertificateOfMembership(com []byte) {
	c.broadcast(MsgCOM, com)
}
