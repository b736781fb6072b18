package main

import (
	"sync"
	"time"

	"github.com/overlaymesh/clustercore"
)

// These are minimal in-memory stand-ins for the host interfaces a real
// overlay implementation would supply (topology, switch, multicast,
// geolocation, identity codec). They exist only to give this demo binary
// something concrete to drive; a production host wires its own.

type demoIdentity struct {
	addr clustercore.PeerAddress
	raw  []byte
}

func (d demoIdentity) Address() clustercore.PeerAddress { return d.addr }
func (d demoIdentity) Bytes() []byte                    { return d.raw }

type demoIdentityCodec struct{}

func (demoIdentityCodec) Encode(id clustercore.Identity) []byte {
	return id.Bytes()
}

func (demoIdentityCodec) Decode(b []byte) (clustercore.Identity, int, error) {
	if len(b) < 5 {
		return nil, 0, errShortIdentity
	}
	var addr clustercore.PeerAddress
	copy(addr[:], b[:5])
	return demoIdentity{addr: addr, raw: append([]byte{}, b...)}, len(b), nil
}

type demoPath struct {
	phys clustercore.InetAddress
}

func (p demoPath) PhysicalAddress() clustercore.InetAddress { return p.phys }

type demoPeer struct {
	addr     clustercore.PeerAddress
	identity clustercore.Identity
	v4, v6   *clustercore.InetAddress
}

func (p *demoPeer) Address() clustercore.PeerAddress  { return p.addr }
func (p *demoPeer) Identity() clustercore.Identity    { return p.identity }
func (p *demoPeer) RemovePathByAddress(clustercore.InetAddress) {}

func (p *demoPeer) BestPath(time.Time) (clustercore.Path, bool) {
	if p.v4 != nil {
		return demoPath{phys: *p.v4}, true
	}
	if p.v6 != nil {
		return demoPath{phys: *p.v6}, true
	}
	return nil, false
}

func (p *demoPeer) GetBestActiveAddresses(time.Time) (v4, v6 *clustercore.InetAddress) {
	return p.v4, p.v6
}

// demoTopology is a fixed, process-local set of peers; a real host tracks
// these dynamically as packets arrive.
type demoTopology struct {
	mu    sync.RWMutex
	peers map[clustercore.PeerAddress]*demoPeer
}

func newDemoTopology() *demoTopology {
	return &demoTopology{peers: make(map[clustercore.PeerAddress]*demoPeer)}
}

func (t *demoTopology) GetPeerNoCache(addr clustercore.PeerAddress, now time.Time) (clustercore.Peer, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.peers[addr]
	if !ok {
		return nil, false
	}
	return p, true
}

func (t *demoTopology) SaveIdentity(id clustercore.Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	addr := id.Address()
	p, ok := t.peers[addr]
	if !ok {
		p = &demoPeer{addr: addr}
		t.peers[addr] = p
	}
	p.identity = id
}

func (t *demoTopology) EachPeer(visitor func(clustercore.Peer)) {
	t.mu.RLock()
	peers := make([]*demoPeer, 0, len(t.peers))
	for _, p := range t.peers {
		peers = append(peers, p)
	}
	t.mu.RUnlock()
	for _, p := range peers {
		visitor(p)
	}
}

func (t *demoTopology) CountActive() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.peers)
}

// demoSwitch just logs the overlay packets and raw payloads it is asked to
// emit; a real switch would hand them to the overlay's own transport.
type demoSwitch struct {
	log func(format string, args ...interface{})
}

func (s demoSwitch) Send(packet clustercore.OverlayPacket, encrypt bool, networkID uint64) error {
	s.log("switch: send verb=%#x to=%s encrypt=%v bytes=%d", packet.Verb, packet.Recipient, encrypt, len(packet.Payload))
	return nil
}

func (s demoSwitch) PutPacket(localSrc *clustercore.InetAddress, dst clustercore.InetAddress, payload []byte) error {
	s.log("switch: put %d bytes to %s", len(payload), dst)
	return nil
}

// demoMulticast records subscriptions in memory.
type demoMulticast struct {
	mu   sync.Mutex
	subs []clustercore.MulticastGroup
}

func (m *demoMulticast) Add(now time.Time, networkID uint64, group clustercore.MulticastGroup, address clustercore.PeerAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, group)
}

// demoGeolocator always reports "no data"; wiring a real provider is a
// deployment concern, not a demo one.
type demoGeolocator struct{}

func (demoGeolocator) Geolocate(clustercore.InetAddress) (clustercore.Point3D, bool) {
	return clustercore.Point3D{}, false
}

var errShortIdentity = shortIdentityError{}

type shortIdentityError struct{}

func (shortIdentityError) Error() string { return "clusterdemo: identity too short" }
