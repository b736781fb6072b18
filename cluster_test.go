package clustercore

import (
	"net"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMulticast struct {
	networkID uint64
	group     MulticastGroup
	address   PeerAddress
	calls     int
}

func (r *recordingMulticast) Add(now time.Time, networkID uint64, group MulticastGroup, address PeerAddress) {
	r.networkID, r.group, r.address = networkID, group, address
	r.calls++
}

// newLinkedPair constructs two Clusters sharing the same private key
// material (so they derive the same master secret, per §3) with their
// FrameSender callbacks cross-wired directly into each other's
// HandleIncoming, simulating a lossless transport between exactly two
// members.
func newLinkedPair(t *testing.T) (a, b *Cluster, mcA, mcB *recordingMulticast, mockClock *clock.Mock) {
	mockClock = clock.NewMock()
	mcA, mcB = &recordingMulticast{}, &recordingMulticast{}

	var clusterA, clusterB *Cluster
	secret := []byte("shared cluster secret material")

	clusterA, err := New(1, secret, &Options{
		Clock:     mockClock,
		Multicast: mcA,
		FrameSender: func(member MemberID, frame []byte) {
			require.NoError(t, clusterB.HandleIncoming(frame))
		},
	})
	require.NoError(t, err)

	clusterB, err = New(2, secret, &Options{
		Clock:     mockClock,
		Multicast: mcB,
		FrameSender: func(member MemberID, frame []byte) {
			require.NoError(t, clusterA.HandleIncoming(frame))
		},
	})
	require.NoError(t, err)

	require.NoError(t, clusterA.AddMember(2, nil))
	require.NoError(t, clusterB.AddMember(1, nil))

	return clusterA, clusterB, mcA, mcB, mockClock
}

// S1-equivalent round trip: broadcasting a MULTICAST_LIKE from A reaches
// B's multicast oracle exactly once with the same fields.
func TestClusterMulticastLikeRoundTrip(t *testing.T) {
	a, _, _, mcB, _ := newLinkedPair(t)

	group := MulticastGroup{MAC: [6]byte{1, 2, 3, 4, 5, 6}, ADI: 0xAABBCCDD}
	addr := PeerAddress{1, 2, 3, 4, 5}
	a.ReplicateMulticastLike(0x1122334455667788, addr, group)

	assert.Equal(t, 1, mcB.calls)
	assert.Equal(t, uint64(0x1122334455667788), mcB.networkID)
	assert.Equal(t, group, mcB.group)
	assert.Equal(t, addr, mcB.address)
}

// S3: an inbound HAVE_PEER assigns affinity to the sender; our own
// replicate_have_peer then takes ownership for ourselves and broadcasts.
func TestAffinityTakeoverOnReplicateHavePeer(t *testing.T) {
	a, b, _, _, mockClock := newLinkedPair(t)

	peer := PeerAddress{1, 2, 3, 4, 5}
	entry, ok := a.affinity.lookup(peer)
	assert.False(t, ok)
	_ = entry

	// simulate member 2's HAVE_PEER reaching A directly, bypassing the
	// identity codec plumbing this scenario doesn't exercise.
	a.affinity.set(peer, b.localID, mockClock.Now())

	mockClock.Add(1000 * time.Millisecond)
	a.ReplicateHavePeer(peer, InetAddress{IP: net.ParseIP("203.0.113.9"), Port: 9993})

	entry, ok = a.affinity.lookup(peer)
	require.True(t, ok)
	assert.Equal(t, a.localID, entry.owner)
	assert.Equal(t, mockClock.Now(), entry.ts)
}

// S4: a second replicate_have_peer within HAVE_PEER_ANNOUNCE_PERIOD is a
// pure debounce: the timestamp does not move.
func TestAffinityDebounceWithinAnnouncePeriod(t *testing.T) {
	a, _, _, _, mockClock := newLinkedPair(t)

	peer := PeerAddress{1, 2, 3, 4, 5}
	addr := InetAddress{IP: net.ParseIP("203.0.113.9"), Port: 9993}

	a.ReplicateHavePeer(peer, addr)
	entry1, ok := a.affinity.lookup(peer)
	require.True(t, ok)

	mockClock.Add(a.opts.HavePeerAnnouncePeriod / 2)
	a.ReplicateHavePeer(peer, addr)

	entry2, ok := a.affinity.lookup(peer)
	require.True(t, ok)
	assert.Equal(t, entry1.ts, entry2.ts)
}

// S5: with an empty affinity map, send_via_cluster always misses.
func TestSendViaClusterMissOnEmptyAffinity(t *testing.T) {
	a, _, _, _, _ := newLinkedPair(t)

	ok := a.SendViaCluster(PeerAddress{9, 9, 9, 9, 9}, PeerAddress{1, 1, 1, 1, 1}, []byte("payload"), true)
	assert.False(t, ok)
}

func TestSendViaClusterRejectsOversizedPayload(t *testing.T) {
	a, _, _, _, _ := newLinkedPair(t)
	big := make([]byte, MaxMessageLen+1)
	assert.False(t, a.SendViaCluster(PeerAddress{1, 1, 1, 1, 1}, PeerAddress{2, 2, 2, 2, 2}, big, false))
}

// S6: with member 5 alive and closer than us, find_better_endpoint returns
// its matching-family endpoint; changing that endpoint's family to
// mismatch the peer's yields no redirect.
func TestFindBetterEndpointGeoRedirect(t *testing.T) {
	mockClock := clock.NewMock()
	geo := &stubGeolocator{point: Point3D{X: 200, Y: 0, Z: 0}, ok: true}

	c, err := New(1, []byte("secret"), &Options{Clock: mockClock, Geolocator: geo})
	require.NoError(t, err)
	require.NoError(t, c.AddMember(5, nil))

	m := c.registry.memberAt(5)
	m.Lock()
	m.location = Point3D{X: 100, Y: 0, Z: 0}
	m.lastReceivedAlive = mockClock.Now()
	m.endpoints = []InetAddress{{IP: net.ParseIP("203.0.113.5"), Port: 9993}}
	m.Unlock()

	peerPhys := InetAddress{IP: net.ParseIP("198.51.100.7"), Port: 9993}
	ep, ok := c.FindBetterEndpoint(PeerAddress{9, 9, 9, 9, 9}, peerPhys, false)
	require.True(t, ok)
	assert.Equal(t, uint16(9993), ep.Port)
	assert.Equal(t, "ip4", ep.Family())

	m.Lock()
	m.endpoints = []InetAddress{{IP: net.ParseIP("2001:db8::5"), Port: 9993}}
	m.Unlock()

	_, ok = c.FindBetterEndpoint(PeerAddress{9, 9, 9, 9, 9}, peerPhys, false)
	assert.False(t, ok)
}

type stubGeolocator struct {
	point Point3D
	ok    bool
}

func (s *stubGeolocator) Geolocate(InetAddress) (Point3D, bool) {
	return s.point, s.ok
}
