package clustercore

import "time"

// Identity is the opaque cryptographic identity of an overlay peer. Its
// wire representation is owned by the overlay, not this core; Bytes must
// round-trip through whatever codec the host uses.
type Identity interface {
	Address() PeerAddress
	Bytes() []byte
}

// IdentityCodec (de)serializes opaque Identity values for the HAVE_PEER
// sub-message. The identity wire format itself belongs to the overlay;
// this core only needs to carry it as a length-prefixed byte string.
type IdentityCodec interface {
	Encode(id Identity) []byte
	Decode(b []byte) (id Identity, consumed int, err error)
}

// Path is one physical path a peer has been observed on.
type Path interface {
	PhysicalAddress() InetAddress
}

// Peer is the subset of overlay peer state the cluster core needs.
type Peer interface {
	Address() PeerAddress
	Identity() Identity
	BestPath(now time.Time) (Path, bool)
	// GetBestActiveAddresses returns the best active IPv4 and/or IPv6
	// address, either of which may be nil.
	GetBestActiveAddresses(now time.Time) (v4, v6 *InetAddress)
	RemovePathByAddress(phys InetAddress)
}

// Topology is the host's view of known overlay peers.
type Topology interface {
	GetPeerNoCache(addr PeerAddress, now time.Time) (Peer, bool)
	SaveIdentity(id Identity)
	EachPeer(visitor func(Peer))
	CountActive() int
}

// MulticastGroup identifies a multicast group within a network.
type MulticastGroup struct {
	MAC [6]byte
	ADI uint32
}

// MulticastOracle records multicast subscriptions learned from other
// members.
type MulticastOracle interface {
	Add(now time.Time, networkID uint64, group MulticastGroup, address PeerAddress)
}

// VerbRendezvous is the overlay control-packet verb used for NAT rendezvous
// hints built by the PROXY_UNITE handler.
const VerbRendezvous byte = 0x0e

// OverlayPacket is a control packet this core asks the switch to originate
// on its behalf; the packet body layout beyond Verb/Payload is owned by the
// overlay and treated as opaque by this core.
type OverlayPacket struct {
	Recipient PeerAddress
	Verb      byte
	Payload   []byte
}

// Switch is the outer packet switch that actually emits overlay packets.
type Switch interface {
	// Send dispatches an overlay control packet, optionally through the
	// overlay's own peer-to-peer encryption.
	Send(packet OverlayPacket, encrypt bool, networkID uint64) error
	// PutPacket hands an already-encrypted byte string directly to a
	// physical destination, bypassing overlay encryption.
	PutPacket(localSrc *InetAddress, dst InetAddress, payload []byte) error
}

// Geolocator maps a physical address to a point, or reports "no data yet".
// It may be lazy/cached underneath but must never block.
type Geolocator interface {
	Geolocate(addr InetAddress) (Point3D, bool)
}

// FrameSender emits one sealed frame to another member; it must be
// non-blocking from the cluster's point of view.
type FrameSender func(member MemberID, frame []byte)
