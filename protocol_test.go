package clustercore

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	addr PeerAddress
	raw  []byte
}

func (f fakeIdentity) Address() PeerAddress { return f.addr }
func (f fakeIdentity) Bytes() []byte        { return f.raw }

type fakeIdentityCodec struct{}

func (fakeIdentityCodec) Encode(id Identity) []byte { return id.Bytes() }
func (fakeIdentityCodec) Decode(b []byte) (Identity, int, error) {
	if len(b) < 5 {
		return nil, 0, errSubMessageTruncated
	}
	var addr PeerAddress
	copy(addr[:], b[:5])
	return fakeIdentity{addr: addr, raw: append([]byte{}, b...)}, len(b), nil
}

func TestEncodeDecodeAliveRoundTrip(t *testing.T) {
	m := AliveMessage{
		VMaj: 1, VMin: 2, VRev: 3, Proto: 9,
		Location:   Point3D{X: -5, Y: 10, Z: 0},
		LocalClock: 1000,
		Load:       42,
		Flags:      0,
		Endpoints: []InetAddress{
			{IP: net.ParseIP("203.0.113.5"), Port: 9993},
		},
	}

	decoded, err := decodeAlive(encodeAlive(m))
	require.NoError(t, err)
	assert.Equal(t, m.VMaj, decoded.VMaj)
	assert.Equal(t, m.Location, decoded.Location)
	assert.Equal(t, m.LocalClock, decoded.LocalClock)
	require.Len(t, decoded.Endpoints, 1)
	assert.Equal(t, uint16(9993), decoded.Endpoints[0].Port)
}

func TestEncodeDecodeHavePeerRoundTrip(t *testing.T) {
	codec := fakeIdentityCodec{}
	addr := PeerAddress{1, 2, 3, 4, 5}
	m := HavePeerMessage{
		Identity: fakeIdentity{addr: addr, raw: []byte{1, 2, 3, 4, 5, 9, 9}},
		Address:  InetAddress{IP: net.ParseIP("198.51.100.7"), Port: 9993},
	}

	decoded, err := decodeHavePeer(codec, encodeHavePeer(codec, m))
	require.NoError(t, err)
	assert.Equal(t, addr, decoded.Identity.Address())
	assert.Equal(t, uint16(9993), decoded.Address.Port)
}

func TestEncodeDecodeMulticastLikeRoundTrip(t *testing.T) {
	m := MulticastLikeMessage{
		NetworkID: 0x1122334455667788,
		Address:   PeerAddress{1, 2, 3, 4, 5},
		Group:     MulticastGroup{MAC: [6]byte{1, 2, 3, 4, 5, 6}, ADI: 0xAABBCCDD},
	}

	decoded, err := decodeMulticastLike(encodeMulticastLike(m))
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestEncodeDecodeProxyUniteRoundTrip(t *testing.T) {
	m := ProxyUniteMessage{
		LocalPeer:  PeerAddress{1, 1, 1, 1, 1},
		RemotePeer: PeerAddress{2, 2, 2, 2, 2},
		RemotePaths: []InetAddress{
			{IP: net.ParseIP("203.0.113.9"), Port: 1234},
		},
	}

	decoded, err := decodeProxyUnite(encodeProxyUnite(m))
	require.NoError(t, err)
	assert.Equal(t, m.LocalPeer, decoded.LocalPeer)
	assert.Equal(t, m.RemotePeer, decoded.RemotePeer)
	require.Len(t, decoded.RemotePaths, 1)
}

func TestEncodeDecodeProxySendRoundTrip(t *testing.T) {
	m := ProxySendMessage{
		Recipient: PeerAddress{9, 9, 9, 9, 9},
		Verb:      VerbRendezvous,
		Payload:   []byte("hello"),
	}

	decoded, err := decodeProxySend(encodeProxySend(m))
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestDecodeTruncatedSubMessagesError(t *testing.T) {
	_, err := decodeMulticastLike([]byte{1, 2, 3})
	assert.Equal(t, errSubMessageTruncated, err)

	_, err = decodeProxySend([]byte{1, 2, 3})
	assert.Equal(t, errSubMessageTruncated, err)
}
