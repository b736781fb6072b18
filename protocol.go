package clustercore

import (
	"encoding/binary"
	"errors"
)

// Sub-message types, §4.2. All multi-byte integers are big-endian.
const (
	MsgAlive         byte = 1
	MsgHavePeer      byte = 2
	MsgMulticastLike byte = 3
	MsgCOM           byte = 4
	MsgProxyUnite    byte = 5
	MsgProxySend     byte = 6
)

var errSubMessageTruncated = errors.New("clustercore: sub-message truncated")

// AliveMessage is the periodic heartbeat/announcement sub-message.
type AliveMessage struct {
	VMaj, VMin, VRev uint16
	Proto            uint8
	Location         Point3D
	LocalClock       uint64
	Load             uint64
	Flags            uint64
	Endpoints        []InetAddress
}

func encodeAlive(m AliveMessage) []byte {
	buf := make([]byte, 0, 2+2+2+1+4+4+4+8+8+8+1)
	buf = appendU16(buf, m.VMaj)
	buf = appendU16(buf, m.VMin)
	buf = appendU16(buf, m.VRev)
	buf = append(buf, m.Proto)
	buf = appendI32(buf, m.Location.X)
	buf = appendI32(buf, m.Location.Y)
	buf = appendI32(buf, m.Location.Z)
	buf = appendU64(buf, m.LocalClock)
	buf = appendU64(buf, m.Load)
	buf = appendU64(buf, m.Flags)
	buf = append(buf, byte(len(m.Endpoints)))
	for _, ep := range m.Endpoints {
		buf = append(buf, ep.Bytes()...)
	}
	return buf
}

func decodeAlive(b []byte) (AliveMessage, error) {
	if len(b) < 44 {
		return AliveMessage{}, errSubMessageTruncated
	}
	var m AliveMessage
	m.VMaj = binary.BigEndian.Uint16(b[0:2])
	m.VMin = binary.BigEndian.Uint16(b[2:4])
	m.VRev = binary.BigEndian.Uint16(b[4:6])
	m.Proto = b[6]
	m.Location.X = int32(binary.BigEndian.Uint32(b[7:11]))
	m.Location.Y = int32(binary.BigEndian.Uint32(b[11:15]))
	m.Location.Z = int32(binary.BigEndian.Uint32(b[15:19]))
	m.LocalClock = binary.BigEndian.Uint64(b[19:27])
	m.Load = binary.BigEndian.Uint64(b[27:35])
	m.Flags = binary.BigEndian.Uint64(b[35:43])
	n := int(b[43])
	rest := b[44:]
	for i := 0; i < n; i++ {
		ep, consumed, err := DecodeInetAddress(rest)
		if err != nil {
			return AliveMessage{}, err
		}
		m.Endpoints = append(m.Endpoints, ep)
		rest = rest[consumed:]
	}
	return m, nil
}

// HavePeerMessage announces ownership of a peer address. The identity is
// carried as an opaque length-prefixed byte string, per §6's guidance to
// treat identity/address codecs as opaque.
type HavePeerMessage struct {
	Identity Identity
	Address  InetAddress
}

func encodeHavePeer(codec IdentityCodec, m HavePeerMessage) []byte {
	idBytes := codec.Encode(m.Identity)
	buf := make([]byte, 0, 2+len(idBytes)+19)
	buf = appendU16(buf, uint16(len(idBytes)))
	buf = append(buf, idBytes...)
	buf = append(buf, m.Address.Bytes()...)
	return buf
}

func decodeHavePeer(codec IdentityCodec, b []byte) (HavePeerMessage, error) {
	if len(b) < 2 {
		return HavePeerMessage{}, errSubMessageTruncated
	}
	idLen := int(binary.BigEndian.Uint16(b[0:2]))
	rest := b[2:]
	if len(rest) < idLen {
		return HavePeerMessage{}, errSubMessageTruncated
	}
	identity, consumed, err := codec.Decode(rest[:idLen])
	if err != nil || consumed > idLen {
		return HavePeerMessage{}, errSubMessageTruncated
	}
	rest = rest[idLen:]
	addr, _, err := DecodeInetAddress(rest)
	if err != nil {
		return HavePeerMessage{}, err
	}
	return HavePeerMessage{Identity: identity, Address: addr}, nil
}

// MulticastLikeMessage replicates a learned multicast subscription.
type MulticastLikeMessage struct {
	NetworkID uint64
	Address   PeerAddress
	Group     MulticastGroup
}

func encodeMulticastLike(m MulticastLikeMessage) []byte {
	buf := make([]byte, 0, 8+5+6+4)
	buf = appendU64(buf, m.NetworkID)
	buf = append(buf, m.Address[:]...)
	buf = append(buf, m.Group.MAC[:]...)
	buf = appendU32(buf, m.Group.ADI)
	return buf
}

func decodeMulticastLike(b []byte) (MulticastLikeMessage, error) {
	if len(b) < 8+5+6+4 {
		return MulticastLikeMessage{}, errSubMessageTruncated
	}
	var m MulticastLikeMessage
	m.NetworkID = binary.BigEndian.Uint64(b[0:8])
	copy(m.Address[:], b[8:13])
	copy(m.Group.MAC[:], b[13:19])
	m.Group.ADI = binary.BigEndian.Uint32(b[19:23])
	return m, nil
}

// ProxyUniteMessage asks the receiver to help rendezvous two peers.
type ProxyUniteMessage struct {
	LocalPeer   PeerAddress
	RemotePeer  PeerAddress
	RemotePaths []InetAddress
}

func encodeProxyUnite(m ProxyUniteMessage) []byte {
	buf := make([]byte, 0, 5+5+1)
	buf = append(buf, m.LocalPeer[:]...)
	buf = append(buf, m.RemotePeer[:]...)
	buf = append(buf, byte(len(m.RemotePaths)))
	for _, p := range m.RemotePaths {
		buf = append(buf, p.Bytes()...)
	}
	return buf
}

func decodeProxyUnite(b []byte) (ProxyUniteMessage, error) {
	if len(b) < 11 {
		return ProxyUniteMessage{}, errSubMessageTruncated
	}
	var m ProxyUniteMessage
	copy(m.LocalPeer[:], b[0:5])
	copy(m.RemotePeer[:], b[5:10])
	n := int(b[10])
	rest := b[11:]
	for i := 0; i < n; i++ {
		p, consumed, err := DecodeInetAddress(rest)
		if err != nil {
			return ProxyUniteMessage{}, err
		}
		m.RemotePaths = append(m.RemotePaths, p)
		rest = rest[consumed:]
	}
	return m, nil
}

// ProxySendMessage asks the receiver to originate an overlay packet on our
// behalf.
type ProxySendMessage struct {
	Recipient PeerAddress
	Verb      byte
	Payload   []byte
}

func encodeProxySend(m ProxySendMessage) []byte {
	buf := make([]byte, 0, 5+1+2+len(m.Payload))
	buf = append(buf, m.Recipient[:]...)
	buf = append(buf, m.Verb)
	buf = appendU16(buf, uint16(len(m.Payload)))
	buf = append(buf, m.Payload...)
	return buf
}

func decodeProxySend(b []byte) (ProxySendMessage, error) {
	if len(b) < 8 {
		return ProxySendMessage{}, errSubMessageTruncated
	}
	var m ProxySendMessage
	copy(m.Recipient[:], b[0:5])
	m.Verb = b[5]
	length := int(binary.BigEndian.Uint16(b[6:8]))
	if len(b[8:]) < length {
		return ProxySendMessage{}, errSubMessageTruncated
	}
	m.Payload = append([]byte{}, b[8:8+length]...)
	return m, nil
}

func appendU16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendU32(b []byte, v uint32) []byte {
	tmp := make([]byte, 4)
	binary.BigEndian.PutUint32(tmp, v)
	return append(b, tmp...)
}

func appendI32(b []byte, v int32) []byte {
	return appendU32(b, uint32(v))
}

func appendU64(b []byte, v uint64) []byte {
	tmp := make([]byte, 8)
	binary.BigEndian.PutUint64(tmp, v)
	return append(b, tmp...)
}
