package clustercore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"
	"time"
)

// Tunable constants fixed at build time; every member of a cluster must
// agree on these values.
const (
	// MaxMembers is the number of member slots the registry carries.
	MaxMembers = 128
	// MaxMessageLen bounds both a sealed frame and a relayed payload.
	MaxMessageLen = 16384
	// ClusterTimeout is how long since last_received_alive before a member
	// is considered dead for geo-redirect and status purposes.
	ClusterTimeout = 30 * time.Second
	// ClusterFlushPeriod is the periodic-loop cadence for ALIVE flushes.
	ClusterFlushPeriod = 500 * time.Millisecond
	// HavePeerAnnouncePeriod debounces replicate_have_peer broadcasts.
	HavePeerAnnouncePeriod = 60 * time.Second
	// PeerActivityTimeout bounds affinity freshness; GC sweeps at 5x this.
	PeerActivityTimeout = 300 * time.Second
)

// MemberID is a cluster member's stable 16-bit identity, in [0, MaxMembers).
type MemberID uint16

func (m MemberID) String() string {
	return fmt.Sprintf("%d", uint16(m))
}

// PeerAddress is a 40-bit overlay peer address.
type PeerAddress [5]byte

func (p PeerAddress) String() string {
	return fmt.Sprintf("%02x%02x%02x%02x%02x", p[0], p[1], p[2], p[3], p[4])
}

// IsZero reports whether the address is the zero value.
func (p PeerAddress) IsZero() bool {
	return p == PeerAddress{}
}

// Point3D is an advertised or geolocated 3-D coordinate. The zero value
// means "unknown" everywhere this type is used.
type Point3D struct {
	X, Y, Z int32
}

// IsUnknown reports whether the point carries no location information.
func (p Point3D) IsUnknown() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

func (p Point3D) distance(q Point3D) float64 {
	dx := float64(p.X) - float64(q.X)
	dy := float64(p.Y) - float64(q.Y)
	dz := float64(p.Z) - float64(q.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// offloadBaseline is the "+infinity" baseline used by find_better_endpoint
// when offload is requested, large enough that any real distance wins.
const offloadBaseline = float64(1 << 31)

// InetAddress is a serialized IPv4 or IPv6 socket address.
type InetAddress struct {
	IP   net.IP
	Port uint16
}

// Family returns "ip4" or "ip6", or "" if the address is invalid.
func (a InetAddress) Family() string {
	if ip4 := a.IP.To4(); ip4 != nil {
		return "ip4"
	}
	if a.IP.To16() != nil {
		return "ip6"
	}
	return ""
}

// ErrInvalidInetAddress is returned when a serialized socket address is
// malformed or its family byte is unrecognized.
var ErrInvalidInetAddress = errors.New("clustercore: invalid serialized socket address")

// Bytes serializes the address as 1 family byte (4 or 6), the raw address
// bytes, and a big-endian port.
func (a InetAddress) Bytes() []byte {
	switch a.Family() {
	case "ip4":
		b := make([]byte, 1+4+2)
		b[0] = 4
		copy(b[1:5], a.IP.To4())
		binary.BigEndian.PutUint16(b[5:7], a.Port)
		return b
	case "ip6":
		b := make([]byte, 1+16+2)
		b[0] = 6
		copy(b[1:17], a.IP.To16())
		binary.BigEndian.PutUint16(b[17:19], a.Port)
		return b
	default:
		return nil
	}
}

// parseEndpoint parses a "host:port" string (as produced by a discovery
// seed provider) into an InetAddress. The host must already be a literal
// IP; this core does no DNS resolution.
func parseEndpoint(hostport string) (InetAddress, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return InetAddress{}, err
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return InetAddress{}, ErrInvalidInetAddress
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return InetAddress{}, err
	}
	return InetAddress{IP: ip, Port: uint16(port)}, nil
}

// DecodeInetAddress parses a serialized socket address and reports how many
// bytes it consumed.
func DecodeInetAddress(b []byte) (InetAddress, int, error) {
	if len(b) < 1 {
		return InetAddress{}, 0, ErrInvalidInetAddress
	}
	switch b[0] {
	case 4:
		if len(b) < 7 {
			return InetAddress{}, 0, ErrInvalidInetAddress
		}
		ip := net.IP(append([]byte{}, b[1:5]...))
		port := binary.BigEndian.Uint16(b[5:7])
		return InetAddress{IP: ip, Port: port}, 7, nil
	case 6:
		if len(b) < 19 {
			return InetAddress{}, 0, ErrInvalidInetAddress
		}
		ip := net.IP(append([]byte{}, b[1:17]...))
		port := binary.BigEndian.Uint16(b[17:19])
		return InetAddress{IP: ip, Port: port}, 19, nil
	default:
		return InetAddress{}, 0, ErrInvalidInetAddress
	}
}
