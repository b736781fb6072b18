package clustercore

import (
	"sync"
	"time"

	"github.com/overlaymesh/clustercore/framer"
)

// member is one per-link record: key material, outbound queue, and
// advertised state. It embeds its own lock directly (rather than a
// separate pointer-to-mutex) so the record can be locked in place without
// an extra allocation, matching the teacher's per-record locking style.
type member struct {
	sync.RWMutex

	id MemberID

	linkKey [32]byte
	queue   *framer.Queue

	location  Point3D
	load      uint64
	endpoints []InetAddress

	lastReceivedAlive    time.Time
	lastAnnouncedAliveTo time.Time
}

// isAliveLocked reports liveness from the heartbeat alone; callers must
// also consult the member id set for true "live" status (§3: a record
// exists for every id but is only live if the id is in the set).
func (m *member) isAliveLocked(now time.Time) bool {
	if m.lastReceivedAlive.IsZero() {
		return false
	}
	return now.Sub(m.lastReceivedAlive) < ClusterTimeout
}
