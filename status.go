package clustercore

import (
	"github.com/overlaymesh/clustercore/events"
	"github.com/overlaymesh/clustercore/util"
)

// MemberStatusRecord is one row of a Status snapshot.
type MemberStatusRecord struct {
	ID               MemberID
	Alive            bool
	MsSinceHeartbeat int64
	X, Y, Z          int32
	Load             uint64
	Endpoints        []InetAddress
	PeerCount        int
}

// Status is a read-only point-in-time snapshot of the cluster, per §7.
type Status struct {
	MyID        MemberID
	ClusterSize int
	Members     []MemberStatusRecord
}

// Status builds a snapshot in two passes, matching the original
// implementation's shape: one walk over every one of the 128 slots (not
// just the current member set) for per-member fields, with alive requiring
// both set membership and a heartbeat within ClusterTimeout; a second,
// separate walk over the affinity map for per-member peer counts.
func (c *Cluster) Status() Status {
	now := c.clock.Now()
	records := make([]MemberStatusRecord, 0, MaxMembers)

	localPeerCount := 0
	if c.opts.Topology != nil {
		localPeerCount = c.opts.Topology.CountActive()
	}
	records = append(records, MemberStatusRecord{
		ID:        c.localID,
		Alive:     true,
		X:         c.localLocation.X,
		Y:         c.localLocation.Y,
		Z:         c.localLocation.Z,
		PeerCount: localPeerCount,
	})

	for i := 0; i < MaxMembers; i++ {
		id := MemberID(i)
		if id == c.localID {
			continue
		}
		isMember := c.registry.isMember(id)

		m := c.registry.memberAt(id)
		m.RLock()
		msSince := int64(-1)
		if !m.lastReceivedAlive.IsZero() {
			msSince = util.MS(now.Sub(m.lastReceivedAlive))
		}
		rec := MemberStatusRecord{
			ID:               id,
			Alive:            isMember && m.isAliveLocked(now),
			MsSinceHeartbeat: msSince,
			X:                m.location.X,
			Y:                m.location.Y,
			Z:                m.location.Z,
			Load:             m.load,
			Endpoints:        append([]InetAddress{}, m.endpoints...),
		}
		m.RUnlock()
		rec.PeerCount = c.affinity.countOwnedBy(id, now)
		records = append(records, rec)
	}

	return Status{MyID: c.localID, ClusterSize: len(c.registry.snapshotIDs()) + 1, Members: records}
}

// statusMembers adapts a Status snapshot to the lighter events.MemberStatus
// shape carried by StatusSnapshotEvent, so stats consumers don't need to
// depend on the root package.
func (c *Cluster) statusMembers() []events.MemberStatus {
	st := c.Status()
	out := make([]events.MemberStatus, len(st.Members))
	for i, m := range st.Members {
		out[i] = events.MemberStatus{
			ID:               uint16(m.ID),
			Alive:            m.Alive,
			MsSinceHeartbeat: m.MsSinceHeartbeat,
			X:                m.X,
			Y:                m.Y,
			Z:                m.Z,
			Load:             m.Load,
			PeerCount:        m.PeerCount,
		}
	}
	return out
}
