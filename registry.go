package clustercore

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgryski/go-farm"

	"github.com/overlaymesh/clustercore/framer"
)

// registry holds the fixed array of per-member records plus the sorted set
// of currently-live ids, adapted from the teacher's dual-indexed
// memberlist into a fixed-capacity array per the spec's explicit guidance
// against a dynamic map on the hot receive path.
type registry struct {
	localID      MemberID
	masterSecret [64]byte

	members [MaxMembers]*member

	set struct {
		sync.RWMutex
		ids []MemberID
	}
}

func newRegistry(localID MemberID, masterSecret [64]byte) *registry {
	r := &registry{localID: localID, masterSecret: masterSecret}
	for i := 0; i < MaxMembers; i++ {
		r.members[i] = &member{id: MemberID(i)}
	}
	return r
}

// memberAt returns the record for id regardless of set membership; callers
// that need "is this id actually live" must check isMember separately.
func (r *registry) memberAt(id MemberID) *member {
	if int(id) >= len(r.members) {
		return nil
	}
	return r.members[id]
}

func (r *registry) isMember(id MemberID) bool {
	r.set.RLock()
	defer r.set.RUnlock()
	return r.indexOfLocked(id) >= 0
}

// indexOfLocked requires set.RLock/Lock held by the caller.
func (r *registry) indexOfLocked(id MemberID) int {
	ids := r.set.ids
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return i
	}
	return -1
}

// add inserts id into the member id set, rederives its link key, and opens
// a fresh send queue. It rejects out-of-range, self, and duplicate ids.
func (r *registry) add(id MemberID) error {
	if uint16(id) >= MaxMembers || id == r.localID {
		return ErrInvalidMemberID
	}

	r.set.Lock()
	if r.indexOfLocked(id) >= 0 {
		r.set.Unlock()
		return ErrMemberAlreadyExists
	}
	insertAt := sort.Search(len(r.set.ids), func(i int) bool { return r.set.ids[i] >= id })
	r.set.ids = append(r.set.ids, 0)
	copy(r.set.ids[insertAt+1:], r.set.ids[insertAt:])
	r.set.ids[insertAt] = id
	r.set.Unlock()

	m := r.memberAt(id)
	m.Lock()
	m.linkKey = deriveLinkKey(r.masterSecret, id)
	m.location = Point3D{}
	m.load = 0
	m.endpoints = nil
	m.lastReceivedAlive = time.Time{}
	m.lastAnnouncedAliveTo = time.Time{}
	m.queue = framer.NewQueue(uint16(r.localID), uint16(id))
	m.Unlock()

	return nil
}

// remove drops id from the member id set. The record itself is left
// allocated and is inaccessible via the live set, but the slot is reused
// transparently if the id is re-added later.
func (r *registry) remove(id MemberID) bool {
	r.set.Lock()
	defer r.set.Unlock()
	idx := r.indexOfLocked(id)
	if idx < 0 {
		return false
	}
	r.set.ids = append(r.set.ids[:idx], r.set.ids[idx+1:]...)
	return true
}

// snapshotIDs returns a copy of the sorted live id set.
func (r *registry) snapshotIDs() []MemberID {
	r.set.RLock()
	defer r.set.RUnlock()
	out := make([]MemberID, len(r.set.ids))
	copy(out, r.set.ids)
	return out
}

// checksum computes a fingerprint of the live member id set, grounded on
// the teacher's ComputeChecksum over a sorted, semicolon-joined string.
func (r *registry) checksum() uint32 {
	ids := r.snapshotIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", uint16(id))
	}
	return farm.Fingerprint32([]byte(strings.Join(parts, ";")))
}
