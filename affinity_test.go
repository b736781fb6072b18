package clustercore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAffinityMapSweepRemovesOnlyStaleEntries(t *testing.T) {
	a := newAffinityMap()
	base := time.Unix(1000, 0)

	a.set(PeerAddress{1}, MemberID(1), base)
	a.set(PeerAddress{2}, MemberID(2), base.Add(time.Hour))

	removed := a.sweep(base.Add(time.Minute))
	assert.Equal(t, 1, removed)

	_, ok := a.lookup(PeerAddress{1})
	assert.False(t, ok)
	_, ok = a.lookup(PeerAddress{2})
	assert.True(t, ok)
}

func TestAffinityMapCountOwnedByExcludesStaleAndOtherOwners(t *testing.T) {
	a := newAffinityMap()
	now := time.Unix(5000, 0)

	a.set(PeerAddress{1}, MemberID(3), now)
	a.set(PeerAddress{2}, MemberID(3), now.Add(-PeerActivityTimeout*2))
	a.set(PeerAddress{3}, MemberID(4), now)

	assert.Equal(t, 1, a.countOwnedBy(MemberID(3), now))
	assert.Equal(t, 1, a.countOwnedBy(MemberID(4), now))
	assert.Equal(t, 0, a.countOwnedBy(MemberID(9), now))
}
