package clustercore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *registry {
	var secret [64]byte
	return newRegistry(MemberID(1), secret)
}

func TestRegistryAddRejectsOutOfRange(t *testing.T) {
	r := newTestRegistry()
	assert.Equal(t, ErrInvalidMemberID, r.add(MemberID(MaxMembers)))
}

func TestRegistryAddRejectsSelf(t *testing.T) {
	r := newTestRegistry()
	assert.Equal(t, ErrInvalidMemberID, r.add(MemberID(1)))
}

func TestRegistryAddRejectsDuplicate(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.add(MemberID(2)))
	assert.Equal(t, ErrMemberAlreadyExists, r.add(MemberID(2)))
}

func TestRegistryAddDerivesDistinctKeys(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.add(MemberID(2)))
	require.NoError(t, r.add(MemberID(3)))

	k2 := r.memberAt(2).linkKey
	k3 := r.memberAt(3).linkKey
	assert.NotEqual(t, k2, k3)
}

func TestRegistryRemoveMakesRecordNonMember(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.add(MemberID(2)))
	assert.True(t, r.isMember(2))

	assert.True(t, r.remove(2))
	assert.False(t, r.isMember(2))
	// record memory is retained, slot is reusable
	require.NoError(t, r.add(MemberID(2)))
}

func TestRegistrySnapshotIDsSorted(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.add(MemberID(5)))
	require.NoError(t, r.add(MemberID(2)))
	require.NoError(t, r.add(MemberID(3)))

	assert.Equal(t, []MemberID{2, 3, 5}, r.snapshotIDs())
}

func TestRegistryChecksumChangesWithMembership(t *testing.T) {
	r := newTestRegistry()
	before := r.checksum()
	require.NoError(t, r.add(MemberID(2)))
	after := r.checksum()
	assert.NotEqual(t, before, after)
}
