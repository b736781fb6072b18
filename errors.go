package clustercore

import "errors"

var (
	// ErrInvalidMemberID is returned by AddMember/RemoveMember for an id
	// outside [0, MaxMembers) or equal to the local id.
	ErrInvalidMemberID = errors.New("clustercore: invalid member id")
	// ErrMemberAlreadyExists is returned by AddMember when the id is
	// already present in the member id set.
	ErrMemberAlreadyExists = errors.New("clustercore: member already exists")
	// ErrPayloadTooLarge names a relay payload larger than MaxMessageLen.
	// SendViaCluster reports that case by returning false, not this value.
	ErrPayloadTooLarge = errors.New("clustercore: payload exceeds MaxMessageLen")
	// ErrDestroyed is returned by AddMember, RemoveMember and Destroy when
	// called after Destroy.
	ErrDestroyed = errors.New("clustercore: cluster destroyed")

	errSkipSubMessage = errors.New("clustercore: malformed sub-message, skipping")
)
