package clustercore

import (
	"crypto/sha512"
	"encoding/binary"
)

// deriveMasterSecret hashes the local overlay identity's private key
// material down to the 64-byte master secret shared, out of band, by every
// member of the cluster.
func deriveMasterSecret(privateKeyMaterial []byte) [64]byte {
	return sha512.Sum512(privateKeyMaterial)
}

// deriveLinkKey computes the per-link key for member id m:
// H(H(master_secret XOR_at_first_two_bytes big-endian(m)))[:32].
func deriveLinkKey(masterSecret [64]byte, id MemberID) [32]byte {
	var mixed [64]byte
	copy(mixed[:], masterSecret[:])

	var idBytes [2]byte
	binary.BigEndian.PutUint16(idBytes[:], uint16(id))
	mixed[0] ^= idBytes[0]
	mixed[1] ^= idBytes[1]

	h1 := sha512.Sum512(mixed[:])
	h2 := sha512.Sum512(h1[:])

	var key [32]byte
	copy(key[:], h2[:32])

	zeroBytes(mixed[:])
	zeroBytes(h1[:])
	zeroBytes(h2[:])
	return key
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
