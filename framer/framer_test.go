package framer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealUnsealRoundTrip(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}

	q := NewQueue(1, 2)
	q.Enqueue(3, []byte{0x11, 0x22, 0x33})

	sealed, ok := Seal(q, key)
	require.True(t, ok)

	sender, recipient, body, err := Unseal(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), sender)
	assert.Equal(t, uint16(2), recipient)

	require.Len(t, body, 6)
	assert.Equal(t, uint16(4), uint16(body[0])<<8|uint16(body[1]))
	assert.Equal(t, byte(3), body[2])
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, body[3:6])
}

func TestSealEmptyQueueIsNoop(t *testing.T) {
	var key [32]byte
	q := NewQueue(1, 2)

	_, ok := Seal(q, key)
	assert.False(t, ok)
}

func TestUnsealRejectsBitFlip(t *testing.T) {
	var key [32]byte
	q := NewQueue(1, 2)
	q.Enqueue(3, []byte("hello"))

	sealed, ok := Seal(q, key)
	require.True(t, ok)

	tampered := make([]byte, len(sealed))
	copy(tampered, sealed)
	tampered[24] ^= 0x01

	_, _, _, err := Unseal(key, tampered)
	assert.Equal(t, ErrMACMismatch, err)
}

func TestUnsealRejectsShortFrame(t *testing.T) {
	var key [32]byte
	_, _, _, err := Unseal(key, []byte{1, 2, 3})
	assert.Equal(t, ErrFrameTooShort, err)
}

func TestUnsealRejectsOverlongFrame(t *testing.T) {
	var key [32]byte
	_, _, _, err := Unseal(key, make([]byte, MaxMessageLen+1))
	assert.Equal(t, ErrFrameTooLong, err)
}

func TestQueueAutoFlushThreshold(t *testing.T) {
	q := NewQueue(1, 2)
	assert.False(t, q.WouldExceed(10))
	assert.True(t, q.WouldExceed(MaxMessageLen))
}

func TestDifferentLinkKeysProduceDifferentFrames(t *testing.T) {
	var k1, k2 [32]byte
	k2[0] = 1

	q1 := NewQueue(1, 2)
	q1.Enqueue(1, []byte("payload"))
	sealed1, _ := Seal(q1, k1)

	q2 := NewQueue(1, 2)
	q2.Enqueue(1, []byte("payload"))
	sealed2, _ := Seal(q2, k2)

	assert.NotEqual(t, sealed1[24:], sealed2[24:])
}
