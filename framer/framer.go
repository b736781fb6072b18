// Package framer implements the encrypt-then-MAC batched message framing
// used between cluster members: a length-prefixed sub-message queue sealed
// with a per-link key into an authenticated, confidential frame.
package framer

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/poly1305"
)

// MaxMessageLen is the ceiling on a sealed frame. Unseal rejects oversized
// frames; on the sending side, WouldExceed tells callers when to flush
// before an Enqueue would pass it.
const MaxMessageLen = 16384

const (
	ivLen       = 16
	macLen      = 8
	headerLen   = ivLen + macLen + 2 + 2 // IV + truncated MAC + sender + recipient
	minFrameLen = headerLen
)

var (
	// ErrFrameTooShort is returned when an inbound buffer is too small to
	// hold even the fixed header.
	ErrFrameTooShort = errors.New("framer: frame shorter than header")
	// ErrFrameTooLong is returned when an inbound buffer exceeds MaxMessageLen.
	ErrFrameTooLong = errors.New("framer: frame exceeds MaxMessageLen")
	// ErrMACMismatch is returned when authentication fails; the frame must
	// be dropped without further inspection.
	ErrMACMismatch = errors.New("framer: MAC verification failed")
)

// Queue is the per-link outbound buffer: a header (IV, reserved MAC,
// sender/recipient ids) followed by zero or more length-prefixed
// sub-messages. It carries no lock of its own — callers serialize access
// through the owning member record's lock.
type Queue struct {
	buf []byte
}

// NewQueue opens a fresh queue for the ordered pair (sender, recipient):
// random IV, zeroed MAC placeholder, and the two ids.
func NewQueue(sender, recipient uint16) *Queue {
	q := &Queue{}
	q.Reset(sender, recipient)
	return q
}

// Reset reseeds the queue with a new random IV and the given ids, discarding
// any buffered sub-messages. Called both when a member is added and after
// every successful flush.
func (q *Queue) Reset(sender, recipient uint16) {
	q.buf = make([]byte, headerLen)
	if _, err := rand.Read(q.buf[:ivLen]); err != nil {
		// crypto/rand failing is unrecoverable; panicking here matches the
		// framer's "never operate on a frame it cannot trust" stance.
		panic("framer: crypto/rand unavailable: " + err.Error())
	}
	binary.BigEndian.PutUint16(q.buf[ivLen+macLen:], sender)
	binary.BigEndian.PutUint16(q.buf[ivLen+macLen+2:], recipient)
}

// Len reports the current buffered size, header included.
func (q *Queue) Len() int {
	return len(q.buf)
}

// WouldExceed reports whether appending a sub-message carrying payloadLen
// bytes would exceed MaxMessageLen.
func (q *Queue) WouldExceed(payloadLen int) bool {
	return q.Len()+2+1+payloadLen > MaxMessageLen
}

// Enqueue appends one length-prefixed sub-message. The caller is
// responsible for flushing first when WouldExceed reports true; Enqueue
// itself never flushes.
func (q *Queue) Enqueue(typ byte, payload []byte) {
	length := uint16(len(payload) + 1)
	header := make([]byte, 3)
	binary.BigEndian.PutUint16(header, length)
	header[2] = typ
	q.buf = append(q.buf, header...)
	q.buf = append(q.buf, payload...)
}

// Seal produces the sealed frame bytes and reports whether there was
// anything to seal (header-only queues are a no-op, matching the spec's
// "do nothing" rule for an empty flush). The caller must call Reset
// afterward to reseed the queue; Seal does not mutate the queue's header.
func Seal(q *Queue, linkKey [32]byte) (sealed []byte, ok bool) {
	if q.Len() <= headerLen {
		return nil, false
	}

	buf := make([]byte, q.Len())
	copy(buf, q.buf)

	iv := buf[:ivLen]
	oneShotKey := deriveOneShotKey(linkKey, iv)
	defer zero(oneShotKey[:])

	nonce := [8]byte{}
	copy(nonce[:], iv[8:16])

	body := buf[ivLen+macLen:] // sender id .. end
	ks := keystream(oneShotKey, nonce, 32+len(body))
	defer zero(ks)

	var macKey [32]byte
	copy(macKey[:], ks[:32])
	defer zero(macKey[:])

	xorKeystream(body, ks[32:])

	var mac [16]byte
	poly1305.Sum(&mac, body, &macKey)
	copy(buf[ivLen:ivLen+macLen], mac[:macLen])

	return buf, true
}

// Unseal authenticates and decrypts an inbound frame using the local
// member's inbound link key. It performs only the frame-crypto steps
// (length bounds, MAC verification, decryption); membership and
// self-addressing checks are the caller's responsibility since the framer
// has no notion of the member id set.
func Unseal(localKey [32]byte, frame []byte) (sender, recipient uint16, body []byte, err error) {
	if len(frame) < minFrameLen {
		return 0, 0, nil, ErrFrameTooShort
	}
	if len(frame) > MaxMessageLen {
		return 0, 0, nil, ErrFrameTooLong
	}

	buf := make([]byte, len(frame))
	copy(buf, frame)

	iv := buf[:ivLen]
	storedMAC := buf[ivLen : ivLen+macLen]

	oneShotKey := deriveOneShotKey(localKey, iv)
	defer zero(oneShotKey[:])

	nonce := [8]byte{}
	copy(nonce[:], iv[8:16])

	cipherBody := buf[ivLen+macLen:] // sender id .. end, still encrypted
	ks := keystream(oneShotKey, nonce, 32+len(cipherBody))
	defer zero(ks)

	var macKey [32]byte
	copy(macKey[:], ks[:32])
	defer zero(macKey[:])

	var computed [16]byte
	poly1305.Sum(&computed, cipherBody, &macKey)
	if subtle.ConstantTimeCompare(computed[:macLen], storedMAC) != 1 {
		return 0, 0, nil, ErrMACMismatch
	}

	xorKeystream(cipherBody, ks[32:])

	sender = binary.BigEndian.Uint16(cipherBody[0:2])
	recipient = binary.BigEndian.Uint16(cipherBody[2:4])
	return sender, recipient, cipherBody[4:], nil
}

// deriveOneShotKey XORs the first 8 bytes of linkKey with iv[0:8], leaving
// the remaining 24 bytes untouched.
func deriveOneShotKey(linkKey [32]byte, iv []byte) [32]byte {
	var k [32]byte
	copy(k[:], linkKey[:])
	for i := 0; i < 8; i++ {
		k[i] ^= iv[i]
	}
	return k
}

// zero overwrites sensitive byte material in place.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
