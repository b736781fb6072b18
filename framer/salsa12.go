package framer

import "encoding/binary"

// salsa20Rounds is the number of rounds applied per block, run as
// salsa20Rounds/2 column-and-row double-rounds.
// The upstream golang.org/x/crypto/salsa20/salsa package only exports a
// fixed 20-round core (via its XORKeyStream), so the reduced-round variant
// the wire format requires is reimplemented here from the same quarter-round
// arithmetic, parameterized to 6 double-rounds (12 rounds total).
const salsa20Rounds = 12

var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

func rotl(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	b ^= rotl(a+d, 7)
	c ^= rotl(b+a, 9)
	d ^= rotl(c+b, 13)
	a ^= rotl(d+c, 18)
	return a, b, c, d
}

// salsaBlock runs the reduced-round Salsa20 core over a 16-word input block
// and writes the 64-byte output.
func salsaBlock(in *[16]uint32, out *[64]byte) {
	var x [16]uint32
	copy(x[:], in[:])

	for i := 0; i < salsa20Rounds/2; i++ {
		// columnround
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[5], x[9], x[13], x[1] = quarterRound(x[5], x[9], x[13], x[1])
		x[10], x[14], x[2], x[6] = quarterRound(x[10], x[14], x[2], x[6])
		x[15], x[3], x[7], x[11] = quarterRound(x[15], x[3], x[7], x[11])

		// rowround
		x[0], x[1], x[2], x[3] = quarterRound(x[0], x[1], x[2], x[3])
		x[5], x[6], x[7], x[4] = quarterRound(x[5], x[6], x[7], x[4])
		x[10], x[11], x[8], x[9] = quarterRound(x[10], x[11], x[8], x[9])
		x[15], x[12], x[13], x[14] = quarterRound(x[15], x[12], x[13], x[14])
	}

	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], x[i]+in[i])
	}
}

// keystream derives n bytes of reduced-round Salsa20 keystream from a
// 32-byte key and 8-byte nonce, incrementing the 8-byte little-endian
// block counter across 64-byte blocks.
func keystream(key [32]byte, nonce [8]byte, n int) []byte {
	var in [16]uint32
	in[0] = sigma[0]
	in[1] = binary.LittleEndian.Uint32(key[0:4])
	in[2] = binary.LittleEndian.Uint32(key[4:8])
	in[3] = binary.LittleEndian.Uint32(key[8:12])
	in[4] = binary.LittleEndian.Uint32(key[12:16])
	in[5] = sigma[1]
	in[6] = binary.LittleEndian.Uint32(nonce[0:4])
	in[7] = binary.LittleEndian.Uint32(nonce[4:8])
	in[10] = sigma[2]
	in[11] = binary.LittleEndian.Uint32(key[16:20])
	in[12] = binary.LittleEndian.Uint32(key[20:24])
	in[13] = binary.LittleEndian.Uint32(key[24:28])
	in[14] = binary.LittleEndian.Uint32(key[28:32])
	in[15] = sigma[3]

	out := make([]byte, 0, n+64)
	var counter uint64
	var block [64]byte
	for len(out) < n {
		in[8] = uint32(counter)
		in[9] = uint32(counter >> 32)
		salsaBlock(&in, &block)
		out = append(out, block[:]...)
		counter++
	}
	return out[:n]
}

// xorKeystream XORs dst with the given keystream slice, dst and ks must be
// the same length.
func xorKeystream(dst, ks []byte) {
	for i := range dst {
		dst[i] ^= ks[i]
	}
}
