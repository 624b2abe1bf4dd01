// Package id generates sortable string identifiers. Both formats put a
// millisecond timestamp in front of random bits, so ids created later
// sort lexicographically after ids created earlier.
package id

import (
	"crypto/rand"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a ULID (Universally Unique Lexicographically
// Sortable Identifier): 26 characters, 10 for the 48-bit millisecond
// timestamp and 16 for 80 random bits.
func NewULID() string {
	var out [26]byte
	encodeTime(out[:10], uint64(time.Now().UnixMilli()))

	var random [10]byte
	_, _ = rand.Read(random[:]) // never fails as of Go 1.24
	encodeRandom(out[10:], random[:])

	return string(out[:])
}

// encodeTime writes the low 5*len(dst) bits of v into dst, most
// significant group first.
func encodeTime(dst []byte, v uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = crockfordBase32[v&0x1F]
		v >>= 5
	}
}

// encodeRandom fills dst with 5-bit groups read from src, most
// significant bit first, zero padding the last group when src runs out.
func encodeRandom(dst, src []byte) {
	bit := 0
	for i := range dst {
		var v byte
		for range 5 {
			v <<= 1
			if bit < len(src)*8 {
				v |= (src[bit/8] >> (7 - bit%8)) & 1
			}
			bit++
		}
		dst[i] = crockfordBase32[v]
	}
}
