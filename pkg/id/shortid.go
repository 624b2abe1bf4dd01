package id

import (
	"crypto/rand"
	"time"
)

// NewShortID generates a compact sortable id: 16 characters, 6 for the
// low 30 bits of the millisecond clock and 10 for 48 random bits. The
// timestamp wraps about every 12 days, so ordering only holds between
// ids minted within one window; use ULIDs where long-range ordering
// matters.
func NewShortID() string {
	var out [16]byte
	encodeTime(out[:6], uint64(time.Now().UnixMilli())&0x3FFFFFFF)

	var random [6]byte
	_, _ = rand.Read(random[:]) // never fails as of Go 1.24
	encodeRandom(out[6:], random[:])

	return string(out[:])
}
