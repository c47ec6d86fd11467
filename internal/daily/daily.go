// internal/daily/daily.go
//
// Deterministic word-of-the-day selection for the daily scramble.
// Every instance of the server derives the same word for a given date and
// salt, so no coordination is needed between replicas.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic catalog index for a date using
// HMAC(salt, YYYY-MM-DD) % catalogLen.
func WordIndex(date time.Time, salt string, catalogLen int) int {
	if catalogLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(catalogLen))
}
