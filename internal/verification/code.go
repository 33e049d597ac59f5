// Package verification generates and checks the 6-digit email codes.
package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// Generate returns a uniformly random 6-digit code as a string, "100000"
// through "999999". Rejection sampling keeps the draw unbiased.
func Generate() (string, error) {
	// Largest multiple of codeSpan below 2^32.
	const limit = (1 << 32) / codeSpan * codeSpan
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		v := binary.BigEndian.Uint32(buf[:])
		if uint64(v) >= limit {
			continue
		}
		return fmt.Sprintf("%06d", codeMin+v%codeSpan), nil
	}
}

// Equal compares a submitted code against the stored one in constant time.
func Equal(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
