package common

import "crypto/rand"

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system entropy source fails.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// WipeByteArray zeroes the buffer in place. Used to shorten the lifetime of
// plaintext secrets in memory.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
