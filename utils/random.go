// utils/random.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const randomAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns a short uppercase suffix for order and bill
// numbers. Ambiguous characters (0/O, 1/I) are excluded.
func GenerateRandomString(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = randomAlphabet[0]
			continue
		}
		out[i] = randomAlphabet[n.Int64()]
	}
	return string(out)
}
