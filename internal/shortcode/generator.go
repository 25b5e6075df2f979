package shortcode

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length of generated (non-alias) short codes.
const DefaultLength = 6

// Generate returns a random short code of the given length drawn uniformly
// from the 62-character alphanumeric alphabet. It uses crypto/rand so codes
// cannot be enumerated from earlier outputs. Safe for concurrent use.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}
