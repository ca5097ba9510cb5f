package session

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Token alphabet: four character classes, each contributing one 20-char
// block. Ambiguous glyphs (i, l, o, 0, 1) are excluded so tokens survive
// being read aloud or transcribed.
const (
	tokenBlockLen = 20

	lowerAlphabet  = "abcdefghjkmnpqrstuvwxyz"
	upperAlphabet  = "ABCDEFGHJKMNPQRSTWUVXYZ"
	digitAlphabet  = "23456789"
	symbolAlphabet = "!-+#"
)

var tokenAlphabets = [...]string{
	lowerAlphabet,
	upperAlphabet,
	digitAlphabet,
	symbolAlphabet,
}

// TokenLength is the fixed length of every generated session and refresh
// token.
const TokenLength = tokenBlockLen * len(tokenAlphabets)

// GenerateToken produces one opaque 80-character token from a
// cryptographically secure source. It draws a 20-character block from each
// character class, then re-samples every output position uniformly from
// the concatenated pool, so class boundaries do not leak positional
// structure.
//
// GenerateToken is pure aside from randomness; collision checking against
// live tokens is the store's responsibility.
func GenerateToken() (string, error) {
	var pool strings.Builder
	pool.Grow(TokenLength)

	for _, alphabet := range tokenAlphabets {
		for i := 0; i < tokenBlockLen; i++ {
			idx, err := randomIndex(len(alphabet))
			if err != nil {
				return "", err
			}
			pool.WriteByte(alphabet[idx])
		}
	}

	mixed := pool.String()

	var token strings.Builder
	token.Grow(TokenLength)
	for i := 0; i < TokenLength; i++ {
		idx, err := randomIndex(len(mixed))
		if err != nil {
			return "", err
		}
		token.WriteByte(mixed[idx])
	}

	return token.String(), nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
