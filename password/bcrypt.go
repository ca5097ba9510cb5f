package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used by NewBcrypt when given 0.
const DefaultCost = bcrypt.DefaultCost

// Bcrypt hashes and verifies passwords with a per-hash random salt. The
// cost is fixed at construction; Verify reads the cost embedded in each
// hash, so raising it later only affects new hashes.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given work factor. cost 0 selects
// [DefaultCost]; values outside bcrypt's supported range are rejected.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Bcrypt{cost: cost}, nil
}

// Hash returns the salted one-way hash of plain.
func (b *Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. Malformed hashes verify as
// false rather than erroring: a stored hash this code cannot read is a
// failed login, not a server fault.
func (b *Bcrypt) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
