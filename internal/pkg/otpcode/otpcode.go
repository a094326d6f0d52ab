package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	min  = 100000
	span = 900000
)

// Generator produces one-time codes.
type Generator interface {
	// Next returns a code in [100000, 999999].
	Next() (int, error)
}

type generator struct{}

// New returns a Generator backed by crypto/rand.
func New() Generator { return generator{} }

func (generator) Next() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, fmt.Errorf("generate otp: %w", err)
	}
	return min + int(n.Int64()), nil
}
