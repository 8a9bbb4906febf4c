// Package otp owns the pending verification codes: a code is written when
// requested, overwritten by a newer request for the same email, expires after
// DefaultTTL, and is consumed with an atomic check-and-delete so two
// concurrent attempts cannot both succeed with the same code.
package otp

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

const DefaultTTL = 10 * time.Minute

type Store interface {
	// Put stores code for email, replacing any pending code.
	Put(ctx context.Context, email, code string) error
	// Consume deletes the pending code for email if it matches and reports
	// whether it did. A mismatch leaves the pending code in place.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// GenerateCode returns a uniformly random 6-digit decimal code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}
