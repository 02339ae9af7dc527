// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the cryptographic primitives of the portal: password
// hashing, opaque token generation, CSRF token signing and the capability
// model attached to an authenticated [Principal].
package sec

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with bcrypt at a fixed cost.
//
// The zero value uses [bcrypt.DefaultCost].
type BcryptHasher struct {
	Cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewBcryptHasher returns a hasher with the given cost, clamped to bcrypt's bounds.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (hasher *BcryptHasher) cost() int {
	if hasher.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return hasher.Cost
}

// Hash returns the bcrypt encoding of plain.
func (hasher *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hasher.cost())
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func (hasher *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Burn spends one comparison against a throwaway hash of the same cost.
// Callers use it on the unknown-account path so both branches cost the same.
func (hasher *BcryptHasher) Burn(plain string) {
	hasher.dummyOnce.Do(func() {
		hasher.dummy, _ = bcrypt.GenerateFromPassword([]byte("civicportal-timing-equaliser"), hasher.cost())
	})
	_ = bcrypt.CompareHashAndPassword(hasher.dummy, []byte(plain))
}
