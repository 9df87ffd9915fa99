// Package homomorphic defines the arithmetic surface the ballot engine is
// allowed to use on encrypted values. The engine is restricted to the four
// Scheme primitives (plus trivial constant encryption); none of them ever
// yields plaintext to the caller, which is what gives the engine its
// never-decrypt-during-tallying guarantee.
package homomorphic

import (
	"errors"

	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
)

// ErrNotBoolean is returned by Select when the condition ciphertext does not
// carry an encrypted 0 or 1.
var ErrNotBoolean = errors.New("condition ciphertext is not an encrypted boolean")

// Scheme exposes the homomorphic operations available to the ballot engine.
// Equal and LessOrEqual return encrypted booleans: ciphertexts carrying 0 or
// 1, only combinable through Select and Add. Implementations must guarantee
// that no operation reveals plaintext and that returned ciphertexts carry
// fresh randomness, so results are unlinkable to their inputs.
type Scheme interface {
	// Add returns the homomorphic sum of a and b.
	Add(a, b *elgamal.Ciphertext) (*elgamal.Ciphertext, error)

	// Equal returns an encrypted boolean carrying 1 if a and b encrypt the
	// same value, 0 otherwise.
	Equal(a, b *elgamal.Ciphertext) (*elgamal.Ciphertext, error)

	// LessOrEqual returns an encrypted boolean carrying 1 if the value of a
	// is less than or equal to the value of b, 0 otherwise.
	LessOrEqual(a, b *elgamal.Ciphertext) (*elgamal.Ciphertext, error)

	// Select returns a re-randomized copy of ifTrue when cond carries 1, and
	// of ifFalse when cond carries 0.
	Select(cond, ifTrue, ifFalse *elgamal.Ciphertext) (*elgamal.Ciphertext, error)

	// EncryptConst returns a fresh encryption of the public constant v.
	EncryptConst(v uint64) (*elgamal.Ciphertext, error)
}
