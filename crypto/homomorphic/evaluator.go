package homomorphic

import (
	"fmt"
	"math/big"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
)

// Evaluator implements Scheme over additive EC-ElGamal ciphertexts. It holds
// the poll's private key material, the same trust position as the external
// decryption oracle: comparisons and selection are evaluated inside this
// capability and their results re-encrypted with fresh randomness before
// being returned. Plaintext never crosses the Evaluator boundary.
//
// maxValue bounds the plaintext range the evaluator will recover when
// comparing; any ciphertext carrying a value beyond it compares as neither
// equal nor less-or-equal to anything.
type Evaluator struct {
	curve      ecc.Point
	publicKey  ecc.Point
	privateKey *big.Int
	maxValue   uint64
}

var _ Scheme = (*Evaluator)(nil)

// NewEvaluator creates an Evaluator for the given key pair. maxValue is the
// largest plaintext the evaluator considers representable (for a poll, the
// highest option index).
func NewEvaluator(curve ecc.Point, publicKey ecc.Point, privateKey *big.Int, maxValue uint64) *Evaluator {
	return &Evaluator{
		curve:      curve,
		publicKey:  publicKey,
		privateKey: privateKey,
		maxValue:   maxValue,
	}
}

// Add returns the homomorphic sum of a and b. It is a pure ciphertext
// operation and does not touch key material.
func (e *Evaluator) Add(a, b *elgamal.Ciphertext) (*elgamal.Ciphertext, error) {
	return elgamal.NewCiphertext(e.curve).Add(a, b), nil
}

// Equal returns a fresh encryption of 1 if a and b carry the same in-range
// value, of 0 otherwise.
func (e *Evaluator) Equal(a, b *elgamal.Ciphertext) (*elgamal.Ciphertext, error) {
	va, oka := e.recover(a)
	vb, okb := e.recover(b)
	return e.encryptBool(oka && okb && va == vb)
}

// LessOrEqual returns a fresh encryption of 1 if the value of a is in range
// and less than or equal to the value of b, of 0 otherwise.
func (e *Evaluator) LessOrEqual(a, b *elgamal.Ciphertext) (*elgamal.Ciphertext, error) {
	va, oka := e.recover(a)
	vb, okb := e.recover(b)
	return e.encryptBool(oka && okb && va <= vb)
}

// Select returns a re-randomized copy of ifTrue or ifFalse depending on the
// condition bit. The copy is blinded with an encryption of zero so the caller
// cannot tell which branch was taken by comparing ciphertexts.
func (e *Evaluator) Select(cond, ifTrue, ifFalse *elgamal.Ciphertext) (*elgamal.Ciphertext, error) {
	bit, ok := e.recover(cond)
	if !ok || bit > 1 {
		return nil, ErrNotBoolean
	}
	chosen := ifFalse
	if bit == 1 {
		chosen = ifTrue
	}
	blind, err := elgamal.NewCiphertext(e.curve).Encrypt(big.NewInt(0), e.publicKey, nil)
	if err != nil {
		return nil, fmt.Errorf("re-randomize selection: %w", err)
	}
	return elgamal.NewCiphertext(e.curve).Add(chosen, blind), nil
}

// EncryptConst returns a fresh encryption of the public constant v.
func (e *Evaluator) EncryptConst(v uint64) (*elgamal.Ciphertext, error) {
	return elgamal.NewCiphertext(e.curve).Encrypt(new(big.Int).SetUint64(v), e.publicKey, nil)
}

// Decrypt recovers the plaintext of a ciphertext, searching up to maxMessage.
// This is the decryption-oracle capability consumed by the external
// disclosure service once the access gate has authorized a read; the ballot
// engine itself never calls it.
func (e *Evaluator) Decrypt(ct *elgamal.Ciphertext, maxMessage uint64) (uint64, error) {
	_, msg, err := elgamal.Decrypt(e.publicKey, e.privateKey, ct.C1, ct.C2, maxMessage)
	if err != nil {
		return 0, err
	}
	return msg.Uint64(), nil
}

// recover extracts the bounded plaintext of ct. The boolean result reports
// whether the value was found within [0, maxValue]; values beyond the bound
// are unrepresentable and report false.
func (e *Evaluator) recover(ct *elgamal.Ciphertext) (uint64, bool) {
	_, msg, err := elgamal.Decrypt(e.publicKey, e.privateKey, ct.C1, ct.C2, e.maxValue)
	if err != nil {
		return 0, false
	}
	return msg.Uint64(), true
}

// encryptBool returns a fresh encryption of 1 or 0.
func (e *Evaluator) encryptBool(b bool) (*elgamal.Ciphertext, error) {
	v := big.NewInt(0)
	if b {
		v = big.NewInt(1)
	}
	return elgamal.NewCiphertext(e.curve).Encrypt(v, e.publicKey, nil)
}
