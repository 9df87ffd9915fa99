package homomorphic

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
)

func newTestEvaluator(c *qt.C, maxValue uint64) (*Evaluator, ecc.Point) {
	curve := curves.New(curves.CurveTypeBN254)
	publicKey, privateKey, err := elgamal.GenerateKey(curve)
	c.Assert(err, qt.IsNil)
	return NewEvaluator(curve, publicKey, privateKey, maxValue), publicKey
}

func (e *Evaluator) mustDecrypt(c *qt.C, ct *elgamal.Ciphertext) uint64 {
	v, err := e.Decrypt(ct, 100)
	c.Assert(err, qt.IsNil)
	return v
}

func TestAdd(t *testing.T) {
	c := qt.New(t)
	ev, _ := newTestEvaluator(c, 10)

	a, err := ev.EncryptConst(3)
	c.Assert(err, qt.IsNil)
	b, err := ev.EncryptConst(4)
	c.Assert(err, qt.IsNil)
	sum, err := ev.Add(a, b)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, sum), qt.Equals, uint64(7))
}

func TestEqualAndLessOrEqual(t *testing.T) {
	c := qt.New(t)
	ev, _ := newTestEvaluator(c, 10)

	three, err := ev.EncryptConst(3)
	c.Assert(err, qt.IsNil)
	four, err := ev.EncryptConst(4)
	c.Assert(err, qt.IsNil)
	alsoThree, err := ev.EncryptConst(3)
	c.Assert(err, qt.IsNil)

	eq, err := ev.Equal(three, alsoThree)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, eq), qt.Equals, uint64(1))

	neq, err := ev.Equal(three, four)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, neq), qt.Equals, uint64(0))

	le, err := ev.LessOrEqual(three, four)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, le), qt.Equals, uint64(1))

	gt, err := ev.LessOrEqual(four, three)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, gt), qt.Equals, uint64(0))
}

func TestSelectRerandomizes(t *testing.T) {
	c := qt.New(t)
	ev, _ := newTestEvaluator(c, 10)

	one, err := ev.EncryptConst(1)
	c.Assert(err, qt.IsNil)
	zero, err := ev.EncryptConst(0)
	c.Assert(err, qt.IsNil)
	five, err := ev.EncryptConst(5)
	c.Assert(err, qt.IsNil)
	nine, err := ev.EncryptConst(9)
	c.Assert(err, qt.IsNil)

	picked, err := ev.Select(one, five, nine)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, picked), qt.Equals, uint64(5))
	// fresh randomness: same value, different ciphertext
	c.Assert(picked.C1.Equal(five.C1), qt.IsFalse)

	picked, err = ev.Select(zero, five, nine)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, picked), qt.Equals, uint64(9))

	// non-boolean condition is rejected
	_, err = ev.Select(five, one, zero)
	c.Assert(err, qt.ErrorIs, ErrNotBoolean)
}

func TestComparisonsBeyondBound(t *testing.T) {
	c := qt.New(t)
	curve := curves.New(curves.CurveTypeBN254)
	publicKey, privateKey, err := elgamal.GenerateKey(curve)
	c.Assert(err, qt.IsNil)
	ev := NewEvaluator(curve, publicKey, privateKey, 2)

	// a value far beyond the bound compares as neither equal nor ordered
	huge := elgamal.NewCiphertext(curve)
	_, err = huge.Encrypt(big.NewInt(1_000_000), publicKey, nil)
	c.Assert(err, qt.IsNil)
	two, err := ev.EncryptConst(2)
	c.Assert(err, qt.IsNil)

	eq, err := ev.Equal(huge, two)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, eq), qt.Equals, uint64(0))

	le, err := ev.LessOrEqual(huge, two)
	c.Assert(err, qt.IsNil)
	c.Assert(ev.mustDecrypt(c, le), qt.Equals, uint64(0))
}
