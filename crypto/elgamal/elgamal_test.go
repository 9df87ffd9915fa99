package elgamal

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
)

func testKey(c *qt.C) (ecc.Point, *big.Int) {
	curve := curves.New(curves.CurveTypeBN254)
	publicKey, privateKey, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)
	return publicKey, privateKey
}

func TestEncryptDecrypt(t *testing.T) {
	c := qt.New(t)
	publicKey, privateKey := testKey(c)

	for _, msg := range []int64{0, 1, 17, 255} {
		c1, c2, k, err := Encrypt(publicKey, big.NewInt(msg))
		c.Assert(err, qt.IsNil)
		c.Assert(CheckK(c1, k), qt.IsTrue)

		_, got, err := Decrypt(publicKey, privateKey, c1, c2, 1000)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Int64(), qt.Equals, msg)
	}
}

func TestDecryptBeyondBoundFails(t *testing.T) {
	c := qt.New(t)
	publicKey, privateKey := testKey(c)

	c1, c2, _, err := Encrypt(publicKey, big.NewInt(100_000))
	c.Assert(err, qt.IsNil)
	_, _, err = Decrypt(publicKey, privateKey, c1, c2, 10)
	c.Assert(err, qt.IsNotNil)
}

func TestHomomorphicAdd(t *testing.T) {
	c := qt.New(t)
	curve := curves.New(curves.CurveTypeBN254)
	publicKey, privateKey := testKey(c)

	a, err := NewCiphertext(curve).Encrypt(big.NewInt(5), publicKey, nil)
	c.Assert(err, qt.IsNil)
	b, err := NewCiphertext(curve).Encrypt(big.NewInt(7), publicKey, nil)
	c.Assert(err, qt.IsNil)

	sum := NewCiphertext(curve).Add(a, b)
	_, got, err := Decrypt(publicKey, privateKey, sum.C1, sum.C2, 100)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Int64(), qt.Equals, int64(12))
}

func TestCiphertextSerialization(t *testing.T) {
	c := qt.New(t)
	curve := curves.New(curves.CurveTypeBN254)
	publicKey, _ := testKey(c)

	ct, err := NewCiphertext(curve).Encrypt(big.NewInt(3), publicKey, nil)
	c.Assert(err, qt.IsNil)

	data := ct.Serialize()
	c.Assert(data, qt.HasLen, SizeCiphertext)
	back := NewCiphertext(curve)
	c.Assert(back.Deserialize(data), qt.IsNil)
	c.Assert(back.C1.Equal(ct.C1), qt.IsTrue)
	c.Assert(back.C2.Equal(ct.C2), qt.IsTrue)

	c.Assert(back.Deserialize(data[:16]), qt.IsNotNil)
}

func TestTally(t *testing.T) {
	c := qt.New(t)
	curve := curves.New(curves.CurveTypeBN254)
	publicKey, privateKey := testKey(c)

	tally, err := NewTally(curve, publicKey, 3)
	c.Assert(err, qt.IsNil)
	c.Assert(tally.Ciphertexts, qt.HasLen, 3)

	// fresh accumulators all hold zero
	for _, ct := range tally.Ciphertexts {
		_, got, err := Decrypt(publicKey, privateKey, ct.C1, ct.C2, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Int64(), qt.Equals, int64(0))
	}

	// fold a vector encrypting (1, 0, 1)
	votes, err := NewTally(curve, publicKey, 3)
	c.Assert(err, qt.IsNil)
	for i, v := range []int64{1, 0, 1} {
		_, err := votes.Ciphertexts[i].Encrypt(big.NewInt(v), publicKey, nil)
		c.Assert(err, qt.IsNil)
	}
	tally.Add(tally, votes)

	data := tally.Serialize()
	back := &Tally{}
	c.Assert(back.Deserialize(curve, data), qt.IsNil)
	for i, want := range []int64{1, 0, 1} {
		_, got, err := Decrypt(publicKey, privateKey, back.Ciphertexts[i].C1, back.Ciphertexts[i].C2, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Int64(), qt.Equals, want)
	}
}
