package elgamal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
)

// Tally is an ordered sequence of homomorphic accumulators, one per poll
// option. Adding a ciphertext vector to a Tally folds each component into the
// matching accumulator.
type Tally struct {
	CurveType   string        `json:"curveType"`
	Ciphertexts []*Ciphertext `json:"ciphertexts"`
}

// NewTally creates a Tally with one encrypted-zero accumulator per option,
// each freshly encrypted under the given public key.
func NewTally(curve ecc.Point, publicKey ecc.Point, numOptions int) (*Tally, error) {
	t := &Tally{
		CurveType:   curve.Type(),
		Ciphertexts: make([]*Ciphertext, numOptions),
	}
	for i := range t.Ciphertexts {
		ct, err := NewCiphertext(curve).Encrypt(big.NewInt(0), publicKey, nil)
		if err != nil {
			return nil, fmt.Errorf("initialize accumulator %d: %w", i, err)
		}
		t.Ciphertexts[i] = ct
	}
	return t, nil
}

// Add adds two Tallies component-wise and stores the result in the receiver,
// which is also returned. Both operands must have the same length.
func (t *Tally) Add(x, y *Tally) *Tally {
	for i := range t.Ciphertexts {
		t.Ciphertexts[i].Add(x.Ciphertexts[i], y.Ciphertexts[i])
	}
	return t
}

// Serialize returns a slice of len(Ciphertexts)*4*32 bytes, the concatenation
// of each accumulator's serialization.
func (t *Tally) Serialize() []byte {
	var buf bytes.Buffer
	for _, z := range t.Ciphertexts {
		buf.Write(z.Serialize())
	}
	return buf.Bytes()
}

// Deserialize reconstructs a Tally from a slice of bytes. The number of
// accumulators is derived from the input length, which must be a multiple of
// the ciphertext size.
func (t *Tally) Deserialize(curve ecc.Point, data []byte) error {
	if len(data) == 0 || len(data)%SizeCiphertext != 0 {
		return fmt.Errorf("invalid input length for Tally: got %d bytes", len(data))
	}
	n := len(data) / SizeCiphertext
	t.CurveType = curve.Type()
	t.Ciphertexts = make([]*Ciphertext, n)
	for i := range t.Ciphertexts {
		t.Ciphertexts[i] = NewCiphertext(curve)
		if err := t.Ciphertexts[i].Deserialize(data[i*SizeCiphertext : (i+1)*SizeCiphertext]); err != nil {
			return err
		}
	}
	return nil
}

// BigInts returns a slice with 4 BigInts per accumulator, namely the coords
// of each Ciphertext C1.X, C1.Y, C2.X, C2.Y.
func (t *Tally) BigInts() []*big.Int {
	var list []*big.Int
	for _, z := range t.Ciphertexts {
		c1x, c1y := z.C1.Point()
		c2x, c2y := z.C2.Point()
		list = append(list, c1x, c1y, c2x, c2y)
	}
	return list
}

// String returns a string representation of the Tally.
func (t *Tally) String() string {
	b, err := json.Marshal(t)
	if b == nil || err != nil {
		return ""
	}
	return string(b)
}
