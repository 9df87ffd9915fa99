package ballotproof

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
)

// EncryptChoice is the voter-side counterpart of ImportVote. It encrypts the
// given option index under the poll's public key and produces the matching
// membership proof, both in their wire encodings.
func EncryptChoice(curve, publicKey ecc.Point, ctx *Context, choice uint64) (rawBallot, rawProof []byte, err error) {
	k, err := elgamal.RandK()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate encryption randomness: %w", err)
	}
	ct := elgamal.NewCiphertext(curve)
	if _, err := ct.Encrypt(new(big.Int).SetUint64(choice), publicKey, k); err != nil {
		return nil, nil, err
	}
	proof, err := Prove(publicKey, ctx, ct, choice, k)
	if err != nil {
		return nil, nil, err
	}
	rawProof, err = cbor.Marshal(proof)
	if err != nil {
		return nil, nil, fmt.Errorf("could not encode proof: %w", err)
	}
	return EncodeBallot(ct), rawProof, nil
}
