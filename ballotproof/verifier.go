package ballotproof

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
)

// VerifiedBallot is the output of a successful ImportVote call: a ciphertext
// whose well-formedness and range membership have been checked against its
// proof. Only verified ballots ever reach the tally.
type VerifiedBallot struct {
	Ciphertext *elgamal.Ciphertext
}

// EncodeBallot serializes a ballot ciphertext for transport. Both points use
// the curve's canonical encoding so the receiving side can validate them.
func EncodeBallot(ct *elgamal.Ciphertext) []byte {
	return append(ct.C1.Marshal(), ct.C2.Marshal()...)
}

// DecodeBallot parses a transported ballot, rejecting encodings whose points
// are not valid curve elements.
func DecodeBallot(curve ecc.Point, data []byte) (*elgamal.Ciphertext, error) {
	if len(data) == 0 || len(data)%2 != 0 {
		return nil, fmt.Errorf("invalid ballot encoding length %d", len(data))
	}
	half := len(data) / 2
	ct := elgamal.NewCiphertext(curve)
	if err := ct.C1.Unmarshal(data[:half]); err != nil {
		return nil, fmt.Errorf("invalid ballot point: %w", err)
	}
	if err := ct.C2.Unmarshal(data[half:]); err != nil {
		return nil, fmt.Errorf("invalid ballot point: %w", err)
	}
	return ct, nil
}

// ImportVote validates a raw encrypted ballot against its raw proof within
// the given context. It checks that the ciphertext decodes to valid curve
// points under the poll's public key and that the membership proof verifies,
// which implies the encrypted choice lies in [0, ctx.NumOptions-1]. The
// plaintext choice is never recovered.
func ImportVote(curve, publicKey ecc.Point, ctx *Context, rawBallot, rawProof []byte) (*VerifiedBallot, error) {
	ct, err := DecodeBallot(curve, rawBallot)
	if err != nil {
		return nil, err
	}
	var proof ChoiceProof
	if err := cbor.Unmarshal(rawProof, &proof); err != nil {
		return nil, fmt.Errorf("could not decode proof: %w", err)
	}
	if err := VerifyProof(publicKey, ctx, ct, &proof); err != nil {
		return nil, err
	}
	return &VerifiedBallot{Ciphertext: ct}, nil
}

// VerifyProof checks a ChoiceProof against a decoded ciphertext. It rebuilds
// every branch commitment from the published (challenge, response) pairs,
// recomputes the Fiat-Shamir challenge and requires that the challenges sum
// to it modulo the curve order.
func VerifyProof(publicKey ecc.Point, ctx *Context, ct *elgamal.Ciphertext, proof *ChoiceProof) error {
	n := ctx.NumOptions
	if n < 2 {
		return fmt.Errorf("at least two options required")
	}
	if len(proof.Challenges) != n || len(proof.Responses) != n {
		return fmt.Errorf("proof has %d/%d branches, want %d",
			len(proof.Challenges), len(proof.Responses), n)
	}
	order := publicKey.Order()

	commitA := make([]ecc.Point, n)
	commitB := make([]ecc.Point, n)
	eSum := new(big.Int)
	for j := 0; j < n; j++ {
		if proof.Challenges[j] == nil || proof.Responses[j] == nil {
			return fmt.Errorf("proof branch %d is empty", j)
		}
		ej := proof.Challenges[j].MathBigInt()
		zj := proof.Responses[j].MathBigInt()
		if ej.Sign() < 0 || ej.Cmp(order) >= 0 || zj.Sign() < 0 || zj.Cmp(order) >= 0 {
			return fmt.Errorf("proof branch %d has out of range scalars", j)
		}
		commitA[j], commitB[j] = simulateCommitments(publicKey, ct, j, ej, zj)
		eSum.Add(eSum, ej)
	}
	eSum.Mod(eSum, order)

	eTotal, err := challengeHash(publicKey, ctx, ct, commitA, commitB)
	if err != nil {
		return err
	}
	if eSum.Cmp(eTotal) != 0 {
		return fmt.Errorf("challenge mismatch")
	}
	return nil
}
