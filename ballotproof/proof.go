// Package ballotproof produces and verifies the validity proof that
// accompanies every encrypted ballot. The proof is a disjunctive
// Chaum-Pedersen proof of membership: it attests, without revealing the
// choice, that the ballot ciphertext is well formed under the poll's public
// key and encrypts some option index within [0, numOptions-1]. The
// Fiat-Shamir challenge binds the proof to a (domain, poll, voter) context so
// it cannot be replayed for another poll or caller.
package ballotproof

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
	"github.com/Lauren6175/arcane-vote/crypto/hash/poseidon"
	"github.com/Lauren6175/arcane-vote/types"
	"github.com/Lauren6175/arcane-vote/util"
)

// DomainTag is the protocol-level separation tag mixed into every challenge
// hash.
const DomainTag = "arcane-vote/choice-proof/v1"

// Context binds a proof to the exact place it may be used: a concrete poll,
// its option count and the submitting identity.
type Context struct {
	PollID     types.PollID
	NumOptions int
	Voter      common.Address
}

// ChoiceProof is the wire form of the membership proof: one
// (challenge, response) scalar pair per candidate option. Exactly one branch
// is honestly proven; the remaining branches are simulated, and the sum of
// all challenges must equal the Fiat-Shamir hash of the transcript.
type ChoiceProof struct {
	Challenges []*types.BigInt `json:"challenges" cbor:"0,keyasint"`
	Responses  []*types.BigInt `json:"responses"  cbor:"1,keyasint"`
}

// Prove builds a ChoiceProof for a ballot ciphertext encrypting choice with
// randomness k under publicKey. The caller-side encryption layer uses it; the
// engine only ever verifies.
func Prove(publicKey ecc.Point, ctx *Context, ct *elgamal.Ciphertext, choice uint64, k *big.Int) (*ChoiceProof, error) {
	n := ctx.NumOptions
	if n < 2 {
		return nil, fmt.Errorf("at least two options required")
	}
	if choice >= uint64(n) {
		return nil, fmt.Errorf("choice %d out of range [0,%d]", choice, n-1)
	}
	order := publicKey.Order()

	challenges := make([]*big.Int, n)
	responses := make([]*big.Int, n)
	commitA := make([]ecc.Point, n)
	commitB := make([]ecc.Point, n)

	// simulate every branch but the real one
	var rt *big.Int
	for j := 0; j < n; j++ {
		if uint64(j) == choice {
			// honest branch: commitments from fresh randomness
			var err error
			rt, err = randScalar(order)
			if err != nil {
				return nil, err
			}
			a := publicKey.New()
			a.ScalarBaseMult(rt)
			b := publicKey.New()
			b.ScalarMult(publicKey, rt)
			commitA[j], commitB[j] = a, b
			continue
		}
		ej, err := randScalar(order)
		if err != nil {
			return nil, err
		}
		zj, err := randScalar(order)
		if err != nil {
			return nil, err
		}
		challenges[j], responses[j] = ej, zj
		commitA[j], commitB[j] = simulateCommitments(publicKey, ct, j, ej, zj)
	}

	// Fiat-Shamir challenge over the full transcript
	eTotal, err := challengeHash(publicKey, ctx, ct, commitA, commitB)
	if err != nil {
		return nil, err
	}

	// honest branch closes the sum: e_t = eTotal - sum(e_j), z_t = r + e_t*k
	eSum := new(big.Int)
	for j := 0; j < n; j++ {
		if uint64(j) != choice {
			eSum.Add(eSum, challenges[j])
		}
	}
	et := new(big.Int).Sub(eTotal, eSum)
	et.Mod(et, order)
	zt := new(big.Int).Mul(et, k)
	zt.Add(zt, rt)
	zt.Mod(zt, order)
	challenges[choice], responses[choice] = et, zt

	proof := &ChoiceProof{
		Challenges: make([]*types.BigInt, n),
		Responses:  make([]*types.BigInt, n),
	}
	for j := 0; j < n; j++ {
		proof.Challenges[j] = (*types.BigInt)(challenges[j])
		proof.Responses[j] = (*types.BigInt)(responses[j])
	}
	return proof, nil
}

// simulateCommitments recomputes the branch commitments implied by a
// (challenge, response) pair for candidate value j:
//
//	A_j = z_j*G - e_j*C1
//	B_j = z_j*Y - e_j*(C2 - j*G)
//
// The honest prover uses it backwards to fake branches; the verifier uses it
// forwards to rebuild the transcript.
func simulateCommitments(publicKey ecc.Point, ct *elgamal.Ciphertext, j int, ej, zj *big.Int) (ecc.Point, ecc.Point) {
	// A_j
	a := publicKey.New()
	a.ScalarBaseMult(zj)
	tmp := publicKey.New()
	tmp.ScalarMult(ct.C1, ej)
	tmp.Neg(tmp)
	a.Add(a, tmp)

	// C2 - j*G
	shifted := publicKey.New()
	shifted.ScalarBaseMult(new(big.Int).SetInt64(int64(j)))
	shifted.Neg(shifted)
	shifted.Add(ct.C2, shifted)

	// B_j
	b := publicKey.New()
	b.ScalarMult(publicKey, zj)
	tmp2 := publicKey.New()
	tmp2.ScalarMult(shifted, ej)
	tmp2.Neg(tmp2)
	b.Add(b, tmp2)

	return a, b
}

// challengeHash computes the Fiat-Shamir challenge with Poseidon over the
// domain tag, the binding context, the public key, the ciphertext and all
// branch commitments. The result is already an element of the curve's scalar
// field.
func challengeHash(publicKey ecc.Point, ctx *Context, ct *elgamal.Ciphertext, commitA, commitB []ecc.Point) (*big.Int, error) {
	inputs := []*big.Int{
		new(big.Int).SetBytes([]byte(DomainTag)),
		new(big.Int).SetUint64(uint64(ctx.PollID)),
		big.NewInt(int64(ctx.NumOptions)),
		new(big.Int).SetBytes(ctx.Voter.Bytes()),
	}
	appendPoint := func(p ecc.Point) {
		x, y := p.Point()
		inputs = append(inputs, util.BigToFF(x), util.BigToFF(y))
	}
	appendPoint(publicKey)
	appendPoint(ct.C1)
	appendPoint(ct.C2)
	for i := range commitA {
		appendPoint(commitA[i])
		appendPoint(commitB[i])
	}
	return poseidon.MultiPoseidon(inputs...)
}

// randScalar returns a uniformly random non-zero scalar modulo order.
func randScalar(order *big.Int) (*big.Int, error) {
	s, err := rand.Int(rand.Reader, order)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random scalar: %v", err)
	}
	if s.Sign() == 0 {
		s = big.NewInt(1)
	}
	return s, nil
}
