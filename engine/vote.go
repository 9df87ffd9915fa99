package engine

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/ballotproof"
	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
	"github.com/Lauren6175/arcane-vote/crypto/homomorphic"
	"github.com/Lauren6175/arcane-vote/storage"
	"github.com/Lauren6175/arcane-vote/types"
)

// SubmitVote validates an encrypted ballot and folds it into the poll's
// accumulators. The ballot is never decrypted: validation is done by the
// proof verifier and the accumulator update goes through the homomorphic
// Scheme primitives only. The receipt and the updated accumulators are
// committed together, so the whole operation either applies or leaves no
// trace. A failed proof does not consume the voter's receipt.
func (e *Engine) SubmitVote(id types.PollID, voter common.Address, rawBallot, rawProof []byte) error {
	lock := e.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	poll, err := e.loadPoll(id)
	if err != nil {
		return err
	}
	if !poll.Active || time.Now().After(poll.EndTime) {
		return fmt.Errorf("%w: %s", ErrPollClosed, id)
	}
	voted, err := e.stg.HasVoted(id, voter)
	if err != nil {
		return fmt.Errorf("could not check receipt: %w", err)
	}
	if voted {
		return fmt.Errorf("%w: %s in poll %s", ErrAlreadyVoted, voter.Hex(), id)
	}

	curve := curves.New(poll.CurveType)
	publicKey, privateKey, err := e.stg.EncryptionKeys(id, poll.CurveType)
	if err != nil {
		return fmt.Errorf("could not read poll keys: %w", err)
	}

	vb, err := ballotproof.ImportVote(curve, publicKey, &ballotproof.Context{
		PollID:     id,
		NumOptions: len(poll.Options),
		Voter:      voter,
	}, rawBallot, rawProof)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}

	scheme := homomorphic.NewEvaluator(curve, publicKey, privateKey, uint64(len(poll.Options)))
	if err := e.foldVote(scheme, curve, poll, vb); err != nil {
		return err
	}

	receipt := storage.Receipt{Voter: voter, VotedAt: time.Now()}
	if err := e.stg.CommitVote(poll, receipt); err != nil {
		return fmt.Errorf("could not commit vote: %w", err)
	}
	log.Infow("vote accepted", "pollId", id.String(), "voter", voter.Hex())
	return nil
}

// foldVote updates every accumulator of the poll with the verified ballot.
// For each option i the increment is Select(guard, enc(1), enc(0)) where
// guard holds only if the ballot is in range and encrypts exactly i, so an
// in-range ballot increments exactly one accumulator and any out-of-range
// ciphertext increments none. The updated accumulators are written back into
// poll.VoteCounts but not persisted here.
func (e *Engine) foldVote(scheme homomorphic.Scheme, curve ecc.Point, poll *storage.Poll, vb *ballotproof.VerifiedBallot) error {
	zero, err := scheme.EncryptConst(0)
	if err != nil {
		return fmt.Errorf("could not encrypt constant: %w", err)
	}
	one, err := scheme.EncryptConst(1)
	if err != nil {
		return fmt.Errorf("could not encrypt constant: %w", err)
	}
	maxIndex, err := scheme.EncryptConst(uint64(len(poll.Options) - 1))
	if err != nil {
		return fmt.Errorf("could not encrypt constant: %w", err)
	}
	inRange, err := scheme.LessOrEqual(vb.Ciphertext, maxIndex)
	if err != nil {
		return fmt.Errorf("could not evaluate range guard: %w", err)
	}

	for i := range poll.Options {
		count := elgamal.NewCiphertext(curve)
		if err := count.Deserialize(poll.VoteCounts[i]); err != nil {
			return fmt.Errorf("corrupt accumulator %d: %w", i, err)
		}
		optValue, err := scheme.EncryptConst(uint64(i))
		if err != nil {
			return fmt.Errorf("could not encrypt constant: %w", err)
		}
		isChoice, err := scheme.Equal(vb.Ciphertext, optValue)
		if err != nil {
			return fmt.Errorf("could not compare ballot: %w", err)
		}
		guard, err := scheme.Select(inRange, isChoice, zero)
		if err != nil {
			return fmt.Errorf("could not guard comparison: %w", err)
		}
		increment, err := scheme.Select(guard, one, zero)
		if err != nil {
			return fmt.Errorf("could not select increment: %w", err)
		}
		updated, err := scheme.Add(count, increment)
		if err != nil {
			return fmt.Errorf("could not update accumulator %d: %w", i, err)
		}
		poll.VoteCounts[i] = updated.Serialize()
	}
	return nil
}
