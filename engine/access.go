package engine

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/types"
)

// GrantDecryptAccess lets the poll creator authorize a grantee to read the
// encrypted accumulator of one option. Grants are append-only and
// re-granting is a no-op. The creator never needs a grant.
func (e *Engine) GrantDecryptAccess(id types.PollID, optionIndex int, grantee, caller common.Address) error {
	lock := e.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	poll, err := e.loadPoll(id)
	if err != nil {
		return err
	}
	if caller != poll.Creator {
		return fmt.Errorf("%w: only the poll creator can grant access", ErrNotAuthorized)
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}
	if err := e.stg.SetGrant(id, optionIndex, grantee, caller); err != nil {
		return fmt.Errorf("could not store grant: %w", err)
	}
	log.Infow("access granted", "pollId", id.String(), "option", optionIndex,
		"grantee", grantee.Hex())
	return nil
}

// ReadEncryptedTally returns the encrypted accumulator of one option, byte
// for byte as stored. Only the poll creator and explicit grantees may read
// it; the engine never decrypts it.
func (e *Engine) ReadEncryptedTally(id types.PollID, optionIndex int, caller common.Address) (types.HexBytes, error) {
	lock := e.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	poll, err := e.loadPoll(id)
	if err != nil {
		return nil, err
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}
	if caller != poll.Creator {
		granted, err := e.stg.HasGrant(id, optionIndex, caller)
		if err != nil {
			return nil, fmt.Errorf("could not check grant: %w", err)
		}
		if !granted {
			return nil, fmt.Errorf("%w: no grant for option %d", ErrNotAuthorized, optionIndex)
		}
	}
	tally := make(types.HexBytes, len(poll.VoteCounts[optionIndex]))
	copy(tally, poll.VoteCounts[optionIndex])
	return tally, nil
}
