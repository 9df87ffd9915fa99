package storage

import (
	"errors"
	"fmt"

	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"

	"github.com/Lauren6175/arcane-vote/types"
)

// NextPollID reserves and returns the next poll identifier. Identifiers are
// monotonic and never reused, also across restarts.
func (s *Storage) NextPollID() (types.PollID, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	var last types.PollID
	rTx := prefixeddb.NewPrefixedReader(s.db, sequencePrefix)
	data, err := rTx.Get(pollSequenceKey)
	switch {
	case err == nil:
		last, err = types.PollIDFromBytes(data)
		if err != nil {
			return 0, fmt.Errorf("corrupt poll sequence: %w", err)
		}
	case errors.Is(err, db.ErrKeyNotFound):
		// first poll
	default:
		return 0, err
	}

	next := last + 1
	wTx := prefixeddb.NewPrefixedWriteTx(s.db.WriteTx(), sequencePrefix)
	if err := wTx.Set(pollSequenceKey, next.Bytes()); err != nil {
		wTx.Discard()
		return 0, err
	}
	if err := wTx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

// SetPoll stores a poll artifact.
func (s *Storage) SetPoll(p *Poll) error {
	if p == nil {
		return fmt.Errorf("nil poll data")
	}
	return s.setArtifact(pollPrefix, p.ID.Bytes(), p)
}

// Poll retrieves a poll from the storage. It returns ErrNotFound if the poll
// does not exist.
func (s *Storage) Poll(id types.PollID) (*Poll, error) {
	p := &Poll{}
	if err := s.getArtifact(pollPrefix, id.Bytes(), p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPolls returns the identifiers of all stored polls.
func (s *Storage) ListPolls() ([]types.PollID, error) {
	keys, err := s.listArtifacts(pollPrefix, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]types.PollID, 0, len(keys))
	for _, k := range keys {
		id, err := types.PollIDFromBytes(k)
		if err != nil {
			return nil, fmt.Errorf("corrupt poll key: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CommitVote persists the updated poll accumulators and the voter's receipt
// in a single transaction, so a vote is either fully applied or not at all.
func (s *Storage) CommitVote(p *Poll, voter Receipt) error {
	val, err := encodeArtifact(p)
	if err != nil {
		return err
	}
	rval, err := encodeArtifact(voter)
	if err != nil {
		return err
	}
	tx := s.db.WriteTx()
	pollTx := prefixeddb.NewPrefixedWriteTx(tx, pollPrefix)
	if err := pollTx.Set(p.ID.Bytes(), val); err != nil {
		tx.Discard()
		return err
	}
	receiptTx := prefixeddb.NewPrefixedWriteTx(tx, receiptPrefix)
	if err := receiptTx.Set(receiptKey(p.ID, voter.Voter), rval); err != nil {
		tx.Discard()
		return err
	}
	return tx.Commit()
}
