package storage

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Lauren6175/arcane-vote/types"
)

// Receipt marks that an identity has voted in a poll. It carries no
// information about the ballot content. Receipts are set once and never
// cleared.
type Receipt struct {
	Voter   common.Address `json:"voter"   cbor:"0,keyasint"`
	VotedAt time.Time      `json:"votedAt" cbor:"1,keyasint"`
}

func receiptKey(id types.PollID, voter common.Address) []byte {
	return append(id.Bytes(), voter.Bytes()...)
}

// HasVoted reports whether the voter already has a receipt for the poll.
func (s *Storage) HasVoted(id types.PollID, voter common.Address) (bool, error) {
	return s.hasArtifact(receiptPrefix, receiptKey(id, voter))
}

// SetVoted writes the voter's receipt for the poll. Votes submitted by the
// engine go through Storage.CommitVote instead, which writes the receipt and
// the updated accumulators atomically.
func (s *Storage) SetVoted(id types.PollID, voter common.Address) error {
	r := Receipt{Voter: voter, VotedAt: time.Now()}
	return s.setArtifact(receiptPrefix, receiptKey(id, voter), r)
}
