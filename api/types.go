package api

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Lauren6175/arcane-vote/engine"
	"github.com/Lauren6175/arcane-vote/types"
)

// PollRequest is the body of a poll creation request. The caller identity is
// recovered from the signature over CreatePollPayload.
type PollRequest struct {
	Question  string         `json:"question"`
	Options   []string       `json:"options"`
	Duration  int64          `json:"duration"` // seconds
	Signature types.HexBytes `json:"signature"`
}

// PollResponse is the response to a poll creation request.
type PollResponse struct {
	PollID types.PollID `json:"pollId"`
}

// PollInfo is the public projection of a poll, as returned by the poll
// endpoint.
type PollInfo = engine.PollInfo

// VoteRequest is the body of a vote submission. Ballot and Proof carry the
// opaque wire encodings produced by the voter-side encryption; the voter
// identity is recovered from the signature over VotePayload.
type VoteRequest struct {
	Ballot    types.HexBytes `json:"ballot"`
	Proof     types.HexBytes `json:"proof"`
	Signature types.HexBytes `json:"signature"`
}

// GrantRequest is the body of an access grant request, signed by the poll
// creator over GrantPayload.
type GrantRequest struct {
	OptionIndex int            `json:"optionIndex"`
	Grantee     common.Address `json:"grantee"`
	Signature   types.HexBytes `json:"signature"`
}

// TallyResponse carries one encrypted accumulator, byte for byte as stored.
type TallyResponse struct {
	PollID      types.PollID   `json:"pollId"`
	OptionIndex int            `json:"optionIndex"`
	Ciphertext  types.HexBytes `json:"ciphertext"`
}

// Signature payloads. Callers sign the exact byte strings below with their
// Ethereum key; the handlers recover the address from the signature. The
// payloads bind every authenticated field of the request.

// CreatePollPayload is the message signed by the poll creator.
func CreatePollPayload(question string, options []string, duration int64) []byte {
	return []byte(fmt.Sprintf("createPoll%s%s%d", question, strings.Join(options, ","), duration))
}

// VotePayload is the message signed by a voter, binding the ballot bytes to
// the poll.
func VotePayload(pollID types.PollID, ballot types.HexBytes) []byte {
	return []byte(fmt.Sprintf("vote%s%x", pollID, []byte(ballot)))
}

// GrantPayload is the message signed by the creator to grant tally access.
func GrantPayload(pollID types.PollID, optionIndex int, grantee common.Address) []byte {
	return []byte(fmt.Sprintf("grant%s%d%s", pollID, optionIndex, grantee.Hex()))
}

// TallyPayload is the message signed by a reader of one encrypted
// accumulator.
func TallyPayload(pollID types.PollID, optionIndex int) []byte {
	return []byte(fmt.Sprintf("tally%s%d", pollID, optionIndex))
}
