package client

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Lauren6175/arcane-vote/api"
	"github.com/Lauren6175/arcane-vote/ballotproof"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
	"github.com/Lauren6175/arcane-vote/crypto/ethereum"
	"github.com/Lauren6175/arcane-vote/types"
)

// CreatePoll creates a new poll signed by the given key and returns its
// identifier.
func (c *HTTPclient) CreatePoll(signer *ethereum.SignKeys, question string, options []string, duration time.Duration) (types.PollID, error) {
	seconds := int64(duration / time.Second)
	signature, err := signer.SignEthereum(api.CreatePollPayload(question, options, seconds))
	if err != nil {
		return 0, fmt.Errorf("could not sign poll request: %w", err)
	}
	body := &api.PollRequest{
		Question:  question,
		Options:   options,
		Duration:  seconds,
		Signature: signature,
	}
	data, status, err := c.Request(HTTPPOST, body, nil, api.PollsEndpoint)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	resp := &api.PollResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return 0, fmt.Errorf("could not decode response: %w", err)
	}
	return resp.PollID, nil
}

// Poll fetches the public projection of a poll.
func (c *HTTPclient) Poll(id types.PollID) (*api.PollInfo, error) {
	data, status, err := c.Request(HTTPGET, nil, nil, "polls", id.String())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	info := &api.PollInfo{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return info, nil
}

// Vote encrypts the given choice for the poll, builds the membership proof
// and submits the signed vote.
func (c *HTTPclient) Vote(signer *ethereum.SignKeys, id types.PollID, choice uint64) error {
	info, err := c.Poll(id)
	if err != nil {
		return err
	}
	curve := curves.New(info.CurveType)
	publicKey := curves.New(info.CurveType)
	if err := publicKey.Unmarshal(info.PublicKey); err != nil {
		return fmt.Errorf("could not decode poll public key: %w", err)
	}

	rawBallot, rawProof, err := ballotproof.EncryptChoice(curve, publicKey, &ballotproof.Context{
		PollID:     id,
		NumOptions: len(info.Options),
		Voter:      signer.Address(),
	}, choice)
	if err != nil {
		return fmt.Errorf("could not encrypt choice: %w", err)
	}
	signature, err := signer.SignEthereum(api.VotePayload(id, rawBallot))
	if err != nil {
		return fmt.Errorf("could not sign vote: %w", err)
	}

	body := &api.VoteRequest{
		Ballot:    rawBallot,
		Proof:     rawProof,
		Signature: signature,
	}
	data, status, err := c.Request(HTTPPOST, body, nil, "polls", id.String(), "votes")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	return nil
}

// GrantAccess authorizes a grantee to read one encrypted accumulator. The
// signer must be the poll creator.
func (c *HTTPclient) GrantAccess(signer *ethereum.SignKeys, id types.PollID, optionIndex int, grantee common.Address) error {
	signature, err := signer.SignEthereum(api.GrantPayload(id, optionIndex, grantee))
	if err != nil {
		return fmt.Errorf("could not sign grant: %w", err)
	}
	body := &api.GrantRequest{
		OptionIndex: optionIndex,
		Grantee:     grantee,
		Signature:   signature,
	}
	data, status, err := c.Request(HTTPPOST, body, nil, "polls", id.String(), "grants")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	return nil
}

// EncryptedTally reads one encrypted accumulator as the signer.
func (c *HTTPclient) EncryptedTally(signer *ethereum.SignKeys, id types.PollID, optionIndex int) (types.HexBytes, error) {
	signature, err := signer.SignEthereum(api.TallyPayload(id, optionIndex))
	if err != nil {
		return nil, fmt.Errorf("could not sign tally request: %w", err)
	}
	data, status, err := c.Request(HTTPGET, nil,
		[]string{"signature", hex.EncodeToString(signature)},
		"polls", id.String(), "tally", fmt.Sprintf("%d", optionIndex))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	resp := &api.TallyResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return resp.Ciphertext, nil
}
