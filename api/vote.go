package api

import (
	"encoding/json"
	"net/http"

	"github.com/Lauren6175/arcane-vote/crypto/ethereum"
)

// newVote submits an encrypted vote to a poll
// POST /polls/{pollId}/votes
func (a *API) newVote(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}
	v := &VoteRequest{}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}

	// Extract the voter address from the signature over the ballot
	voter, err := ethereum.AddrFromSignature(VotePayload(id, v.Ballot), v.Signature)
	if err != nil {
		ErrInvalidSignature.Withf("could not extract address from signature: %v", err).Write(w)
		return
	}

	if err := a.engine.SubmitVote(id, voter, v.Ballot, v.Proof); err != nil {
		fromEngineError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
