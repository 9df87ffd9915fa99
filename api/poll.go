package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/crypto/ethereum"
	"github.com/Lauren6175/arcane-vote/types"
)

// newPoll creates a new poll
// POST /polls
func (a *API) newPoll(w http.ResponseWriter, r *http.Request) {
	p := &PollRequest{}
	if err := json.NewDecoder(r.Body).Decode(p); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}

	// Extract the creator address from the signature
	creator, err := ethereum.AddrFromSignature(CreatePollPayload(p.Question, p.Options, p.Duration), p.Signature)
	if err != nil {
		ErrInvalidSignature.Withf("could not extract address from signature: %v", err).Write(w)
		return
	}

	id, err := a.engine.CreatePoll(creator, p.Question, p.Options, time.Duration(p.Duration)*time.Second)
	if err != nil {
		fromEngineError(err).Write(w)
		return
	}

	log.Infow("new poll", "pollId", id.String(), "creator", creator.Hex())
	httpWriteJSON(w, &PollResponse{PollID: id})
}

// poll returns the public info of a poll
// GET /polls/{pollId}
func (a *API) poll(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}
	info, err := a.engine.GetPoll(id)
	if err != nil {
		fromEngineError(err).Write(w)
		return
	}
	httpWriteJSON(w, info)
}

// pollIDFromURL parses the poll identifier URL parameter. On failure it
// writes the error response and returns false.
func pollIDFromURL(w http.ResponseWriter, r *http.Request) (types.PollID, bool) {
	raw := chi.URLParam(r, PollURLParam)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ErrMalformedPollID.Withf("%q", raw).Write(w)
		return 0, false
	}
	return types.PollID(id), true
}
