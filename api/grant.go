package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lauren6175/arcane-vote/crypto/ethereum"
	"github.com/Lauren6175/arcane-vote/util"
)

// newGrant authorizes a grantee to read one encrypted accumulator
// POST /polls/{pollId}/grants
func (a *API) newGrant(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}
	g := &GrantRequest{}
	if err := json.NewDecoder(r.Body).Decode(g); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}

	caller, err := ethereum.AddrFromSignature(GrantPayload(id, g.OptionIndex, g.Grantee), g.Signature)
	if err != nil {
		ErrInvalidSignature.Withf("could not extract address from signature: %v", err).Write(w)
		return
	}

	if err := a.engine.GrantDecryptAccess(id, g.OptionIndex, g.Grantee, caller); err != nil {
		fromEngineError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// tally returns one encrypted accumulator, still encrypted, to an authorized
// reader. The caller identity comes from the "signature" query parameter,
// hex-encoded, over TallyPayload.
// GET /polls/{pollId}/tally/{option}
func (a *API) tally(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}
	rawOption := chi.URLParam(r, TallyURLParam)
	option, err := strconv.Atoi(rawOption)
	if err != nil {
		ErrInvalidOption.Withf("%q", rawOption).Write(w)
		return
	}

	signature, err := hex.DecodeString(util.TrimHex(r.URL.Query().Get("signature")))
	if err != nil {
		ErrInvalidSignature.Withf("could not decode signature: %v", err).Write(w)
		return
	}
	caller, err := ethereum.AddrFromSignature(TallyPayload(id, option), signature)
	if err != nil {
		ErrInvalidSignature.Withf("could not extract address from signature: %v", err).Write(w)
		return
	}

	ciphertext, err := a.engine.ReadEncryptedTally(id, option, caller)
	if err != nil {
		fromEngineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &TallyResponse{
		PollID:      id,
		OptionIndex: option,
		Ciphertext:  ciphertext,
	})
}
