//nolint:lll
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Lauren6175/arcane-vote/engine"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400, 403, 404 or 409, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX
// If you notice there's a gap (say, error code 40010, 40011 and 40013 exist, 40012 is missing) DON'T fill in the gap,
// that code was used in the past for some error (not anymore) and shouldn't be reused.
// There's no correlation between Code and HTTP Status.
var (
	ErrResourceNotFound      = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody         = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrInvalidSignature      = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid signature")}
	ErrMalformedPollID       = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed poll ID")}
	ErrPollNotFound          = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("poll not found")}
	ErrInvalidPollParameters = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid poll parameters")}
	ErrPollClosed            = Error{Code: 40009, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("poll is closed")}
	ErrAlreadyVoted          = Error{Code: 40010, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("participant already voted")}
	ErrInvalidBallotProof    = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid ballot proof")}
	ErrInvalidOption         = Error{Code: 40012, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid option index")}
	ErrNotAuthorized         = Error{Code: 40013, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("not authorized")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)

// fromEngineError maps the engine sentinels to the API error table.
func fromEngineError(err error) Error {
	switch {
	case errors.Is(err, engine.ErrPollNotFound):
		return ErrPollNotFound.WithErr(err)
	case errors.Is(err, engine.ErrInvalidPollParameters):
		return ErrInvalidPollParameters.WithErr(err)
	case errors.Is(err, engine.ErrPollClosed):
		return ErrPollClosed.WithErr(err)
	case errors.Is(err, engine.ErrAlreadyVoted):
		return ErrAlreadyVoted.WithErr(err)
	case errors.Is(err, engine.ErrInvalidProof):
		return ErrInvalidBallotProof.WithErr(err)
	case errors.Is(err, engine.ErrInvalidOption):
		return ErrInvalidOption.WithErr(err)
	case errors.Is(err, engine.ErrNotAuthorized):
		return ErrNotAuthorized.WithErr(err)
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}
