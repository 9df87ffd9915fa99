package engine

import "errors"

// Sentinel errors returned by the engine operations. The API layer maps them
// to its error code table.
var (
	ErrInvalidPollParameters = errors.New("invalid poll parameters")
	ErrPollNotFound          = errors.New("poll not found")
	ErrPollClosed            = errors.New("poll is closed")
	ErrAlreadyVoted          = errors.New("participant already voted")
	ErrInvalidProof          = errors.New("invalid ballot proof")
	ErrInvalidOption         = errors.New("invalid option index")
	ErrNotAuthorized         = errors.New("not authorized")
)
