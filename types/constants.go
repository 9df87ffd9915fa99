package types

const (
	// MaxPollOptions bounds the number of options a poll may declare. It also
	// bounds the plaintext range the homomorphic evaluator has to search when
	// comparing encrypted choices, and keeps the proof transcript within the
	// Poseidon hash input limit (four field elements per option branch).
	MaxPollOptions = 32
	// MaxQuestionLen is the maximum length of a poll question in bytes.
	MaxQuestionLen = 1024
	// MaxOptionLabelLen is the maximum length of an option label in bytes.
	MaxOptionLabelLen = 256
)
