package types

import (
	"encoding/binary"
	"fmt"
)

// PollID identifies a poll. IDs are allocated sequentially by the registry,
// monotonically increasing and never reused.
type PollID uint64

// Bytes returns the big-endian fixed-width key representation of the ID, so
// that lexicographic ordering of keys matches numeric ordering of IDs.
func (p PollID) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(p))
	return b
}

// PollIDFromBytes parses the fixed-width key representation produced by
// Bytes.
func PollIDFromBytes(b []byte) (PollID, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("invalid poll id length: %d", len(b))
	}
	return PollID(binary.BigEndian.Uint64(b)), nil
}

func (p PollID) String() string {
	return fmt.Sprintf("%d", uint64(p))
}
