package storage

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/Lauren6175/arcane-vote/types"
)

// Poll is the stored form of a poll. VoteCounts holds one serialized ElGamal
// ciphertext per option, always the same length as Options; the accumulators
// are stored in their byte encoding so decoding does not depend on the curve
// implementation.
type Poll struct {
	ID         types.PollID     `json:"id"         cbor:"0,keyasint"`
	Creator    common.Address   `json:"creator"    cbor:"1,keyasint"`
	Question   string           `json:"question"   cbor:"2,keyasint"`
	Options    []string         `json:"options"    cbor:"3,keyasint"`
	StartTime  time.Time        `json:"startTime"  cbor:"4,keyasint"`
	EndTime    time.Time        `json:"endTime"    cbor:"5,keyasint"`
	Active     bool             `json:"active"     cbor:"6,keyasint"`
	CurveType  string           `json:"curveType"  cbor:"7,keyasint"`
	VoteCounts []types.HexBytes `json:"-"          cbor:"8,keyasint"`
}

// AccessGrant records that a grantee may read the encrypted accumulator of
// one option of one poll. Grants are append-only.
type AccessGrant struct {
	ID          uuid.UUID      `json:"id"          cbor:"0,keyasint"`
	PollID      types.PollID   `json:"pollId"      cbor:"1,keyasint"`
	OptionIndex int            `json:"optionIndex" cbor:"2,keyasint"`
	Grantee     common.Address `json:"grantee"     cbor:"3,keyasint"`
	Granter     common.Address `json:"granter"     cbor:"4,keyasint"`
	GrantedAt   time.Time      `json:"grantedAt"   cbor:"5,keyasint"`
}

// EncryptionKeys holds the ElGamal key pair of a poll. The private scalar is
// the evaluator and decryption capability; it is never serialized to JSON.
type EncryptionKeys struct {
	X          *types.BigInt `json:"x" cbor:"0,keyasint"`
	Y          *types.BigInt `json:"y" cbor:"1,keyasint"`
	PrivateKey *types.BigInt `json:"-" cbor:"2,keyasint"`
}
