package storage

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.vocdoni.io/dvote/db/prefixeddb"

	"github.com/Lauren6175/arcane-vote/types"
)

func grantKey(id types.PollID, optionIndex int, grantee common.Address) []byte {
	key := id.Bytes()
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], uint32(optionIndex))
	key = append(key, idx[:]...)
	return append(key, grantee.Bytes()...)
}

// SetGrant records an access grant. Re-granting to an existing grantee keeps
// the original record untouched.
func (s *Storage) SetGrant(id types.PollID, optionIndex int, grantee, granter common.Address) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	key := grantKey(id, optionIndex, grantee)
	exists, err := s.hasArtifact(grantPrefix, key)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	g := AccessGrant{
		ID:          uuid.New(),
		PollID:      id,
		OptionIndex: optionIndex,
		Grantee:     grantee,
		Granter:     granter,
		GrantedAt:   time.Now(),
	}
	return s.setArtifact(grantPrefix, key, g)
}

// HasGrant reports whether the grantee holds a grant for the option of the
// poll.
func (s *Storage) HasGrant(id types.PollID, optionIndex int, grantee common.Address) (bool, error) {
	return s.hasArtifact(grantPrefix, grantKey(id, optionIndex, grantee))
}

// ListGrants returns all grants recorded for a poll.
func (s *Storage) ListGrants(id types.PollID) ([]*AccessGrant, error) {
	rTx := prefixeddb.NewPrefixedReader(s.db, grantPrefix)
	var grants []*AccessGrant
	var decodeErr error
	if err := rTx.Iterate(id.Bytes(), func(_, v []byte) bool {
		g := &AccessGrant{}
		if err := decodeArtifact(v, g); err != nil {
			decodeErr = fmt.Errorf("corrupt grant artifact: %w", err)
			return false
		}
		grants = append(grants, g)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return grants, nil
}
