package storage

import (
	"fmt"
	"math/big"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
	"github.com/Lauren6175/arcane-vote/types"
)

// SetEncryptionKeys stores the encryption key pair of a poll.
func (s *Storage) SetEncryptionKeys(id types.PollID, publicKey ecc.Point, privateKey *big.Int) error {
	x, y := publicKey.Point()
	eks := EncryptionKeys{
		X:          (*types.BigInt)(x),
		Y:          (*types.BigInt)(y),
		PrivateKey: (*types.BigInt)(privateKey),
	}
	return s.setArtifact(pollKeysPrefix, id.Bytes(), eks)
}

// EncryptionKeys loads the encryption key pair of a poll. Returns ErrNotFound
// if no keys exist for the poll.
func (s *Storage) EncryptionKeys(id types.PollID, curveType string) (ecc.Point, *big.Int, error) {
	eks := EncryptionKeys{}
	if err := s.getArtifact(pollKeysPrefix, id.Bytes(), &eks); err != nil {
		return nil, nil, fmt.Errorf("could not read encryption keys: %w", err)
	}
	pubKey := curves.New(curveType).SetPoint(eks.X.MathBigInt(), eks.Y.MathBigInt())
	return pubKey, eks.PrivateKey.MathBigInt(), nil
}
