// Package ethereum provides secp256k1 signing keys and helpers to sign
// messages and recover the signer address, Ethereum style. The engine trusts
// the recovered address as the caller identity; this package is the bridge
// between the transport layer and that identity.
package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Lauren6175/arcane-vote/util"
)

// SignatureLength is the size in bytes of a recoverable ECDSA signature.
const SignatureLength = 65

// SignKeys represents an ECDSA pair of keys for signing.
type SignKeys struct {
	Public  ecdsa.PublicKey
	Private ecdsa.PrivateKey
}

// NewSignKeys creates an empty SignKeys.
func NewSignKeys() *SignKeys {
	return new(SignKeys)
}

// Generate generates new keys.
func (k *SignKeys) Generate() error {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return err
	}
	k.Private = *key
	k.Public = key.PublicKey
	return nil
}

// AddHexKey imports a private hex key.
func (k *SignKeys) AddHexKey(privHex string) error {
	key, err := ethcrypto.HexToECDSA(util.TrimHex(privHex))
	if err != nil {
		return err
	}
	k.Private = *key
	k.Public = key.PublicKey
	return nil
}

// HexString returns the public compressed and private keys as hex strings.
func (k *SignKeys) HexString() (string, string) {
	pubHexComp := hex.EncodeToString(ethcrypto.CompressPubkey(&k.Public))
	privHex := hex.EncodeToString(ethcrypto.FromECDSA(&k.Private))
	return pubHexComp, privHex
}

// Address returns the Ethereum address derived from the public key.
func (k *SignKeys) Address() common.Address {
	return ethcrypto.PubkeyToAddress(k.Public)
}

// AddressString returns the checksummed string form of the address.
func (k *SignKeys) AddressString() string {
	return k.Address().String()
}

// PublicKey returns the public key of the pair.
func (k *SignKeys) PublicKey() *ecdsa.PublicKey {
	return &k.Public
}

// SignEthereum signs the message with an Ethereum prefixed hash and returns
// the 65-byte recoverable signature.
func (k *SignKeys) SignEthereum(message []byte) ([]byte, error) {
	if k.Private.D == nil {
		return nil, fmt.Errorf("no private key available")
	}
	return ethcrypto.Sign(Hash(message), &k.Private)
}

// Hash computes the Ethereum prefixed hash of a message, as done by
// personal_sign.
func Hash(message []byte) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	return HashRaw([]byte(prefixed))
}

// HashRaw hashes data with Keccak256, without any prefix.
func HashRaw(data []byte) []byte {
	return ethcrypto.Keccak256(data)
}

// AddrFromPublicKey returns the Ethereum address of a public key.
func AddrFromPublicKey(pub *ecdsa.PublicKey) (common.Address, error) {
	if pub == nil || pub.X == nil {
		return common.Address{}, fmt.Errorf("nil public key")
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// AddrFromSignature recovers the address that signed the Ethereum prefixed
// hash of message.
func AddrFromSignature(message, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(signature))
	}
	pub, err := ethcrypto.SigToPub(Hash(message), signature)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}
