package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int wrapper which marshals JSON to a string representation
// of the big number. Note that a nil pointer value marshals as the empty
// string.
type BigInt big.Int

// MarshalText returns the decimal string representation, so that BigInt can
// be used as a JSON string or as a map key.
func (i *BigInt) MarshalText() ([]byte, error) {
	return (*big.Int)(i).MarshalText()
}

// UnmarshalText parses a decimal or 0x-prefixed hexadecimal string.
func (i *BigInt) UnmarshalText(data []byte) error {
	s := string(data)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		if _, ok := (*big.Int)(i).SetString(s[2:], 16); !ok {
			return fmt.Errorf("invalid hex big number %q", s)
		}
		return nil
	}
	return (*big.Int)(i).UnmarshalText(data)
}

// MarshalCBOR encodes the number as a big-endian byte string.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal((*big.Int)(i).Bytes())
}

// UnmarshalCBOR decodes a big-endian byte string into the number.
func (i *BigInt) UnmarshalCBOR(data []byte) error {
	var buf []byte
	if err := cbor.Unmarshal(data, &buf); err != nil {
		return err
	}
	(*big.Int)(i).SetBytes(buf)
	return nil
}

// MathBigInt converts b to a math/big *big.Int.
func (i *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(i)
}

// SetUint64 sets the value to x and returns the receiver.
func (i *BigInt) SetUint64(x uint64) *BigInt {
	return (*BigInt)((*big.Int)(i).SetUint64(x))
}

// SetBytes interprets buf as big-endian unsigned integer and returns the
// receiver.
func (i *BigInt) SetBytes(buf []byte) *BigInt {
	return (*BigInt)((*big.Int)(i).SetBytes(buf))
}

// Bytes returns the big-endian representation.
func (i *BigInt) Bytes() []byte {
	return (*big.Int)(i).Bytes()
}

// String returns the decimal representation.
func (i *BigInt) String() string {
	return (*big.Int)(i).String()
}

// Equal reports whether i and j represent the same number.
func (i *BigInt) Equal(j *BigInt) bool {
	return (*big.Int)(i).Cmp((*big.Int)(j)) == 0
}
