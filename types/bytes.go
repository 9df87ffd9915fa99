package types

import (
	"encoding/hex"
	"fmt"
)

// HexBytes is a []byte which encodes as a hexadecimal string in JSON. The
// unmarshaler accepts an optional "0x" prefix.
type HexBytes []byte

// String returns the hexadecimal representation without prefix.
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// MarshalJSON encodes b as a quoted hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	enc := make([]byte, hex.EncodedLen(len(b))+2)
	enc[0] = '"'
	hex.Encode(enc[1:], b)
	enc[len(enc)-1] = '"'
	return enc, nil
}

// UnmarshalJSON decodes a quoted hex string, with or without 0x prefix.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid JSON string: %q", data)
	}
	data = data[1 : len(data)-1]
	if len(data) >= 2 && data[0] == '0' && (data[1] == 'x' || data[1] == 'X') {
		data = data[2:]
	}
	dec := make([]byte, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(dec, data); err != nil {
		return err
	}
	*b = dec
	return nil
}

// HexStringToHexBytes converts a hex string to HexBytes. It panics on an
// invalid input, so it must only be used with hardcoded values.
func HexStringToHexBytes(s string) HexBytes {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid hex string %q: %v", s, err))
	}
	return b
}
