package types

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
)

func TestBigMarshalUnmarshalJSON(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(big.NewInt(1234567890))
	jsonBigInt := map[string]*BigInt{
		"bi": bi,
	}
	bBigInt, err := json.Marshal(jsonBigInt)
	c.Assert(err, qt.IsNil)

	var unmarshaled map[string]*BigInt
	c.Assert(json.Unmarshal(bBigInt, &unmarshaled), qt.IsNil)
	c.Assert(unmarshaled["bi"], qt.DeepEquals, bi)
}

func TestBigMarshalUnmarshalCBOR(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(big.NewInt(1234567890))
	cborBigInt := map[string]*BigInt{
		"bi": bi,
	}
	bBigInt, err := cbor.Marshal(cborBigInt)
	c.Assert(err, qt.IsNil)

	var unmarshaled map[string]*BigInt
	c.Assert(cbor.Unmarshal(bBigInt, &unmarshaled), qt.IsNil)
	c.Assert(unmarshaled["bi"], qt.DeepEquals, bi)
}

func TestBigUnmarshalHex(t *testing.T) {
	c := qt.New(t)
	var bi BigInt
	c.Assert(json.Unmarshal([]byte(`"0xff"`), &bi), qt.IsNil)
	c.Assert(bi.String(), qt.Equals, "255")
}

func TestHexBytesRoundTrip(t *testing.T) {
	c := qt.New(t)
	hb := HexBytes{0xde, 0xad, 0xbe, 0xef}
	data, err := json.Marshal(hb)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `"deadbeef"`)

	var out HexBytes
	c.Assert(json.Unmarshal([]byte(`"0xdeadbeef"`), &out), qt.IsNil)
	c.Assert(out, qt.DeepEquals, hb)
}

func TestPollIDBytes(t *testing.T) {
	c := qt.New(t)
	id := PollID(42)
	parsed, err := PollIDFromBytes(id.Bytes())
	c.Assert(err, qt.IsNil)
	c.Assert(parsed, qt.Equals, id)

	_, err = PollIDFromBytes([]byte{1, 2, 3})
	c.Assert(err, qt.IsNotNil)
}
