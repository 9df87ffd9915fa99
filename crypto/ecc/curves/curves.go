package curves

import (
	"fmt"

	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/bn254"
)

const (
	// CurveTypeBN254 identifies the BN254 G1 group.
	CurveTypeBN254 = bn254.CurveType
	// CurveTypeDefault is the curve used when none is specified.
	CurveTypeDefault = CurveTypeBN254
)

// New creates a new instance of a Point implementation based on the provided
// type string. The supported types are defined as constants in this package.
// If the type is not supported, it will panic.
func New(curveType string) ecc.Point {
	switch curveType {
	case CurveTypeBN254:
		return new(bn254.G1).New()
	default:
		panic(fmt.Sprintf("unsupported curve type: %s", curveType))
	}
}

// Curves returns the list of supported curve types.
func Curves() []string {
	return []string{CurveTypeBN254}
}
