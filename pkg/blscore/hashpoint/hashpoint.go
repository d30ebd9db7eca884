// Package hashpoint maps an arbitrary message to a point on an elliptic
// curve over 𝔽_p. It is deliberately not a cryptographic hash function:
// the message is encoded as a base-256 integer and walked forward until a
// valid x-coordinate is found, a transparent, invertible-in-principle
// construction intended to make the pairing's mechanics visible rather
// than to model a random oracle.
package hashpoint

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/field"
)

// StringToFieldElement encodes the UTF-8 bytes of m as a base-256
// integer, value = Σ_i byte_i · 256^i, so the first byte is the
// least-significant digit, and reduces it into f.
func StringToFieldElement(m string, f *field.Field) field.Element {
	b := []byte(m)
	littleEndian := make([]byte, len(b))
	for i, c := range b {
		littleEndian[len(b)-1-i] = c
	}
	v := new(big.Int).SetBytes(littleEndian)
	return f.Element(v)
}

// IncrementAndTry starts from the field element x and repeatedly adds one
// until x³+Ax+B is a quadratic residue, returning the resulting curve
// point (x, sqrt(rhs)). It fails with NoPointFound if the whole field is
// exhausted without success, which cannot happen over a field of odd
// characteristic (every x is on the curve or on its quadratic twist), but
// is enforced anyway for a curve constructed with untrusted parameters.
func IncrementAndTry(x field.Element, c *curve.Curve) (curve.Point, error) {
	f := x.Field()
	candidate := x
	steps := new(big.Int).Set(f.P())
	for steps.Sign() > 0 {
		z, err := c.RHS(candidate)
		if err != nil {
			return curve.Point{}, err
		}
		if z.IsQuadraticResidue() {
			y, err := z.Sqrt()
			if err != nil {
				return curve.Point{}, err
			}
			return curve.NewPoint(c, candidate, y), nil
		}
		candidate, err = candidate.Add(f.One())
		if err != nil {
			return curve.Point{}, err
		}
		steps.Sub(steps, big.NewInt(1))
	}
	return curve.Point{}, blserr.New(blserr.NoPointFound, "exhausted 𝔽_p without finding a curve point")
}

// CofactorClear multiplies p by N/r, the cofactor of the order-r subgroup
// within the full group of order N, projecting an arbitrary curve point
// into the order-r subgroup.
func CofactorClear(p curve.Point, groupOrder, r *big.Int) (curve.Point, error) {
	cofactor := new(big.Int).Div(groupOrder, r)
	return p.ScalarMul(cofactor)
}

// HashToPoint composes StringToFieldElement, IncrementAndTry, and
// CofactorClear into the full message-to-subgroup-point pipeline.
func HashToPoint(m string, c *curve.Curve, groupOrder, r *big.Int) (curve.Point, error) {
	x := StringToFieldElement(m, c.Field())
	p, err := IncrementAndTry(x, c)
	if err != nil {
		return curve.Point{}, err
	}
	return CofactorClear(p, groupOrder, r)
}
