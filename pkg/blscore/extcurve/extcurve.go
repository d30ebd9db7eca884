// Package extcurve implements the same elliptic curve group law as
// pkg/blscore/curve, but with coordinates in the extension field 𝔽_{p^k}
// instead of 𝔽_p. This is the group E(𝔽_{p^k}) that carries the order-r
// subgroup Q used as the second argument of the Tate pairing.
package extcurve

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/xfield"
)

// Point is a point on E(𝔽_{p^k}): either the point at infinity, or an
// affine point with coordinates in the extension field satisfying
// y² = x³ + Ax + B (A and B lifted from the base curve).
type Point struct {
	base  *curve.Curve
	ext   *xfield.ExtensionField
	x, y  xfield.ExtFieldElement
	atInf bool
}

// Infinity returns the identity point of E(𝔽_{p^k}).
func Infinity(base *curve.Curve, ext *xfield.ExtensionField) Point {
	return Point{base: base, ext: ext, atInf: true}
}

// NewPoint builds the affine point (x, y) without verifying it lies on the
// curve.
func NewPoint(base *curve.Curve, ext *xfield.ExtensionField, x, y xfield.ExtFieldElement) Point {
	return Point{base: base, ext: ext, x: x, y: y}
}

// BaseCurve returns the underlying 𝔽_p curve this is the lift of.
func (p Point) BaseCurve() *curve.Curve {
	return p.base
}

// Ext returns the extension field the coordinates live in.
func (p Point) Ext() *xfield.ExtensionField {
	return p.ext
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.atInf
}

// XY returns the affine coordinates of p.
func (p Point) XY() (x, y xfield.ExtFieldElement) {
	return p.x, p.y
}

// Equal reports whether p and other represent the same point.
func (p Point) Equal(other Point) bool {
	if p.atInf || other.atInf {
		return p.atInf == other.atInf
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

// rhs evaluates x³ + Ax + B over the extension field, with A and B lifted
// from the base curve.
func rhs(base *curve.Curve, ext *xfield.ExtensionField, x xfield.ExtFieldElement) (xfield.ExtFieldElement, error) {
	a := ext.FromBase(base.A())
	b := ext.FromBase(base.B())

	x2, err := x.Mul(x)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	x3, err := x2.Mul(x)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	ax, err := a.Mul(x)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	sum, err := x3.Add(ax)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	return sum.Add(b)
}

// Contains reports whether p satisfies the lifted curve equation.
func Contains(base *curve.Curve, ext *xfield.ExtensionField, p Point) (bool, error) {
	if p.atInf {
		return true, nil
	}
	r, err := rhs(base, ext, p.x)
	if err != nil {
		return false, err
	}
	y2, err := p.y.Mul(p.y)
	if err != nil {
		return false, err
	}
	return y2.Equal(r), nil
}

// Neg returns -p.
func (p Point) Neg() Point {
	if p.atInf {
		return p
	}
	return Point{base: p.base, ext: p.ext, x: p.x, y: p.y.Neg()}
}

// Add implements the group law over 𝔽_{p^k}.
func (p Point) Add(q Point) (Point, error) {
	if p.atInf {
		return q, nil
	}
	if q.atInf {
		return p, nil
	}

	if p.x.Equal(q.x) {
		sumY, err := p.y.Add(q.y)
		if err != nil {
			return Point{}, err
		}
		if sumY.IsZero() {
			return Infinity(p.base, p.ext), nil
		}
		if !p.y.Equal(q.y) {
			return Infinity(p.base, p.ext), nil
		}
		return p.double()
	}

	numerator, err := q.y.Sub(p.y)
	if err != nil {
		return Point{}, err
	}
	denominator, err := q.x.Sub(p.x)
	if err != nil {
		return Point{}, err
	}
	lambda, err := numerator.Div(denominator)
	if err != nil {
		return Point{}, err
	}
	return combine(p, q, lambda)
}

func (p Point) double() (Point, error) {
	if p.y.IsZero() {
		return Infinity(p.base, p.ext), nil
	}
	three := p.ext.FromBase(p.base.Field().ElementFromInt64(3))
	two := p.ext.FromBase(p.base.Field().ElementFromInt64(2))
	a := p.ext.FromBase(p.base.A())

	x2, err := p.x.Mul(p.x)
	if err != nil {
		return Point{}, err
	}
	threeX2, err := three.Mul(x2)
	if err != nil {
		return Point{}, err
	}
	numerator, err := threeX2.Add(a)
	if err != nil {
		return Point{}, err
	}
	denominator, err := two.Mul(p.y)
	if err != nil {
		return Point{}, err
	}
	lambda, err := numerator.Div(denominator)
	if err != nil {
		return Point{}, err
	}
	return combine(p, p, lambda)
}

func combine(p, q Point, lambda xfield.ExtFieldElement) (Point, error) {
	lambda2, err := lambda.Mul(lambda)
	if err != nil {
		return Point{}, err
	}
	rx, err := lambda2.Sub(p.x)
	if err != nil {
		return Point{}, err
	}
	rx, err = rx.Sub(q.x)
	if err != nil {
		return Point{}, err
	}
	xDiff, err := p.x.Sub(rx)
	if err != nil {
		return Point{}, err
	}
	lambdaXDiff, err := lambda.Mul(xDiff)
	if err != nil {
		return Point{}, err
	}
	ry, err := lambdaXDiff.Sub(p.y)
	if err != nil {
		return Point{}, err
	}
	return Point{base: p.base, ext: p.ext, x: rx, y: ry}, nil
}

// ScalarMul computes n*p by left-to-right double-and-add on |n|'s binary
// expansion, negating the result for n < 0. n = 0 returns infinity.
func (p Point) ScalarMul(n *big.Int) (Point, error) {
	if n.Sign() == 0 {
		return Infinity(p.base, p.ext), nil
	}

	magnitude := n
	if n.Sign() < 0 {
		magnitude = new(big.Int).Neg(n)
	}

	result := Infinity(p.base, p.ext)
	for i := magnitude.BitLen() - 1; i >= 0; i-- {
		var err error
		result, err = result.Add(result)
		if err != nil {
			return Point{}, err
		}
		if magnitude.Bit(i) == 1 {
			result, err = result.Add(p)
			if err != nil {
				return Point{}, err
			}
		}
	}

	if n.Sign() < 0 {
		return result.Neg(), nil
	}
	return result, nil
}

// GroupOrder computes |E(𝔽_{p^k})| by the same naive enumeration
// curve.Curve.GroupOrder uses over 𝔽_p: for each x ∈ 𝔽_{p^k}, in
// coefficient-vector order, x³+Ax+B contributes 1 point if it is zero, 2
// if it is a quadratic residue in the extension field, 0 otherwise; plus
// 1 for the point at infinity. This is only tractable for the small
// pedagogical fields this package targets, the same assumption the base
// curve's point count already relies on.
func GroupOrder(base *curve.Curve, ext *xfield.ExtensionField) (*big.Int, error) {
	p := ext.Base().P()
	k := ext.Degree()
	total := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)

	count := big.NewInt(1) // the point at infinity.
	index := big.NewInt(0)
	for index.Cmp(total) < 0 {
		coeffs := digitsBase(index, p, k)
		x, err := ext.Element(coeffs)
		if err != nil {
			return nil, err
		}
		z, err := rhs(base, ext, x)
		if err != nil {
			return nil, err
		}
		switch {
		case z.IsZero():
			count.Add(count, big.NewInt(1))
		case z.IsQuadraticResidue():
			count.Add(count, big.NewInt(2))
		}
		index.Add(index, big.NewInt(1))
	}
	return count, nil
}

// FindPointOfOrderR searches E(𝔽_{p^k}) for a point Q of order r that does
// not already lie in the base curve E(𝔽_p) (such a Q would collapse the
// pairing to the trivial one on E(𝔽_p)). It enumerates candidate
// x-coordinates as general extension field elements in deterministic
// lexicographic order of their coefficient vectors, skips any x that
// unlifts back to a base field constant, clears the cofactor
// (|E(𝔽_{p^k})| with every factor of r divided out, since r² may divide
// the extension group order), and returns the first surviving point whose
// order exactly divides r and which still does not unlift to 𝔽_p.
func FindPointOfOrderR(base *curve.Curve, ext *xfield.ExtensionField, groupOrderExt *big.Int, r *big.Int, searchCap int) (Point, error) {
	cofactor := new(big.Int).Div(groupOrderExt, r)
	for new(big.Int).Mod(cofactor, r).Sign() == 0 {
		cofactor.Div(cofactor, r)
	}
	p := ext.Base().P()
	k := ext.Degree()

	total := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)
	limit := total
	if searchCap > 0 && big.NewInt(int64(searchCap)).Cmp(total) < 0 {
		limit = big.NewInt(int64(searchCap))
	}

	index := big.NewInt(0)
	for index.Cmp(limit) < 0 {
		coeffs := digitsBase(index, p, k)
		x, err := ext.Element(coeffs)
		if err != nil {
			return Point{}, err
		}

		if _, collapses := x.Unlift(); !collapses {
			z, err := rhs(base, ext, x)
			if err != nil {
				return Point{}, err
			}

			y, err := extSqrt(z, searchCap)
			if err == nil {
				candidatePoint := NewPoint(base, ext, x, y)
				q, err := candidatePoint.ScalarMul(cofactor)
				if err != nil {
					return Point{}, err
				}
				if !q.IsInfinity() {
					if _, qCollapses := q.XYUnlift(); !qCollapses {
						dividesR, err := orderDividesR(q, r)
						if err != nil {
							return Point{}, err
						}
						if dividesR {
							return q, nil
						}
					}
				}
			}
		}

		index.Add(index, big.NewInt(1))
	}

	return Point{}, blserr.New(blserr.SearchExhausted, "no order-r point found in E(𝔽_p^k) within search bound")
}

// XYUnlift reports whether both coordinates of p unlift to the base field,
// meaning p is really a point of the base curve E(𝔽_p) lifted into the
// extension rather than a genuine extension-field point.
func (p Point) XYUnlift() (ok bool, collapsed bool) {
	if p.atInf {
		return true, true
	}
	_, xOk := p.x.Unlift()
	_, yOk := p.y.Unlift()
	return xOk && yOk, xOk && yOk
}

func orderDividesR(q Point, r *big.Int) (bool, error) {
	rq, err := q.ScalarMul(r)
	if err != nil {
		return false, err
	}
	return rq.IsInfinity(), nil
}

func digitsBase(index, p *big.Int, k int) []*big.Int {
	coeffs := make([]*big.Int, k)
	remaining := new(big.Int).Set(index)
	for i := 0; i < k; i++ {
		digit := new(big.Int)
		remaining.DivMod(remaining, p, digit)
		coeffs[i] = digit
	}
	return coeffs
}

// extSqrt finds a square root of z in 𝔽_{p^k} by exhaustive search over the
// extension field's elements in coefficient order. This mirrors the
// naive, brute-force style used elsewhere for point counting and
// irreducibility search: the pedagogical field sizes this package targets
// make an exhaustive scan tractable, and a general Tonelli–Shanks analogue
// for extension fields is out of scope.
func extSqrt(z xfield.ExtFieldElement, searchCap int) (xfield.ExtFieldElement, error) {
	if z.IsZero() {
		return z, nil
	}

	ext := z.Ext()
	p := ext.Base().P()
	k := ext.Degree()

	total := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)
	limit := total
	if searchCap > 0 && big.NewInt(int64(searchCap)).Cmp(total) < 0 {
		limit = big.NewInt(int64(searchCap))
	}

	index := big.NewInt(0)
	for index.Cmp(limit) < 0 {
		coeffs := digitsBase(index, p, k)
		candidate, err := ext.Element(coeffs)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}
		squared, err := candidate.Mul(candidate)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}
		if squared.Equal(z) {
			return candidate, nil
		}
		index.Add(index, big.NewInt(1))
	}

	return xfield.ExtFieldElement{}, blserr.New(blserr.NotASquare, "%s is not a square in this extension field", z)
}
