// Package xfield implements the extension field 𝔽_{p^k} = 𝔽_p[x]/⟨f(x)⟩ for
// an arbitrary monic irreducible polynomial f of degree k over a prime
// field. Unlike a fixed-degree extension (e.g. the cubic Goldilocks
// extension used for STARK proof systems), k here is discovered at setup
// time as the BLS embedding degree, so elements carry their modulus rather
// than hard-coding its degree.
package xfield

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/polynomial"
)

// ExtensionField is 𝔽_{p^k}, defined by a base field and a monic irreducible
// modulus polynomial f of degree k.
type ExtensionField struct {
	base    *field.Field
	modulus *polynomial.Polynomial
	k       int
}

// New constructs the extension field 𝔽_{p^k} from a base field and a
// candidate modulus. Fails with InvalidModulus if the modulus is not monic
// or not irreducible.
func New(base *field.Field, modulus *polynomial.Polynomial) (*ExtensionField, error) {
	if !modulus.IsMonic() {
		return nil, blserr.New(blserr.InvalidModulus, "extension modulus must be monic")
	}
	irreducible, err := modulus.IsIrreducible()
	if err != nil {
		return nil, err
	}
	if !irreducible {
		return nil, blserr.New(blserr.InvalidModulus, "extension modulus %s is reducible", modulus)
	}
	return &ExtensionField{base: base, modulus: modulus, k: modulus.Degree()}, nil
}

// Base returns the base field 𝔽_p.
func (xf *ExtensionField) Base() *field.Field {
	return xf.base
}

// Modulus returns the irreducible polynomial f defining the extension.
func (xf *ExtensionField) Modulus() *polynomial.Polynomial {
	return xf.modulus
}

// Degree returns k = deg(f), the extension's degree over the base field.
func (xf *ExtensionField) Degree() int {
	return xf.k
}

// Element constructs an extension field element from integer coefficients,
// padding or truncating to length k and reducing modulo f.
func (xf *ExtensionField) Element(coeffs []*big.Int) (ExtFieldElement, error) {
	padded := make([]field.Element, xf.k)
	for i := range padded {
		if i < len(coeffs) {
			padded[i] = xf.base.Element(coeffs[i])
		} else {
			padded[i] = xf.base.Zero()
		}
	}
	return xf.fromPoly(polynomial.New(xf.base, padded))
}

// FromBase lifts a base-field element into 𝔽_{p^k} as a constant polynomial.
// This is the "lift" operation Miller's algorithm needs to embed P's and
// R's 𝔽_p coordinates before combining them with Q's 𝔽_{p^k} coordinates.
func (xf *ExtensionField) FromBase(e field.Element) ExtFieldElement {
	poly := polynomial.New(xf.base, []field.Element{e})
	out, _ := xf.fromPoly(poly) // a constant polynomial is always already reduced.
	return out
}

// Zero returns the additive identity of 𝔽_{p^k}.
func (xf *ExtensionField) Zero() ExtFieldElement {
	return xf.FromBase(xf.base.Zero())
}

// One returns the multiplicative identity of 𝔽_{p^k}.
func (xf *ExtensionField) One() ExtFieldElement {
	return xf.FromBase(xf.base.One())
}

func (xf *ExtensionField) fromPoly(p *polynomial.Polynomial) (ExtFieldElement, error) {
	reduced, err := p.Mod(xf.modulus)
	if err != nil {
		return ExtFieldElement{}, err
	}
	return ExtFieldElement{ext: xf, poly: reduced}, nil
}

// ExtFieldElement is an element of 𝔽_{p^k}: a Polynomial of degree < k,
// always kept reduced modulo the extension's modulus.
type ExtFieldElement struct {
	ext  *ExtensionField
	poly *polynomial.Polynomial
}

// Ext returns the extension field this element belongs to.
func (x ExtFieldElement) Ext() *ExtensionField {
	return x.ext
}

// Poly returns the underlying reduced polynomial representation.
func (x ExtFieldElement) Poly() *polynomial.Polynomial {
	return x.poly
}

// IsZero reports whether x is the zero element.
func (x ExtFieldElement) IsZero() bool {
	return x.poly.IsZero()
}

// IsOne reports whether x is the multiplicative identity.
func (x ExtFieldElement) IsOne() bool {
	return x.poly.Degree() == 0 && x.poly.LeadingCoefficient().IsOne()
}

// Equal reports whether x and other represent the same polynomial over the
// same extension.
func (x ExtFieldElement) Equal(other ExtFieldElement) bool {
	return x.poly.Equal(other.poly)
}

// Unlift returns the base-field element x represents, if x is a constant
// polynomial (degree ≤ 0); otherwise ok is false. Used to detect whether a
// point found in E(𝔽_{p^k}) is actually already in E(𝔽_p).
func (x ExtFieldElement) Unlift() (e field.Element, ok bool) {
	if x.poly.Degree() > 0 {
		return field.Element{}, false
	}
	return x.poly.LeadingCoefficient(), true
}

// String renders x as its underlying polynomial string.
func (x ExtFieldElement) String() string {
	return x.poly.String()
}

func (x ExtFieldElement) checkSameExt(other ExtFieldElement) error {
	if x.ext != other.ext {
		return blserr.New(blserr.MismatchedFields, "operands belong to different extension fields")
	}
	return nil
}

// Add returns x + other.
func (x ExtFieldElement) Add(other ExtFieldElement) (ExtFieldElement, error) {
	if err := x.checkSameExt(other); err != nil {
		return ExtFieldElement{}, err
	}
	sum, err := x.poly.Add(other.poly)
	if err != nil {
		return ExtFieldElement{}, err
	}
	return x.ext.fromPoly(sum)
}

// Sub returns x - other.
func (x ExtFieldElement) Sub(other ExtFieldElement) (ExtFieldElement, error) {
	if err := x.checkSameExt(other); err != nil {
		return ExtFieldElement{}, err
	}
	diff, err := x.poly.Sub(other.poly)
	if err != nil {
		return ExtFieldElement{}, err
	}
	return x.ext.fromPoly(diff)
}

// Neg returns -x.
func (x ExtFieldElement) Neg() ExtFieldElement {
	out, _ := x.ext.fromPoly(x.poly.Neg()) // negation never changes the degree bound.
	return out
}

// Mul returns x * other mod f.
func (x ExtFieldElement) Mul(other ExtFieldElement) (ExtFieldElement, error) {
	if err := x.checkSameExt(other); err != nil {
		return ExtFieldElement{}, err
	}
	prod, err := x.poly.Mul(other.poly)
	if err != nil {
		return ExtFieldElement{}, err
	}
	return x.ext.fromPoly(prod)
}

// Inverse computes x^{-1} via the extended Euclidean algorithm on
// polynomials: find g, s, t with x.poly*s + f*t = g, fails with
// DivideByZero unless g is the unit polynomial (i.e. x is invertible).
func (x ExtFieldElement) Inverse() (ExtFieldElement, error) {
	if x.IsZero() {
		return ExtFieldElement{}, blserr.New(blserr.DivideByZero, "cannot invert the zero element of 𝔽_p^k")
	}
	g, s, _, err := polynomial.ExtendedGCD(x.poly, x.ext.modulus)
	if err != nil {
		return ExtFieldElement{}, err
	}
	if g.Degree() != 0 {
		return ExtFieldElement{}, blserr.New(blserr.DivideByZero, "element is not invertible in this extension field")
	}
	leadInv, err := g.LeadingCoefficient().Inverse()
	if err != nil {
		return ExtFieldElement{}, err
	}
	s, err = s.ScalarMul(leadInv)
	if err != nil {
		return ExtFieldElement{}, err
	}
	return x.ext.fromPoly(s)
}

// Div returns x / other = x * other^{-1}.
func (x ExtFieldElement) Div(other ExtFieldElement) (ExtFieldElement, error) {
	if err := x.checkSameExt(other); err != nil {
		return ExtFieldElement{}, err
	}
	inv, err := other.Inverse()
	if err != nil {
		return ExtFieldElement{}, err
	}
	return x.Mul(inv)
}

// IsQuadraticResidue reports whether x is a square in 𝔽_{p^k} via Euler's
// criterion generalized to a finite field of order q = p^k:
// x^{(q-1)/2} ≡ 1. Zero is treated as a quadratic residue.
func (x ExtFieldElement) IsQuadraticResidue() bool {
	if x.IsZero() {
		return true
	}
	p := x.ext.base.P()
	q := new(big.Int).Exp(p, big.NewInt(int64(x.ext.k)), nil)
	exp := new(big.Int).Sub(q, big.NewInt(1))
	exp.Div(exp, big.NewInt(2))
	r, _ := x.Pow(exp) // x is non-zero, so Pow cannot fail here.
	return r.IsOne()
}

// Pow computes x^exp by square-and-multiply, reducing modulo f at every
// step (inherited from the underlying Polynomial.PowMod).
func (x ExtFieldElement) Pow(exp *big.Int) (ExtFieldElement, error) {
	if exp.Sign() == 0 {
		return x.ext.One(), nil
	}
	base := x
	magnitude := exp
	if exp.Sign() < 0 {
		inv, err := x.Inverse()
		if err != nil {
			return ExtFieldElement{}, err
		}
		base = inv
		magnitude = new(big.Int).Neg(exp)
	}
	raised, err := base.poly.PowMod(magnitude, x.ext.modulus)
	if err != nil {
		return ExtFieldElement{}, err
	}
	return x.ext.fromPoly(raised)
}
