// Package polynomial implements univariate polynomial arithmetic over a
// prime field: addition, multiplication, long division, gcd, exponentiation
// with an optional modulus, and Rabin's irreducibility test. Elements of an
// extension field 𝔽_{p^k} are exactly polynomials of degree < k reduced
// modulo an irreducible f — this package is what makes that representation
// possible.
package polynomial

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/numutil"
)

// Polynomial is an ordered sequence of field.Element, index i holding the
// coefficient of x^i. Canonical form strips trailing zero coefficients; the
// zero polynomial has an empty coefficient slice and degree -1.
type Polynomial struct {
	field *field.Field
	coeff []field.Element
}

// New builds a Polynomial from coefficients in order of increasing degree,
// normalising trailing zeros.
func New(f *field.Field, coeffs []field.Element) *Polynomial {
	c := make([]field.Element, len(coeffs))
	copy(c, coeffs)
	p := &Polynomial{field: f, coeff: c}
	p.normalize()
	return p
}

// Zero returns the zero polynomial over f.
func Zero(f *field.Field) *Polynomial {
	return &Polynomial{field: f, coeff: nil}
}

// One returns the constant polynomial 1 over f.
func One(f *field.Field) *Polynomial {
	return &Polynomial{field: f, coeff: []field.Element{f.One()}}
}

// X returns the identity polynomial x over f.
func X(f *field.Field) *Polynomial {
	return &Polynomial{field: f, coeff: []field.Element{f.Zero(), f.One()}}
}

func (p *Polynomial) normalize() {
	n := len(p.coeff)
	for n > 0 && p.coeff[n-1].IsZero() {
		n--
	}
	p.coeff = p.coeff[:n]
}

// Field returns the base field the coefficients live in.
func (p *Polynomial) Field() *field.Field {
	return p.field
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coeff) - 1
}

// Coefficients returns the coefficients in order of increasing degree. The
// slice is a defensive copy.
func (p *Polynomial) Coefficients() []field.Element {
	out := make([]field.Element, len(p.coeff))
	copy(out, p.coeff)
	return out
}

// LeadingCoefficient returns the coefficient of the highest-degree term, or
// the field's zero for the zero polynomial.
func (p *Polynomial) LeadingCoefficient() field.Element {
	if p.Degree() < 0 {
		return p.field.Zero()
	}
	return p.coeff[p.Degree()]
}

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial) IsZero() bool {
	return p.Degree() < 0
}

// IsMonic reports whether p's leading coefficient is 1.
func (p *Polynomial) IsMonic() bool {
	return !p.IsZero() && p.LeadingCoefficient().IsOne()
}

// Equal reports whether p and other have identical coefficients.
func (p *Polynomial) Equal(other *Polynomial) bool {
	if p.Degree() != other.Degree() {
		return false
	}
	for i := range p.coeff {
		if !p.coeff[i].Equal(other.coeff[i]) {
			return false
		}
	}
	return true
}

func (p *Polynomial) coeffAt(i int) field.Element {
	if i < 0 || i >= len(p.coeff) {
		return p.field.Zero()
	}
	return p.coeff[i]
}

// Add returns p + other, coefficient-wise.
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	n := len(p.coeff)
	if len(other.coeff) > n {
		n = len(other.coeff)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		s, err := p.coeffAt(i).Add(other.coeffAt(i))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return New(p.field, out), nil
}

// Sub returns p - other, coefficient-wise.
func (p *Polynomial) Sub(other *Polynomial) (*Polynomial, error) {
	n := len(p.coeff)
	if len(other.coeff) > n {
		n = len(other.coeff)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		d, err := p.coeffAt(i).Sub(other.coeffAt(i))
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return New(p.field, out), nil
}

// Neg returns -p.
func (p *Polynomial) Neg() *Polynomial {
	out := make([]field.Element, len(p.coeff))
	for i, c := range p.coeff {
		out[i] = c.Neg()
	}
	return New(p.field, out)
}

// Mul returns p * other by convolution, O(deg(p) * deg(other)).
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	if p.IsZero() || other.IsZero() {
		return Zero(p.field), nil
	}
	out := make([]field.Element, p.Degree()+other.Degree()+1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i := 0; i <= p.Degree(); i++ {
		for j := 0; j <= other.Degree(); j++ {
			term, err := p.coeff[i].Mul(other.coeff[j])
			if err != nil {
				return nil, err
			}
			sum, err := out[i+j].Add(term)
			if err != nil {
				return nil, err
			}
			out[i+j] = sum
		}
	}
	return New(p.field, out), nil
}

// ScalarMul returns p scaled by a single field element.
func (p *Polynomial) ScalarMul(scalar field.Element) (*Polynomial, error) {
	out := make([]field.Element, len(p.coeff))
	for i, c := range p.coeff {
		s, err := c.Mul(scalar)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return New(p.field, out), nil
}

// Divide performs polynomial long division: returns (quotient, remainder)
// such that p = quotient*other + remainder and deg(remainder) < deg(other).
// Fails with DivideByZero if other is the zero polynomial.
func (p *Polynomial) Divide(other *Polynomial) (quotient, remainder *Polynomial, err error) {
	if other.IsZero() {
		return nil, nil, blserr.New(blserr.DivideByZero, "polynomial division by the zero polynomial")
	}

	degOther := other.Degree()
	leadInv, err := other.LeadingCoefficient().Inverse()
	if err != nil {
		return nil, nil, err
	}

	rem := New(p.field, p.coeff)
	var quotCoeffs []field.Element

	for rem.Degree() >= degOther {
		shift := rem.Degree() - degOther
		coeff, err := rem.LeadingCoefficient().Mul(leadInv)
		if err != nil {
			return nil, nil, err
		}

		if len(quotCoeffs) < shift+1 {
			grown := make([]field.Element, shift+1)
			for i := range grown {
				grown[i] = p.field.Zero()
			}
			copy(grown, quotCoeffs)
			quotCoeffs = grown
		}
		quotCoeffs[shift] = coeff

		// rem -= coeff * x^shift * other
		termCoeffs := make([]field.Element, shift+degOther+1)
		for i := range termCoeffs {
			termCoeffs[i] = p.field.Zero()
		}
		for j := 0; j <= degOther; j++ {
			c, err := other.coeff[j].Mul(coeff)
			if err != nil {
				return nil, nil, err
			}
			termCoeffs[shift+j] = c
		}
		rem, err = rem.Sub(New(p.field, termCoeffs))
		if err != nil {
			return nil, nil, err
		}
	}

	if quotCoeffs == nil {
		quotCoeffs = []field.Element{}
	}
	return New(p.field, quotCoeffs), rem, nil
}

// Mod returns p mod other, the remainder of Divide.
func (p *Polynomial) Mod(other *Polynomial) (*Polynomial, error) {
	_, rem, err := p.Divide(other)
	return rem, err
}

// PowMod computes p^exp, reducing modulo `modulus` after every multiply and
// square when modulus is non-nil. Used by Rabin's test to compute
// x^{p^n} mod f without the intermediate polynomials blowing up.
func (p *Polynomial) PowMod(exp *big.Int, modulus *Polynomial) (*Polynomial, error) {
	if exp.Sign() == 0 {
		return One(p.field), nil
	}

	reduce := func(q *Polynomial) (*Polynomial, error) {
		if modulus == nil {
			return q, nil
		}
		return q.Mod(modulus)
	}

	base, err := reduce(p)
	if err != nil {
		return nil, err
	}
	result := One(p.field)

	bits := exp.BitLen()
	for i := 0; i < bits; i++ {
		if exp.Bit(i) == 1 {
			result, err = result.Mul(base)
			if err != nil {
				return nil, err
			}
			result, err = reduce(result)
			if err != nil {
				return nil, err
			}
		}
		base, err = base.Mul(base)
		if err != nil {
			return nil, err
		}
		base, err = reduce(base)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GCD computes the monic greatest common divisor of p and other via the
// Euclidean algorithm.
func (p *Polynomial) GCD(other *Polynomial) (*Polynomial, error) {
	a, b := p, other
	for !b.IsZero() {
		_, rem, err := a.Divide(b)
		if err != nil {
			return nil, err
		}
		a, b = b, rem
	}
	if a.IsZero() {
		return a, nil
	}
	lead := a.LeadingCoefficient()
	inv, err := lead.Inverse()
	if err != nil {
		return nil, err
	}
	return a.ScalarMul(inv)
}

// ExtendedGCD runs the extended Euclidean algorithm on polynomials, returning
// (g, s, t) with p*s + other*t = g. Used to compute inverses in the
// quotient ring 𝔽_p[x]/⟨f⟩.
func ExtendedGCD(p, other *Polynomial) (g, s, t *Polynomial, err error) {
	f := p.field
	rOld, r := p, other
	sOld, sCur := One(f), Zero(f)
	tOld, tCur := Zero(f), One(f)

	for !r.IsZero() {
		q, rem, err := rOld.Divide(r)
		if err != nil {
			return nil, nil, nil, err
		}
		qs, err := q.Mul(sCur)
		if err != nil {
			return nil, nil, nil, err
		}
		sNext, err := sOld.Sub(qs)
		if err != nil {
			return nil, nil, nil, err
		}
		qt, err := q.Mul(tCur)
		if err != nil {
			return nil, nil, nil, err
		}
		tNext, err := tOld.Sub(qt)
		if err != nil {
			return nil, nil, nil, err
		}

		rOld, r = r, rem
		sOld, sCur = sCur, sNext
		tOld, tCur = tCur, tNext
	}
	return rOld, sOld, tOld, nil
}

// IsIrreducible runs Rabin's irreducibility test for a polynomial f of
// degree k over 𝔽_p:
//
//  1. let q_1..q_t be the distinct prime divisors of k;
//  2. for each i, with n_i = k/q_i, check gcd(x^{p^{n_i}} - x mod f, f) = 1;
//  3. check x^{p^k} mod f = x mod f.
//
// All checks passing is equivalent to f being irreducible.
func (p *Polynomial) IsIrreducible() (bool, error) {
	k := p.Degree()
	if k <= 0 {
		return false, nil
	}
	modP := p.field.P()
	primes := numutil.PrimeFactors(big.NewInt(int64(k)))

	xPoly := X(p.field)

	for _, q := range primes {
		qi := q.Int64()
		ni := int64(k) / qi
		exponent := new(big.Int).Exp(modP, big.NewInt(ni), nil)

		xPowPNi, err := xPoly.PowMod(exponent, p)
		if err != nil {
			return false, err
		}
		diff, err := xPowPNi.Sub(xPoly)
		if err != nil {
			return false, err
		}
		g, err := diff.GCD(p)
		if err != nil {
			return false, err
		}
		if g.Degree() != 0 {
			return false, nil
		}
	}

	exponent := new(big.Int).Exp(modP, big.NewInt(int64(k)), nil)
	xPowPK, err := xPoly.PowMod(exponent, p)
	if err != nil {
		return false, err
	}
	xModF, err := xPoly.Mod(p)
	if err != nil {
		return false, err
	}
	return xPowPK.Equal(xModF), nil
}

// String renders p as "c0 + c1·x + ... + ck·x^k" with every coefficient
// shown explicitly, matching the rendering the host expects for the
// irreducible modulus in a steps report.
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	terms := make([]string, 0, len(p.coeff))
	for i, c := range p.coeff {
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, fmt.Sprintf("%s·x", c.String()))
		default:
			terms = append(terms, fmt.Sprintf("%s·x^%d", c.String(), i))
		}
	}
	return strings.Join(terms, " + ")
}
