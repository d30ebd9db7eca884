// Package miller implements Miller's algorithm: the double-and-add
// evaluation of the line functions that define the Tate pairing's Miller
// function f_{r,P}(Q).
package miller

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/extcurve"
	"github.com/vybium/bls-tate/pkg/blscore/xfield"
)

// LineFunction evaluates, at the extension-field point Q, the line through
// P and R (or the tangent at P when R = P), divided by the vertical line
// through P+R. There are three cases:
//
//   - P = O or R = O: the line is the constant 1 (no line is needed).
//   - P and R have the same x-coordinate (R = -P, or P = R with y_P = 0):
//     the sum is the point at infinity, and the "line" degenerates to the
//     vertical line through P, whose value at Q is (x_Q - x_P).
//   - Otherwise: the ordinary secant/tangent line
//     y - y_P - λ(x - x_P), evaluated at Q, where λ is the slope of the
//     line (the tangent slope when R = P).
//
// The vertical line's denominator (x_Q - x_{P+R}) is omitted throughout
// Miller's loop: it contributes a factor that lies in the base field 𝔽_p
// and is therefore killed by the final exponentiation (p^k-1)/r, since
// raising any nonzero base-field element to that power yields 1. This
// mirrors the standard optimization used in pairing implementations and
// is documented here rather than re-derived at each call site.
func LineFunction(p, r curve.Point, q extcurve.Point) (xfield.ExtFieldElement, error) {
	ext := q.Ext()

	if p.IsInfinity() || r.IsInfinity() {
		return ext.One(), nil
	}

	px, py := p.XY()
	qx, _ := q.XY()
	liftedPX := ext.FromBase(px)
	liftedPY := ext.FromBase(py)

	if r.Equal(p) {
		if py.IsZero() {
			diff, err := qx.Sub(liftedPX)
			if err != nil {
				return xfield.ExtFieldElement{}, err
			}
			return diff, nil
		}
		return tangentLine(p, q, liftedPX, liftedPY)
	}

	rx, _ := r.XY()
	if px.Equal(rx) {
		diff, err := qx.Sub(liftedPX)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}
		return diff, nil
	}

	return secantLine(p, r, q, liftedPX, liftedPY)
}

func secantLine(p, r curve.Point, q extcurve.Point, liftedPX, liftedPY xfield.ExtFieldElement) (xfield.ExtFieldElement, error) {
	px, py := p.XY()
	rx, ry := r.XY()

	num, err := ry.Sub(py)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	den, err := rx.Sub(px)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	lambda, err := num.Div(den)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}

	ext := q.Ext()
	liftedLambda := ext.FromBase(lambda)
	qx, qy := q.XY()

	xDiff, err := qx.Sub(liftedPX)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	rhs, err := liftedLambda.Mul(xDiff)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	rhs, err = rhs.Add(liftedPY)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	return qy.Sub(rhs)
}

func tangentLine(p curve.Point, q extcurve.Point, liftedPX, liftedPY xfield.ExtFieldElement) (xfield.ExtFieldElement, error) {
	f := p.Curve().Field()
	px, _ := p.XY()

	px2, err := px.Mul(px)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	threeX2, err := f.ElementFromInt64(3).Mul(px2)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	num, err := threeX2.Add(p.Curve().A())
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	_, py := p.XY()
	den, err := f.ElementFromInt64(2).Mul(py)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	lambda, err := num.Div(den)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}

	ext := q.Ext()
	liftedLambda := ext.FromBase(lambda)
	qx, qy := q.XY()

	xDiff, err := qx.Sub(liftedPX)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	rhs, err := liftedLambda.Mul(xDiff)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	rhs, err = rhs.Add(liftedPY)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}
	return qy.Sub(rhs)
}

// Miller evaluates f_{r,P}(Q), the Miller function of order r at P,
// applied to Q, via the standard double-and-add loop over r's binary
// expansion (most significant bit first, skipping the leading 1):
//
//	f := 1, R := P
//	for each bit b of r after the leading one, most significant first:
//	    f := f² · line(R, R, Q)
//	    R := 2R
//	    if b == 1:
//	        f := f · line(R, P, Q)
//	        R := R + P
//
// r must be positive; P must have order exactly r on its base curve.
func Miller(p curve.Point, q extcurve.Point, r *big.Int) (xfield.ExtFieldElement, error) {
	if r.Sign() <= 0 {
		return xfield.ExtFieldElement{}, blserr.New(blserr.InvalidParameter, "Miller's algorithm requires r > 0, got %s", r)
	}

	ext := q.Ext()
	f := ext.One()
	acc := p

	bits := r.BitLen()
	for i := bits - 2; i >= 0; i-- {
		lineVal, err := LineFunction(acc, acc, q)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}
		fSquared, err := f.Mul(f)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}
		f, err = fSquared.Mul(lineVal)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}
		acc, err = acc.Add(acc)
		if err != nil {
			return xfield.ExtFieldElement{}, err
		}

		if r.Bit(i) == 1 {
			lineVal, err = LineFunction(acc, p, q)
			if err != nil {
				return xfield.ExtFieldElement{}, err
			}
			f, err = f.Mul(lineVal)
			if err != nil {
				return xfield.ExtFieldElement{}, err
			}
			acc, err = acc.Add(p)
			if err != nil {
				return xfield.ExtFieldElement{}, err
			}
		}
	}

	return f, nil
}

// TatePairing computes the reduced Tate pairing e(P, Q) = f_{r,P}(Q)^{(p^k-1)/r}.
func TatePairing(p curve.Point, q extcurve.Point, r *big.Int, pBase *big.Int, k int) (xfield.ExtFieldElement, error) {
	millerValue, err := Miller(p, q, r)
	if err != nil {
		return xfield.ExtFieldElement{}, err
	}

	pk := new(big.Int).Exp(pBase, big.NewInt(int64(k)), nil)
	exponent := new(big.Int).Sub(pk, big.NewInt(1))
	exponent.Div(exponent, r)

	return millerValue.Pow(exponent)
}
