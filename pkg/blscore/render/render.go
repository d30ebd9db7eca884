// Package render formats the algebraic objects in pkg/blscore into the
// plain-text representations used by the steps report and the CLI:
// a point at infinity always renders as the literal "O"; an affine
// base-curve point as "{x: dec, y: dec}"; an affine extension-curve
// point as "{x: polynomial string, y: polynomial string}".
package render

import (
	"fmt"

	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/extcurve"
)

// Point renders a base-curve point as "{x: dec, y: dec}", or "O" for
// the point at infinity.
func Point(p curve.Point) string {
	if p.IsInfinity() {
		return "O"
	}
	x, y := p.XY()
	return fmt.Sprintf("{x: %s, y: %s}", x, y)
}

// ExtPoint renders an extension-curve point as
// "{x: polynomial string, y: polynomial string}", or "O" for the point
// at infinity.
func ExtPoint(p extcurve.Point) string {
	if p.IsInfinity() {
		return "O"
	}
	x, y := p.XY()
	return fmt.Sprintf("{x: %s, y: %s}", x, y)
}
