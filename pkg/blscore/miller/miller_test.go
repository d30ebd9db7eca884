package miller

import (
	"math/big"
	"testing"

	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/extcurve"
	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/hashpoint"
	"github.com/vybium/bls-tate/pkg/blscore/xfield"
)

func setup(t *testing.T) (*curve.Curve, *xfield.ExtensionField, *big.Int) {
	t.Helper()
	f, err := field.New(big.NewInt(103))
	if err != nil {
		t.Fatalf("field.New error: %v", err)
	}
	c, err := curve.New(f, 1, 0)
	if err != nil {
		t.Fatalf("curve.New error: %v", err)
	}
	modulus, err := xfield.FindIrreducible(f, 2)
	if err != nil {
		t.Fatalf("FindIrreducible error: %v", err)
	}
	ext, err := xfield.New(f, modulus)
	if err != nil {
		t.Fatalf("xfield.New error: %v", err)
	}
	return c, ext, big.NewInt(13)
}

func TestTatePairingBilinear(t *testing.T) {
	c, ext, r := setup(t)

	groupOrder, err := c.GroupOrder()
	if err != nil {
		t.Fatalf("GroupOrder error: %v", err)
	}
	extOrder, err := extcurve.GroupOrder(c, ext)
	if err != nil {
		t.Fatalf("extcurve.GroupOrder error: %v", err)
	}
	q, err := extcurve.FindPointOfOrderR(c, ext, extOrder, r, 20000)
	if err != nil {
		t.Fatalf("FindPointOfOrderR error: %v", err)
	}

	p, err := hashpoint.HashToPoint("pairing-test-seed", c, groupOrder, r)
	if err != nil {
		t.Fatalf("HashToPoint error: %v", err)
	}
	if p.IsInfinity() {
		t.Fatal("hashed point is infinity, pick a different seed")
	}

	k := ext.Degree()
	pBase := c.Field().P()

	// e(2P, Q) should equal e(P, Q)^2.
	twoP, err := p.ScalarMul(big.NewInt(2))
	if err != nil {
		t.Fatalf("ScalarMul error: %v", err)
	}

	lhs, err := TatePairing(twoP, q, r, pBase, k)
	if err != nil {
		t.Fatalf("TatePairing error: %v", err)
	}
	base, err := TatePairing(p, q, r, pBase, k)
	if err != nil {
		t.Fatalf("TatePairing error: %v", err)
	}
	rhs, err := base.Mul(base)
	if err != nil {
		t.Fatalf("Mul error: %v", err)
	}

	if !lhs.Equal(rhs) {
		t.Errorf("e(2P, Q) = %s, e(P, Q)^2 = %s, want equal", lhs, rhs)
	}
}

func TestLineFunctionInfinityIsOne(t *testing.T) {
	c, ext, r := setup(t)
	_ = r
	o := curve.Infinity(c)
	zero := ext.Zero()
	q := extcurve.NewPoint(c, ext, zero, zero)

	v, err := LineFunction(o, o, q)
	if err != nil {
		t.Fatalf("LineFunction error: %v", err)
	}
	if !v.IsOne() {
		t.Errorf("LineFunction(O, O, Q) = %s, want 1", v)
	}
}
