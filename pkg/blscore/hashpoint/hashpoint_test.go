package hashpoint

import (
	"math/big"
	"testing"

	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/field"
)

func setup(t *testing.T) *curve.Curve {
	t.Helper()
	f, err := field.New(big.NewInt(103))
	if err != nil {
		t.Fatalf("field.New error: %v", err)
	}
	c, err := curve.New(f, 1, 0)
	if err != nil {
		t.Fatalf("curve.New error: %v", err)
	}
	return c
}

func TestStringToFieldElement(t *testing.T) {
	f, err := field.New(big.NewInt(103))
	if err != nil {
		t.Fatalf("field.New error: %v", err)
	}
	e := StringToFieldElement("hello", f)
	// "hello" as base-256 digits with the first byte least-significant
	// (Σ byte_i · 256^i), reduced mod 103.
	want := new(big.Int).Mod(big.NewInt(478560413032), big.NewInt(103))
	if e.Int().Cmp(want) != 0 {
		t.Errorf("StringToFieldElement(\"hello\") = %s, want %s", e, want)
	}
}

func TestIncrementAndTryFindsPointOnCurve(t *testing.T) {
	c := setup(t)
	x := c.Field().ElementFromInt64(0)
	p, err := IncrementAndTry(x, c)
	if err != nil {
		t.Fatalf("IncrementAndTry error: %v", err)
	}
	onCurve, err := c.Contains(p)
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !onCurve {
		t.Error("IncrementAndTry returned a point not on the curve")
	}
}

func TestHashToPointLandsInSubgroup(t *testing.T) {
	c := setup(t)
	groupOrder, err := c.GroupOrder()
	if err != nil {
		t.Fatalf("GroupOrder error: %v", err)
	}
	r := big.NewInt(13)

	p, err := HashToPoint("hello", c, groupOrder, r)
	if err != nil {
		t.Fatalf("HashToPoint error: %v", err)
	}

	rp, err := p.ScalarMul(r)
	if err != nil {
		t.Fatalf("ScalarMul error: %v", err)
	}
	if !rp.IsInfinity() {
		t.Errorf("r*H(m) = %v, want infinity", rp)
	}
}

func TestHashToPointDeterministic(t *testing.T) {
	c := setup(t)
	groupOrder, err := c.GroupOrder()
	if err != nil {
		t.Fatalf("GroupOrder error: %v", err)
	}
	r := big.NewInt(13)

	p1, err := HashToPoint("hello", c, groupOrder, r)
	if err != nil {
		t.Fatalf("HashToPoint error: %v", err)
	}
	p2, err := HashToPoint("hello", c, groupOrder, r)
	if err != nil {
		t.Fatalf("HashToPoint error: %v", err)
	}
	if !p1.Equal(p2) {
		t.Error("HashToPoint should be deterministic for the same message")
	}
}
