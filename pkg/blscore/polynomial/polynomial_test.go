package polynomial

import (
	"math/big"
	"testing"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/field"
)

func mustField(t *testing.T, p int64) *field.Field {
	t.Helper()
	f, err := field.New(big.NewInt(p))
	if err != nil {
		t.Fatalf("field.New(%d) error: %v", p, err)
	}
	return f
}

func poly(f *field.Field, coeffs ...int64) *Polynomial {
	elems := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		elems[i] = f.ElementFromInt64(c)
	}
	return New(f, elems)
}

func TestNormalizeStripsTrailingZeros(t *testing.T) {
	f := mustField(t, 103)
	p := poly(f, 1, 2, 0, 0)
	if p.Degree() != 1 {
		t.Errorf("Degree() = %d, want 1", p.Degree())
	}
}

func TestAddSubMul(t *testing.T) {
	f := mustField(t, 103)
	a := poly(f, 1, 2, 3) // 1 + 2x + 3x^2
	b := poly(f, 3, 2, 1) // 3 + 2x + x^2

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if !sum.Equal(poly(f, 4, 4, 4)) {
		t.Errorf("a + b = %s, want 4 + 4x + 4x^2", sum)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub error: %v", err)
	}
	if !diff.Equal(poly(f, -2, 0, 2)) {
		t.Errorf("a - b = %s, want -2 + 2x^2", diff)
	}

	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul error: %v", err)
	}
	// (1+2x+3x^2)(3+2x+x^2) = 3 + 8x + 14x^2 + 8x^3 + 3x^4
	if !prod.Equal(poly(f, 3, 8, 14, 8, 3)) {
		t.Errorf("a * b = %s, want 3 + 8x + 14x^2 + 8x^3 + 3x^4", prod)
	}
}

func TestDivide(t *testing.T) {
	f := mustField(t, 103)
	// x^2 - 1 = (x - 1)(x + 1)
	a := poly(f, -1, 0, 1)
	b := poly(f, -1, 1)

	q, r, err := a.Divide(b)
	if err != nil {
		t.Fatalf("Divide error: %v", err)
	}
	if !r.IsZero() {
		t.Errorf("remainder = %s, want 0", r)
	}
	if !q.Equal(poly(f, 1, 1)) {
		t.Errorf("quotient = %s, want 1 + x", q)
	}

	if _, _, err := a.Divide(Zero(f)); !blserr.Is(err, blserr.DivideByZero) {
		t.Errorf("Divide by zero error = %v, want DivideByZero", err)
	}
}

func TestGCD(t *testing.T) {
	f := mustField(t, 103)
	a := poly(f, -1, 0, 1)  // x^2 - 1
	b := poly(f, -1, 1)     // x - 1
	g, err := a.GCD(b)
	if err != nil {
		t.Fatalf("GCD error: %v", err)
	}
	if !g.Equal(poly(f, -1, 1)) {
		t.Errorf("gcd = %s, want x - 1", g)
	}
}

func TestIsIrreducibleXSquaredPlusOne(t *testing.T) {
	f := mustField(t, 103) // 103 ≡ 3 (mod 4), so x^2+1 is irreducible.
	p := poly(f, 1, 0, 1)
	irr, err := p.IsIrreducible()
	if err != nil {
		t.Fatalf("IsIrreducible error: %v", err)
	}
	if !irr {
		t.Error("x^2 + 1 over F_103 should be irreducible")
	}
}

func TestIsIrreducibleRejectsReducible(t *testing.T) {
	f := mustField(t, 103)
	p := poly(f, -1, 0, 1) // x^2 - 1 = (x-1)(x+1), reducible.
	irr, err := p.IsIrreducible()
	if err != nil {
		t.Fatalf("IsIrreducible error: %v", err)
	}
	if irr {
		t.Error("x^2 - 1 over F_103 should be reducible")
	}
}

func TestString(t *testing.T) {
	f := mustField(t, 103)
	p := poly(f, 1, 0, 1)
	want := "1 + 0·x + 1·x^2"
	if p.String() != want {
		t.Errorf("String() = %q, want %q", p.String(), want)
	}
}
