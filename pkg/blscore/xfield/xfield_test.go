package xfield

import (
	"math/big"
	"testing"

	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/polynomial"
)

func mustField(t *testing.T, p int64) *field.Field {
	t.Helper()
	f, err := field.New(big.NewInt(p))
	if err != nil {
		t.Fatalf("field.New(%d) error: %v", p, err)
	}
	return f
}

func TestNewRejectsReducibleModulus(t *testing.T) {
	f := mustField(t, 103)
	modulus := polynomial.New(f, []field.Element{
		f.ElementFromInt64(-1), f.ElementFromInt64(0), f.ElementFromInt64(1), // x^2 - 1
	})
	if _, err := New(f, modulus); err == nil {
		t.Error("New with reducible modulus should fail")
	}
}

func TestArithmetic(t *testing.T) {
	f := mustField(t, 103)
	modulus, err := FindIrreducible(f, 2)
	if err != nil {
		t.Fatalf("FindIrreducible error: %v", err)
	}
	ext, err := New(f, modulus)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	a, err := ext.Element([]*big.Int{big.NewInt(3), big.NewInt(5)})
	if err != nil {
		t.Fatalf("Element error: %v", err)
	}
	b, err := ext.Element([]*big.Int{big.NewInt(7), big.NewInt(2)})
	if err != nil {
		t.Fatalf("Element error: %v", err)
	}

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	want, err := ext.Element([]*big.Int{big.NewInt(10), big.NewInt(7)})
	if err != nil {
		t.Fatalf("Element error: %v", err)
	}
	if !sum.Equal(want) {
		t.Errorf("a + b = %s, want %s", sum, want)
	}

	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul error: %v", err)
	}
	inv, err := prod.Inverse()
	if err != nil {
		t.Fatalf("Inverse error: %v", err)
	}
	back, err := prod.Mul(inv)
	if err != nil {
		t.Fatalf("Mul error: %v", err)
	}
	if !back.IsOne() {
		t.Errorf("prod * prod^-1 = %s, want 1", back)
	}
}

func TestFromBaseUnlift(t *testing.T) {
	f := mustField(t, 103)
	modulus, err := FindIrreducible(f, 2)
	if err != nil {
		t.Fatalf("FindIrreducible error: %v", err)
	}
	ext, err := New(f, modulus)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	base := f.ElementFromInt64(17)
	lifted := ext.FromBase(base)
	unlifted, ok := lifted.Unlift()
	if !ok {
		t.Fatal("Unlift() = false for a lifted base element, want true")
	}
	if !unlifted.Equal(base) {
		t.Errorf("Unlift() = %s, want %s", unlifted, base)
	}

	nonConstant, err := ext.Element([]*big.Int{big.NewInt(1), big.NewInt(1)})
	if err != nil {
		t.Fatalf("Element error: %v", err)
	}
	if _, ok := nonConstant.Unlift(); ok {
		t.Error("Unlift() = true for a non-constant element, want false")
	}
}

func TestFindEmbeddingDegree(t *testing.T) {
	// p = 103, r = 13: known embedding degree from the worked example is 2.
	k, err := FindEmbeddingDegree(big.NewInt(103), big.NewInt(13), 1000)
	if err != nil {
		t.Fatalf("FindEmbeddingDegree error: %v", err)
	}
	if k != 2 {
		t.Errorf("FindEmbeddingDegree(103, 13) = %d, want 2", k)
	}
}

func TestFindIrreducibleDegreeTwo(t *testing.T) {
	f := mustField(t, 103)
	p, err := FindIrreducible(f, 2)
	if err != nil {
		t.Fatalf("FindIrreducible error: %v", err)
	}
	want := "1 + 0·x + 1·x^2"
	if p.String() != want {
		t.Errorf("FindIrreducible(103, 2) = %s, want %s", p, want)
	}
}
