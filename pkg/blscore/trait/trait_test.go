package trait

import (
	"math/big"
	"testing"

	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/xfield"
)

func TestValidateFieldAxioms(t *testing.T) {
	f, err := field.New(big.NewInt(103))
	if err != nil {
		t.Fatalf("field.New error: %v", err)
	}
	for i := int64(0); i < 103; i++ {
		if err := ValidateFieldAxioms(f.ElementFromInt64(i)); err != nil {
			t.Errorf("ValidateFieldAxioms(%d) failed: %v", i, err)
		}
	}
}

func TestValidateExtFieldAxioms(t *testing.T) {
	f, err := field.New(big.NewInt(103))
	if err != nil {
		t.Fatalf("field.New error: %v", err)
	}
	modulus, err := xfield.FindIrreducible(f, 2)
	if err != nil {
		t.Fatalf("FindIrreducible error: %v", err)
	}
	ext, err := xfield.New(f, modulus)
	if err != nil {
		t.Fatalf("xfield.New error: %v", err)
	}

	for a := int64(0); a < 5; a++ {
		for b := int64(0); b < 5; b++ {
			e, err := ext.Element([]*big.Int{big.NewInt(a), big.NewInt(b)})
			if err != nil {
				t.Fatalf("Element error: %v", err)
			}
			if err := ValidateExtFieldAxioms(e); err != nil {
				t.Errorf("ValidateExtFieldAxioms(%d, %d) failed: %v", a, b, err)
			}
		}
	}
}
