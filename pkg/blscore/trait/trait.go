// Package trait holds cross-cutting algebraic property checks shared by
// the field and extension field packages' test suites: the field axioms
// every element of a correctly constructed field must satisfy.
package trait

import (
	"fmt"

	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/xfield"
)

// ValidateFieldAxioms checks that e satisfies the field axioms relative to
// its own Field: additive identity, multiplicative identity, additive
// inverse, and (for non-zero e) multiplicative inverse.
func ValidateFieldAxioms(e field.Element) error {
	f := e.Field()
	zero := f.Zero()
	one := f.One()

	sum, err := e.Add(zero)
	if err != nil {
		return err
	}
	if !sum.Equal(e) {
		return fmt.Errorf("additive identity failed: %s + 0 != %s", e, e)
	}

	prod, err := e.Mul(one)
	if err != nil {
		return err
	}
	if !prod.Equal(e) {
		return fmt.Errorf("multiplicative identity failed: %s * 1 != %s", e, e)
	}

	negSum, err := e.Add(e.Neg())
	if err != nil {
		return err
	}
	if !negSum.IsZero() {
		return fmt.Errorf("additive inverse failed: %s + (-%s) != 0", e, e)
	}

	if !e.IsZero() {
		inv, err := e.Inverse()
		if err != nil {
			return err
		}
		invProd, err := e.Mul(inv)
		if err != nil {
			return err
		}
		if !invProd.IsOne() {
			return fmt.Errorf("multiplicative inverse failed: %s * %s^-1 != 1", e, e)
		}
	}

	return nil
}

// ValidateExtFieldAxioms checks the same field axioms for an extension
// field element.
func ValidateExtFieldAxioms(x xfield.ExtFieldElement) error {
	ext := x.Ext()
	zero := ext.Zero()
	one := ext.One()

	sum, err := x.Add(zero)
	if err != nil {
		return err
	}
	if !sum.Equal(x) {
		return fmt.Errorf("additive identity failed: %s + 0 != %s", x, x)
	}

	prod, err := x.Mul(one)
	if err != nil {
		return err
	}
	if !prod.Equal(x) {
		return fmt.Errorf("multiplicative identity failed: %s * 1 != %s", x, x)
	}

	negSum, err := x.Add(x.Neg())
	if err != nil {
		return err
	}
	if !negSum.IsZero() {
		return fmt.Errorf("additive inverse failed: %s + (-%s) != 0", x, x)
	}

	if !x.IsZero() {
		inv, err := x.Inverse()
		if err != nil {
			return err
		}
		invProd, err := x.Mul(inv)
		if err != nil {
			return err
		}
		if !invProd.IsOne() {
			return fmt.Errorf("multiplicative inverse failed: %s * %s^-1 != 1", x, x)
		}
	}

	return nil
}
