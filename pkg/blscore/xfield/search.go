package xfield

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/polynomial"
)

// FindEmbeddingDegree returns the smallest positive k with p^k ≡ 1 (mod r),
// the embedding degree that guarantees 𝔽_{p^k} contains the r-th roots of
// unity the Tate pairing needs. It iterates k = 1, 2, 3, ... computing
// p^k mod r at each step; searchCap bounds the iteration so a
// misconfigured (p, r) pair fails fast with SearchExhausted instead of
// looping forever.
func FindEmbeddingDegree(p, r *big.Int, searchCap int) (int, error) {
	modR := new(big.Int)
	for k := 1; k <= searchCap; k++ {
		modR.Exp(p, big.NewInt(int64(k)), r)
		if modR.Cmp(big.NewInt(1)) == 0 {
			return k, nil
		}
	}
	return 0, blserr.New(blserr.SearchExhausted, "no embedding degree ≤ %d found for p=%s, r=%s", searchCap, p, r)
}

// FindIrreducible returns a monic irreducible polynomial of degree k over
// base. For k = 2 with p ≡ 3 (mod 4) this is always x² + 1, since -1 is
// then a non-residue. Otherwise it enumerates monic degree-k polynomials in
// lexicographic order of their low-degree coefficients and returns the
// first that passes Rabin's test.
func FindIrreducible(base *field.Field, k int) (*polynomial.Polynomial, error) {
	if k <= 0 {
		return nil, blserr.New(blserr.InvalidParameter, "extension degree k = %d must be positive", k)
	}

	if k == 2 {
		mod4 := new(big.Int).Mod(base.P(), big.NewInt(4))
		if mod4.Cmp(big.NewInt(3)) == 0 {
			coeffs := []field.Element{base.One(), base.Zero(), base.One()} // 1 + 0x + x²
			return polynomial.New(base, coeffs), nil
		}
	}

	p := base.P()
	total := new(big.Int).Exp(p, big.NewInt(int64(k)), nil) // p^k candidates before fixing the leading 1.

	candidate := make([]field.Element, k+1)
	candidate[k] = base.One()

	index := new(big.Int)
	for index.Cmp(total) < 0 {
		digits := new(big.Int).Set(index)
		for i := 0; i < k; i++ {
			digit := new(big.Int)
			digits.DivMod(digits, p, digit)
			candidate[i] = base.Element(digit)
		}

		poly := polynomial.New(base, candidate)
		if poly.Degree() == k {
			irreducible, err := poly.IsIrreducible()
			if err != nil {
				return nil, err
			}
			if irreducible {
				return poly, nil
			}
		}

		index.Add(index, big.NewInt(1))
	}

	return nil, blserr.New(blserr.SearchExhausted, "no irreducible monic polynomial of degree %d found over 𝔽_%s", k, p)
}
