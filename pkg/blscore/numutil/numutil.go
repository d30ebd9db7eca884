// Package numutil provides the number-theoretic primitives the rest of the
// algebraic tower is built from: gcd, the extended Euclidean algorithm,
// primality testing, and factorisation. Everything here operates on
// *big.Int so the same code scales from the toy primes used in tests to
// cryptographically meaningful ones, per the module's arbitrary-precision
// design note.
package numutil

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, 0) = 0.
func GCD(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return g
}

// ExtendedGCD returns (g, x, y) with a*x + b*y = g = gcd(a, b). Used to
// compute modular inverses in the prime field: when gcd(a, p) = 1,
// a^{-1} mod p = x mod p.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	g, x, y = new(big.Int), new(big.Int), new(big.Int)
	g.GCD(x, y, a, b)
	return g, x, y
}

// IsPrime reports whether n is prime. Trial division suffices: every
// parameter this module deals with is small by design.
func IsPrime(n *big.Int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(big.NewInt(3)) <= 0 {
		return true
	}
	if new(big.Int).Mod(n, two).Sign() == 0 {
		return false
	}
	if new(big.Int).Mod(n, big.NewInt(3)).Sign() == 0 {
		return false
	}

	i := big.NewInt(5)
	six := big.NewInt(6)
	sq := new(big.Int)
	mod := new(big.Int)
	for sq.Mul(i, i); sq.Cmp(n) <= 0; sq.Mul(i, i) {
		if mod.Mod(n, i).Sign() == 0 {
			return false
		}
		ip2 := new(big.Int).Add(i, two)
		if mod.Mod(n, ip2).Sign() == 0 {
			return false
		}
		i.Add(i, six)
	}
	return true
}

// PrimeFactors returns the distinct prime factors of n in ascending order.
// PrimeFactors(1) is empty.
func PrimeFactors(n *big.Int) []*big.Int {
	n = new(big.Int).Set(n)
	var factors []*big.Int

	if new(big.Int).Mod(n, two).Sign() == 0 {
		factors = append(factors, new(big.Int).Set(two))
		for new(big.Int).Mod(n, two).Sign() == 0 {
			n.Div(n, two)
		}
	}

	i := big.NewInt(3)
	sq := new(big.Int)
	for sq.Mul(i, i); sq.Cmp(n) <= 0; sq.Mul(i, i) {
		if new(big.Int).Mod(n, i).Sign() == 0 {
			factors = append(factors, new(big.Int).Set(i))
			for new(big.Int).Mod(n, i).Sign() == 0 {
				n.Div(n, i)
			}
		}
		i.Add(i, two)
	}

	if n.Cmp(one) > 0 {
		factors = append(factors, n)
	}

	return factors
}

// LargestPrimeFactor returns the largest prime factor of n. n must be
// greater than 1; otherwise it fails with InvalidParameter, mirroring the
// group-order → r step of BLS setup where n ≤ 1 would signal a broken curve.
func LargestPrimeFactor(n *big.Int) (*big.Int, error) {
	if n.Cmp(one) <= 0 {
		return nil, blserr.New(blserr.InvalidParameter, "largest_prime_factor: n = %s must be greater than 1", n)
	}
	factors := PrimeFactors(n)
	largest := factors[0]
	for _, f := range factors[1:] {
		if f.Cmp(largest) > 0 {
			largest = f
		}
	}
	return largest, nil
}

// Divisors returns every positive divisor of n in ascending order, derived
// from the prime factorisation of n. Used by curve.Curve.Order, which
// searches divisors of the group order for the smallest one annihilating
// a point.
func Divisors(n *big.Int) []*big.Int {
	primes := PrimeFactors(n)
	divisors := []*big.Int{new(big.Int).Set(one)}

	remaining := new(big.Int).Set(n)
	for _, p := range primes {
		exp := 0
		for new(big.Int).Mod(remaining, p).Sign() == 0 {
			remaining.Div(remaining, p)
			exp++
		}

		existing := divisors
		divisors = make([]*big.Int, 0, len(existing)*(exp+1))
		power := new(big.Int).Set(one)
		for e := 0; e <= exp; e++ {
			for _, d := range existing {
				divisors = append(divisors, new(big.Int).Mul(d, power))
			}
			power.Mul(power, p)
		}
	}

	sortBigInts(divisors)
	return divisors
}

func sortBigInts(xs []*big.Int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1].Cmp(xs[j]) > 0; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
