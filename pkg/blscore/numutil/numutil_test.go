package numutil

import (
	"math/big"
	"testing"
)

func big64(v int64) *big.Int { return big.NewInt(v) }

func TestIsPrime(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 97, 103}
	for _, p := range primes {
		if !IsPrime(big64(p)) {
			t.Errorf("IsPrime(%d) = false, want true", p)
		}
	}

	composites := []int64{0, 1, 4, 6, 9, 100, 104}
	for _, n := range composites {
		if IsPrime(big64(n)) {
			t.Errorf("IsPrime(%d) = true, want false", n)
		}
	}
}

func TestPrimeFactors(t *testing.T) {
	got := PrimeFactors(big64(104))
	want := []int64{2, 13}
	if len(got) != len(want) {
		t.Fatalf("PrimeFactors(104) = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i].Cmp(big64(w)) != 0 {
			t.Errorf("PrimeFactors(104)[%d] = %s, want %d", i, got[i], w)
		}
	}
}

func TestLargestPrimeFactor(t *testing.T) {
	got, err := LargestPrimeFactor(big64(104))
	if err != nil {
		t.Fatalf("LargestPrimeFactor(104) error: %v", err)
	}
	if got.Cmp(big64(13)) != 0 {
		t.Errorf("LargestPrimeFactor(104) = %s, want 13", got)
	}

	if _, err := LargestPrimeFactor(big64(1)); err == nil {
		t.Error("LargestPrimeFactor(1) should fail")
	}
}

func TestDivisors(t *testing.T) {
	got := Divisors(big64(104))
	want := []int64{1, 2, 4, 8, 13, 26, 52, 104}
	if len(got) != len(want) {
		t.Fatalf("Divisors(104) = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i].Cmp(big64(w)) != 0 {
			t.Errorf("Divisors(104)[%d] = %s, want %d", i, got[i], w)
		}
	}
}

func TestExtendedGCD(t *testing.T) {
	a, b := big64(103), big64(7)
	g, x, y := ExtendedGCD(a, b)
	if g.Cmp(big64(1)) != 0 {
		t.Fatalf("gcd(103, 7) = %s, want 1", g)
	}
	check := new(big.Int).Add(new(big.Int).Mul(a, x), new(big.Int).Mul(b, y))
	if check.Cmp(g) != 0 {
		t.Errorf("a*x + b*y = %s, want %s", check, g)
	}
}
