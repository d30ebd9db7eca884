package curve

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

func TestNewRejectsSingularCurve(t *testing.T) {
	f := mustField(t, 103)
	if _, err := New(f, 0, 0); !blserr.Is(err, blserr.InvalidParameter) {
		t.Errorf("New(A=0, B=0) error = %v, want InvalidParameter", err)
	}
}

func TestGroupOrder(t *testing.T) {
	f := mustField(t, 103)
	c, err := New(f, 1, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	n, err := c.GroupOrder()
	if err != nil {
		t.Fatalf("GroupOrder error: %v", err)
	}
	if n.Cmp(big.NewInt(104)) != 0 {
		t.Errorf("GroupOrder() = %s, want 104", n)
	}
}

func TestAddAndScalarMulConsistency(t *testing.T) {
	f := mustField(t, 103)
	c, err := New(f, 1, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	// Find a point on the curve by scanning x values.
	var p Point
	found := false
	for x := int64(0); x < 103; x++ {
		e := f.ElementFromInt64(x)
		z, err := c.RHS(e)
		if err != nil {
			t.Fatalf("RHS error: %v", err)
		}
		if z.IsQuadraticResidue() && !z.IsZero() {
			y, err := z.Sqrt()
			if err != nil {
				t.Fatalf("Sqrt error: %v", err)
			}
			p = NewPoint(c, e, y)
			found = true
			break
		}
	}
	if !found {
		t.Fatal("no affine point found on the curve")
	}

	onCurve, err := c.Contains(p)
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !onCurve {
		t.Fatal("constructed point should be on the curve")
	}

	double, err := p.Add(p)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	viaScalar, err := p.ScalarMul(big.NewInt(2))
	if err != nil {
		t.Fatalf("ScalarMul error: %v", err)
	}
	if !double.Equal(viaScalar) {
		t.Errorf("p+p = %v, 2*p = %v, want equal", double, viaScalar)
	}

	order, err := c.Order(p)
	if err != nil {
		t.Fatalf("Order error: %v", err)
	}
	annihilated, err := p.ScalarMul(order)
	if err != nil {
		t.Fatalf("ScalarMul error: %v", err)
	}
	if !annihilated.IsInfinity() {
		t.Errorf("order(p) * p = %v, want infinity", annihilated)
	}
}

func TestInfinityIdentity(t *testing.T) {
	f := mustField(t, 103)
	c, err := New(f, 1, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	o := Infinity(c)
	p := NewPoint(c, f.ElementFromInt64(1), f.ElementFromInt64(1))

	sum, err := p.Add(o)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if !sum.Equal(p) {
		t.Errorf("p + O = %v, want p", sum)
	}

	negSum, err := p.Add(p.Neg())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if !negSum.IsInfinity() {
		t.Errorf("p + (-p) = %v, want infinity", negSum)
	}
}
