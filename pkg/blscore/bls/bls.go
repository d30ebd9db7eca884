// Package bls orchestrates the full BLS signature pipeline on top of
// pkg/blscore's algebraic layers: curve setup, subgroup order discovery,
// embedding-degree search, extension field construction, hash-to-point,
// Miller's algorithm, and the reduced Tate pairing used for
// verification.
//
// A Context is built once by Setup and is immutable thereafter, so a
// single Context can be shared across goroutines signing or verifying
// concurrently without synchronization.
package bls

import (
	"math/big"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/extcurve"
	"github.com/vybium/bls-tate/pkg/blscore/field"
	"github.com/vybium/bls-tate/pkg/blscore/hashpoint"
	"github.com/vybium/bls-tate/pkg/blscore/miller"
	"github.com/vybium/bls-tate/pkg/blscore/numutil"
	"github.com/vybium/bls-tate/pkg/blscore/render"
	"github.com/vybium/bls-tate/pkg/blscore/xfield"
)

// defaultSearchCap bounds the embedding-degree search and the search for
// the subgroup point Q (including its square-root scan) so a
// misconfigured curve fails fast instead of looping forever.
const defaultSearchCap = 100000

// Params are the user-supplied curve and key parameters that fully
// determine a Context.
type Params struct {
	P          *big.Int // field modulus, must be prime and ≡ 3 (mod 4).
	A          int64    // curve coefficient A.
	B          int64    // curve coefficient B.
	PrivateKey *big.Int // signer's private scalar.
}

// Context holds every value the BLS setup pipeline derives from Params:
// the base field and curve, the curve's full group order N, the prime
// signature-subgroup order r, the embedding degree k, the extension
// field, the auxiliary G2 point Q, and the key pair. It is immutable
// once returned by Setup.
type Context struct {
	field *field.Field
	curve *curve.Curve

	groupOrder *big.Int // N = |E(𝔽_p)|
	r          *big.Int // largest prime factor of N; the signature subgroup order.
	cofactor   *big.Int // N / r

	k   int
	ext *xfield.ExtensionField

	q        extcurve.Point // G2 base point, order r, not in E(𝔽_p).
	extOrder *big.Int       // |E(𝔽_p^k)|, used only to cofactor-clear Q during setup.

	privateKey *big.Int
	publicKey  extcurve.Point // privateKey * Q
}

// Setup runs the full BLS setup pipeline: construct the field and curve,
// compute the curve's group order N and its largest prime factor r,
// search for the embedding degree k and an irreducible degree-k
// polynomial, build the extension field 𝔽_{p^k}, locate the G2 base
// point Q of order r, and derive the public key Q-multiple from the
// private key.
func Setup(params Params) (*Context, error) {
	f, err := field.New(params.P)
	if err != nil {
		return nil, err
	}

	c, err := curve.New(f, params.A, params.B)
	if err != nil {
		return nil, err
	}

	groupOrder, err := c.GroupOrder()
	if err != nil {
		return nil, err
	}

	r, err := numutil.LargestPrimeFactor(groupOrder)
	if err != nil {
		return nil, err
	}
	cofactor := new(big.Int).Div(groupOrder, r)

	k, err := xfield.FindEmbeddingDegree(params.P, r, defaultSearchCap)
	if err != nil {
		return nil, err
	}

	irreducible, err := xfield.FindIrreducible(f, k)
	if err != nil {
		return nil, err
	}

	ext, err := xfield.New(f, irreducible)
	if err != nil {
		return nil, err
	}

	extOrder, err := extensionGroupOrder(k, groupOrder, c, ext)
	if err != nil {
		return nil, err
	}

	q, err := extcurve.FindPointOfOrderR(c, ext, extOrder, r, defaultSearchCap)
	if err != nil {
		return nil, err
	}

	if params.PrivateKey == nil || params.PrivateKey.Sign() <= 0 {
		return nil, blserr.New(blserr.InvalidParameter, "private key must be a positive integer")
	}
	privateKey := new(big.Int).Mod(params.PrivateKey, r)
	if privateKey.Sign() == 0 {
		privateKey = big.NewInt(1)
	}

	publicKey, err := q.ScalarMul(privateKey)
	if err != nil {
		return nil, err
	}

	return &Context{
		field:      f,
		curve:      c,
		groupOrder: groupOrder,
		r:          r,
		cofactor:   cofactor,
		k:          k,
		ext:        ext,
		q:          q,
		extOrder:   extOrder,
		privateKey: privateKey,
		publicKey:  publicKey,
	}, nil
}

// extensionGroupOrder computes |E(𝔽_{p^k})|: for k = 1 the extension is
// the base field itself, so the base curve's order is reused directly;
// otherwise it delegates to extcurve.GroupOrder's naive enumeration over
// the extension field.
func extensionGroupOrder(k int, baseOrder *big.Int, c *curve.Curve, ext *xfield.ExtensionField) (*big.Int, error) {
	if k == 1 {
		return new(big.Int).Set(baseOrder), nil
	}
	return extcurve.GroupOrder(c, ext)
}

// Field returns the base prime field 𝔽_p.
func (ctx *Context) Field() *field.Field { return ctx.field }

// Curve returns the base elliptic curve E(𝔽_p).
func (ctx *Context) Curve() *curve.Curve { return ctx.curve }

// GroupOrder returns N = |E(𝔽_p)|.
func (ctx *Context) GroupOrder() *big.Int { return new(big.Int).Set(ctx.groupOrder) }

// R returns the prime signature-subgroup order.
func (ctx *Context) R() *big.Int { return new(big.Int).Set(ctx.r) }

// Cofactor returns N / r.
func (ctx *Context) Cofactor() *big.Int { return new(big.Int).Set(ctx.cofactor) }

// EmbeddingDegree returns k.
func (ctx *Context) EmbeddingDegree() int { return ctx.k }

// ExtensionField returns 𝔽_{p^k}.
func (ctx *Context) ExtensionField() *xfield.ExtensionField { return ctx.ext }

// Q returns the G2 base point used for verification.
func (ctx *Context) Q() extcurve.Point { return ctx.q }

// PublicKey returns the public key, privateKey * Q.
func (ctx *Context) PublicKey() extcurve.Point { return ctx.publicKey }

// Signature is a signed message: a G1 point, privateKey * H(m).
type Signature struct {
	Point curve.Point
}

// Sign hashes m to a point on E(𝔽_p) and multiplies it by the private
// key.
func (ctx *Context) Sign(m string) (Signature, error) {
	h, err := hashpoint.HashToPoint(m, ctx.curve, ctx.groupOrder, ctx.r)
	if err != nil {
		return Signature{}, err
	}
	s, err := h.ScalarMul(ctx.privateKey)
	if err != nil {
		return Signature{}, err
	}
	return Signature{Point: s}, nil
}

// Verify checks a signature against a message and this context's public
// key via the bilinearity of the Tate pairing:
// e(H(m), publicKey) = e(H(m), a*Q) = e(H(m), Q)^a = e(a*H(m), Q) = e(sig, Q).
// It rejects the point at infinity and any point not on the curve before
// computing either pairing.
func (ctx *Context) Verify(m string, sig Signature) (bool, error) {
	if sig.Point.IsInfinity() {
		return false, nil
	}
	onCurve, err := ctx.curve.Contains(sig.Point)
	if err != nil {
		return false, err
	}
	if !onCurve {
		return false, nil
	}

	h, err := hashpoint.HashToPoint(m, ctx.curve, ctx.groupOrder, ctx.r)
	if err != nil {
		return false, err
	}

	lhs, err := miller.TatePairing(h, ctx.publicKey, ctx.r, ctx.field.P(), ctx.k)
	if err != nil {
		return false, err
	}
	rhs, err := miller.TatePairing(sig.Point, ctx.q, ctx.r, ctx.field.P(), ctx.k)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}

// StepsReport captures every intermediate value of the setup pipeline
// and of signing/verifying a specific message, matching the
// field-by-field breakdown a learner walking through the scheme would
// want to see.
type StepsReport struct {
	GroupOrder      string
	R               string
	Cofactor        string
	EmbeddingDegree int
	IrreduciblePoly string
	HashPoint       string
	Signature       string
	Q               string
	PairingLHS      string
	PairingRHS      string
	Verified        bool
	DisplayMessage  string
}

// Steps runs sign and verify for m and renders a StepsReport describing
// this context's setup pipeline together with every value that
// depends on m: the hash point, the signature, both sides of the Tate
// pairing check, and whether they agree.
func (ctx *Context) Steps(m string) (StepsReport, error) {
	h, err := hashpoint.HashToPoint(m, ctx.curve, ctx.groupOrder, ctx.r)
	if err != nil {
		return StepsReport{}, err
	}

	sig, err := ctx.Sign(m)
	if err != nil {
		return StepsReport{}, err
	}

	lhs, err := miller.TatePairing(sig.Point, ctx.q, ctx.r, ctx.field.P(), ctx.k)
	if err != nil {
		return StepsReport{}, err
	}
	rhs, err := miller.TatePairing(h, ctx.publicKey, ctx.r, ctx.field.P(), ctx.k)
	if err != nil {
		return StepsReport{}, err
	}

	verified, err := ctx.Verify(m, sig)
	if err != nil {
		return StepsReport{}, err
	}

	displayMessage := "Verification failed"
	if verified {
		displayMessage = "Signature verified"
	}

	return StepsReport{
		GroupOrder:      ctx.groupOrder.String(),
		R:               ctx.r.String(),
		Cofactor:        ctx.cofactor.String(),
		EmbeddingDegree: ctx.k,
		IrreduciblePoly: ctx.ext.Modulus().String(),
		HashPoint:       render.Point(h),
		Signature:       render.Point(sig.Point),
		Q:               render.ExtPoint(ctx.q),
		PairingLHS:      lhs.String(),
		PairingRHS:      rhs.String(),
		Verified:        verified,
		DisplayMessage:  displayMessage,
	}, nil
}
