// Package blserr defines the error taxonomy shared by every layer of the
// BLS algebraic tower: prime field, polynomial, extension field, curves,
// hash-to-point, Miller's algorithm, and the orchestrator.
//
// Every fallible operation returns one of these kinds rather than panicking,
// so a host process can type-switch on Kind and map invalid-parameter and
// mismatched-fields to a 4xx response, and everything else to a 5xx response.
package blserr

import "fmt"

// Kind enumerates the error categories a caller can distinguish.
type Kind int

const (
	// InvalidParameter covers bad constructor inputs: a non-prime p, p ≢ 3
	// (mod 4), a singular curve, a non-positive private key, or n ≤ 1 passed
	// to LargestPrimeFactor.
	InvalidParameter Kind = iota
	// MismatchedFields covers arithmetic across elements of different fields.
	MismatchedFields
	// DivideByZero covers inverting zero, or dividing by a zero polynomial.
	DivideByZero
	// NotASquare covers Sqrt called on a non quadratic-residue.
	NotASquare
	// InvalidModulus covers an extension field built on a reducible or
	// non-monic polynomial.
	InvalidModulus
	// SearchExhausted covers a bounded search (irreducible polynomial, point
	// Q of order r) that never finds a witness.
	SearchExhausted
	// NoPointFound covers increment-and-try exhausting the field.
	NoPointFound
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid-parameter"
	case MismatchedFields:
		return "mismatched-fields"
	case DivideByZero:
		return "divide-by-zero"
	case NotASquare:
		return "not-a-square"
	case InvalidModulus:
		return "invalid-modulus"
	case SearchExhausted:
		return "search-exhausted"
	case NoPointFound:
		return "no-point-found"
	default:
		return "unknown-error"
	}
}

// Error is the single error type raised by every package in the algebraic
// tower. Kind identifies the category; Message carries detail for logs and
// direct inspection.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a *blserr.Error of the given kind, letting
// callers write `blserr.Is(err, blserr.DivideByZero)` instead of a type
// assertion.
func Is(err error, kind Kind) bool {
	be, ok := err.(*Error)
	return ok && be.Kind == kind
}
