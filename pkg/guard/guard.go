package guard

import "github.com/dmitrymomot/anvil/pkg/auth"

// Predicate decides whether an identity may perform an action.
// Implementations must be safe for concurrent use.
type Predicate interface {
	Allows(identity auth.Identity) bool
}

// PredicateFunc adapts a plain function to the Predicate interface.
type PredicateFunc func(identity auth.Identity) bool

// Allows calls fn.
func (fn PredicateFunc) Allows(identity auth.Identity) bool {
	return fn(identity)
}

// Built-in predicates covering the common access tiers.
var (
	// AllowAll admits every request, authenticated or not.
	AllowAll Predicate = PredicateFunc(func(auth.Identity) bool {
		return true
	})

	// IsAuthenticated admits any signed-in principal.
	IsAuthenticated Predicate = PredicateFunc(func(identity auth.Identity) bool {
		return identity.IsAuthenticated()
	})

	// IsAdmin admits only authenticated administrators.
	IsAdmin Predicate = PredicateFunc(func(identity auth.Identity) bool {
		return identity.IsAdmin()
	})
)

// Any reports whether at least one predicate admits the identity.
// Predicates are evaluated in order and evaluation stops at the first
// allow. An empty predicate list admits nothing.
func Any(identity auth.Identity, predicates ...Predicate) bool {
	for _, p := range predicates {
		if p.Allows(identity) {
			return true
		}
	}
	return false
}
