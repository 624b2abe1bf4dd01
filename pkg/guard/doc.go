// Package guard provides composable access-control predicates over
// request identities.
//
// A [Predicate] answers a single question: may this identity proceed?
// Routes declare their access rule as an ordered list of predicates
// combined with OR semantics via [Any]; the authorization middleware
// turns a denial into a 403 response.
//
// # Built-in Predicates
//
//   - [AllowAll] admits everyone, including anonymous requests
//   - [IsAuthenticated] admits any signed-in principal
//   - [IsAdmin] admits authenticated administrators only
//
// # Custom Predicates
//
// Wrap a function with [PredicateFunc]:
//
//	ownsResource := guard.PredicateFunc(func(identity auth.Identity) bool {
//	    return identity.Subject == resourceOwnerID
//	})
//
//	if guard.Any(identity, guard.IsAdmin, ownsResource) {
//	    // admins or the owner may proceed
//	}
//
// Evaluation is ordered with short-circuit on the first allow, so put
// cheap predicates first. An empty predicate list denies by default.
package guard
