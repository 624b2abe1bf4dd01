package auth

// Identity is the authenticated principal attached to a request.
//
// The zero value is the anonymous identity: no subject, no privileges.
// Handlers receive an Identity for every request; use IsAuthenticated
// to distinguish signed-in callers from anonymous ones.
type Identity struct {
	// Subject is the stable identifier of the principal, taken from the
	// token's sub claim. Empty for anonymous requests.
	Subject string

	// Admin reports whether the principal carries administrative rights.
	Admin bool
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// IsAuthenticated reports whether the identity belongs to a signed-in
// principal. The anonymous identity returns false.
func (i Identity) IsAuthenticated() bool {
	return i.Subject != ""
}

// IsAdmin reports whether the identity is an authenticated administrator.
// Anonymous identities are never administrators.
func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Admin
}
