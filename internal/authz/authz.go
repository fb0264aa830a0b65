// Package authz holds the single ownership predicate applied before every
// protected read or mutation. Every denial must end the request with a 401;
// no partial data is returned.
package authz

// Allowed reports whether the session identity may act on a resource owned by
// resourceOwner. An absent session (empty username) is always denied.
func Allowed(sessionUsername, resourceOwner string) bool {
	return sessionUsername != "" && sessionUsername == resourceOwner
}
