// Package authsession owns the signed-in state of a visitor.
//
// A State is built once per request by Provider.Hydrate from the persisted
// credential and travels in the request context. Handlers read it through
// FromContext; only Provider operations (Login, Register, Logout) change it.
//
// State machine:
//
//	Initial (loading) --Hydrate--> Authenticated(user) | Anonymous
//	Anonymous --Login ok--> Authenticated(user)
//	Authenticated --Logout--> Anonymous
//
// Register never changes the state. Guard protects handlers that need a
// signed-in visitor.
package authsession
