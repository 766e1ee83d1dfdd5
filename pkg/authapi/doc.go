// Package authapi talks to the external auth backend.
//
// Every operation returns a Result and never an error: transport failures,
// HTTP error statuses and malformed input are all mapped to a Result with
// Success false and a user-facing Message. Fixed messages also carry a
// MessageKey so the portal can show them in the visitor's language; a
// message supplied by the backend is passed through verbatim with no key.
//
// Requests other than login and register carry "Authorization: Bearer
// <token>" with the token read from the visitor key-value store.
package authapi
