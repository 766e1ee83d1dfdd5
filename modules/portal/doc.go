// Package portal serves the sign-in portal: the entry page with login and
// registration tabs, the form endpoints under /auth, the protected
// dashboard, the session probe used by page scripts and the /api proxy to
// the auth backend.
//
// Pages are html/template files adapted to templ components, so they plug
// into handler.Templ and DataStar patches like any other component. Form
// posts work both as plain HTML posts and as DataStar requests.
package portal
