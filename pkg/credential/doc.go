// Package credential keeps the signed-in user's token in two places: the
// visitor key-value store (token and JSON user record) and a short-lived
// "token" cookie that the edge gate inspects.
//
// The two mediums are written without a transaction. Persist writes the
// store and then the cookie; Clear expires the cookie and then deletes the
// store entries. A failure between the phases, or the cookie expiring
// before the store entry is removed, leaves the mediums out of step: the
// edge gate then sees no token while the store still holds one. Hydration
// requires both, so such a visitor is treated as signed out.
package credential
