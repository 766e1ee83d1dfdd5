// Package session is the portal's long-lived key-value medium.
//
// Each browser is identified by a random visitor id carried in an encrypted
// cookie ("sid" by default). Values are stored server side, per visitor,
// under plain string keys, much like window.localStorage: they survive across
// requests until deleted or until the visitor has been idle longer than the
// configured TTL.
//
// Two Store implementations are provided: MemoryStore for single-instance
// deployments and tests, and RedisStore which keeps one hash per visitor.
//
//	mgr := session.New(store, cookies, session.DefaultConfig())
//	r.Use(mgr.Middleware)
//
//	// inside a handler
//	_ = mgr.Set(r.Context(), "token", token)
//	tok, err := mgr.Get(r.Context(), "token")
package session
