// Package ratelimiter caps how often a key may hit an endpoint within a
// fixed window. The portal uses it to slow down credential guessing on the
// login and registration forms.
//
// Counters live in a Store: MemoryStore for a single instance, RedisStore
// when several portal instances share limits.
package ratelimiter
