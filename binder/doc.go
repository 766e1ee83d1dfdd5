// Package binder fills request structs from query strings, url-encoded
// forms and JSON bodies. Field names come from the `query`, `form` and
// `json` struct tags; "-" skips a field. Untagged fields are matched by
// their lowercased name.
package binder
