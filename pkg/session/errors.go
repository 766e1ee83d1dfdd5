package session

import "errors"

var (
	// ErrKeyNotFound indicates the visitor has no value under the key.
	ErrKeyNotFound = errors.New("session.key_not_found")

	// ErrNoVisitor indicates the context carries no visitor id.
	ErrNoVisitor = errors.New("session.no_visitor")
)
