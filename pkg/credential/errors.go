package credential

import "errors"

var (
	ErrEmptyToken   = errors.New("credential.empty_token")
	ErrInvalidUser  = errors.New("credential.invalid_user")
	ErrPersistStore = errors.New("credential.persist_store_failed")
	ErrClearStore   = errors.New("credential.clear_store_failed")
	ErrReadStore    = errors.New("credential.read_store_failed")
)
