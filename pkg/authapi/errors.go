package authapi

import "errors"

var ErrInvalidBaseURL = errors.New("authapi.invalid_base_url")
