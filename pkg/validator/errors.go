package validator

import "errors"

var ErrValidationFailed = errors.New("validation.failed")
