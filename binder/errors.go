package binder

import "errors"

var (
	// ErrNotApplicable is returned when a binder does not handle the
	// request; handler.Wrap skips such binders.
	ErrNotApplicable        = errors.New("binder.not_applicable")
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrInvalidForm          = errors.New("binder.invalid_form")
	ErrInvalidQuery         = errors.New("binder.invalid_query")
	ErrInvalidJSON          = errors.New("binder.invalid_json")
	ErrInvalidTarget        = errors.New("binder.invalid_target")
)
