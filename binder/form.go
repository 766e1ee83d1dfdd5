package binder

import (
	"fmt"
	"net/http"
)

// Form binds application/x-www-form-urlencoded bodies using `form` tags.
// Requests without a body method are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			return ErrNotApplicable
		}
		if mt := mediaType(r); mt != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
		}
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindValues(v, "form", r.PostForm, ErrInvalidForm)
	}
}
