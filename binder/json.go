package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxJSONBody = 1 << 20

// JSON decodes an application/json body into v, rejecting unknown fields
// and trailing data.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mt := mediaType(r); mt != "application/json" {
			return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
		}
		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after object", ErrInvalidJSON)
		}
		return nil
	}
}
