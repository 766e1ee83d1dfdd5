package handler

import (
	"errors"
	"net/http"
)

// HTTPError is an error carrying a status code and a message catalog key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "http.bad_request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "http.unauthorized"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "http.not_found"}
	ErrMethodNotAllowed    = HTTPError{Code: http.StatusMethodNotAllowed, Key: "http.method_not_allowed"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "http.too_many_requests"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "http.internal_server_error"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Key: "http.bad_gateway"}
)

var ErrNilResponse = errors.New("handler.nil_response")
