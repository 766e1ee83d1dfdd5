// Package sanitizer normalizes free-text form input before it is validated
// and forwarded to the auth backend. Passwords are never sanitized.
package sanitizer
