package portal

import (
	"github.com/dmitrymomot/authportal/pkg/authapi"
	"github.com/dmitrymomot/authportal/pkg/sanitizer"
	"github.com/dmitrymomot/authportal/pkg/validator"
)

const (
	minPasswordLength = 6
	maxNameLength     = 100
)

type EntryRequest struct {
	Tab string `query:"tab"`
}

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (r *LoginRequest) sanitize() {
	r.Email = sanitizer.NormalizeEmail(sanitizer.SingleLine(r.Email))
}

func (r LoginRequest) validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("password", r.Password),
	)
}

type RegisterRequest struct {
	Name            string `form:"name"`
	Nickname        string `form:"nickname"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
}

func (r *RegisterRequest) sanitize() {
	r.Name = sanitizer.MaxLength(sanitizer.SingleLine(r.Name), maxNameLength)
	r.Nickname = sanitizer.MaxLength(sanitizer.SingleLine(r.Nickname), maxNameLength)
	r.Email = sanitizer.NormalizeEmail(sanitizer.SingleLine(r.Email))
}

func (r RegisterRequest) validate() error {
	return validator.Apply(
		validator.Required("name", r.Name),
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("password", r.Password),
		validator.MinLen("password", r.Password, minPasswordLength),
		validator.Matches("password_confirm", r.PasswordConfirm, r.Password),
	)
}

// payload drops the confirmation before the request leaves the portal.
func (r RegisterRequest) payload() authapi.RegisterRequest {
	return authapi.RegisterRequest{
		Name:     r.Name,
		Nickname: r.Nickname,
		Email:    r.Email,
		Password: r.Password,
	}
}
