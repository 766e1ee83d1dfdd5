// Package validator checks submitted form values before anything leaves the
// portal.
//
// Rules are plain values built by constructors such as Required or MinLen
// and evaluated together by Apply, which returns ValidationErrors listing
// every failed rule in order:
//
//	err := validator.Apply(
//		validator.Required("email", form.Email),
//		validator.ValidEmail("email", form.Email),
//		validator.Required("password", form.Password),
//	)
//
// Each ValidationError carries a TranslationKey so the page can render the
// message in the visitor's language.
package validator
