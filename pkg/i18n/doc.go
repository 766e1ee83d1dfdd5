// Package i18n renders user-facing portal messages in the visitor's
// language.
//
// Catalogs are YAML documents whose top-level key is the language tag and
// whose nested keys are joined with dots:
//
//	en:
//	  login:
//	    failed: "Invalid credentials. Try again."
//
// The language of a request is picked by Middleware from the "lang" query
// parameter, then the "lang" cookie, then the Accept-Language header, and
// matched against the catalog languages with golang.org/x/text/language.
package i18n
