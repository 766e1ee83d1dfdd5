package i18n

import "errors"

var (
	ErrNoCatalogs      = errors.New("i18n.no_catalogs")
	ErrParseCatalog    = errors.New("i18n.parse_catalog_failed")
	ErrInvalidLanguage = errors.New("i18n.invalid_language")
)
