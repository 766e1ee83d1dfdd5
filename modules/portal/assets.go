package portal

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/CAFxX/httpcompression"

	"github.com/dmitrymomot/authportal/pkg/i18n"
)

var (
	//go:embed locales/*.yaml
	localeFiles embed.FS

	//go:embed templates/*.gohtml
	templateFiles embed.FS

	//go:embed static
	staticFiles embed.FS
)

// LoadTranslator loads the embedded message catalogs.
func LoadTranslator(defaultLang string) (*i18n.Translator, error) {
	return i18n.Load(localeFiles, "locales/*.yaml", defaultLang)
}

// StaticHandler serves the embedded stylesheet, compressed when the client
// accepts it. Mount it under /static/.
func StaticHandler() (http.Handler, error) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}
	return compress(http.FileServerFS(sub)), nil
}
