package i18n

import "net/http"

const (
	QueryParam = "lang"
	CookieName = "lang"
)

// Middleware resolves the request language and stores it in the context.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var fromCookie string
			if c, err := r.Cookie(CookieName); err == nil {
				fromCookie = c.Value
			}
			lang := t.Match(
				r.URL.Query().Get(QueryParam),
				fromCookie,
				r.Header.Get("Accept-Language"),
			)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
