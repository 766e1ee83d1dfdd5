package i18n

import "context"

type localeContextKey struct{}

func SetLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// GetLocale returns the request language, or "" when none was set.
func GetLocale(ctx context.Context) string {
	lang, _ := ctx.Value(localeContextKey{}).(string)
	return lang
}
