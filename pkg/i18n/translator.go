package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Translator holds flattened message catalogs keyed by language tag.
type Translator struct {
	messages    map[string]map[string]string
	defaultLang string
	langs       []string
	matcher     language.Matcher
}

// Load reads every file matching pattern in fsys and merges them. The
// default language must be among the loaded ones and is preferred when
// matching fails.
func Load(fsys fs.FS, pattern, defaultLang string) (*Translator, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.Join(ErrParseCatalog, err)
	}
	if len(files) == 0 {
		return nil, ErrNoCatalogs
	}

	messages := make(map[string]map[string]string)
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Join(ErrParseCatalog, err)
		}
		var doc map[string]map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Join(ErrParseCatalog, fmt.Errorf("%s: %w", name, err))
		}
		for lang, tree := range doc {
			if _, err := language.Parse(lang); err != nil {
				return nil, errors.Join(ErrInvalidLanguage, fmt.Errorf("%s: %q", name, lang))
			}
			if messages[lang] == nil {
				messages[lang] = make(map[string]string)
			}
			flatten("", tree, messages[lang])
		}
	}

	if _, ok := messages[defaultLang]; !ok {
		return nil, errors.Join(ErrInvalidLanguage, fmt.Errorf("default language %q has no catalog", defaultLang))
	}

	// The matcher falls back to its first tag, so the default goes first.
	langs := []string{defaultLang}
	for lang := range messages {
		if lang != defaultLang {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs[1:])

	tags := make([]language.Tag, len(langs))
	for i, l := range langs {
		tags[i] = language.MustParse(l)
	}

	return &Translator{
		messages:    messages,
		defaultLang: defaultLang,
		langs:       langs,
		matcher:     language.NewMatcher(tags),
	}, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Languages lists the catalog languages, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.langs)
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// T returns the message for key in lang, falling back to the default
// language and then to the key itself. args are name/value pairs
// substituted into "%{name}" placeholders.
func (t *Translator) T(lang, key string, args ...any) string {
	msg, ok := t.messages[lang][key]
	if !ok {
		msg, ok = t.messages[t.defaultLang][key]
	}
	if !ok {
		msg = key
	}
	if len(args) < 2 {
		return msg
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[fmt.Sprint(args[i])] = fmt.Sprint(args[i+1])
	}
	return paramRegex.ReplaceAllStringFunc(msg, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Has reports whether lang has its own message for key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.messages[lang][key]
	return ok
}

// Match picks the best catalog language for the given preferences, each of
// which may be a tag or a full Accept-Language header value. Earlier
// preferences win. Unparsable input is ignored.
func (t *Translator) Match(prefs ...string) string {
	for _, pref := range prefs {
		pref = strings.TrimSpace(pref)
		if pref == "" || len(pref) > 4096 {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := t.matcher.Match(tags...)
		if conf != language.No {
			return t.langs[idx]
		}
	}
	return t.defaultLang
}
