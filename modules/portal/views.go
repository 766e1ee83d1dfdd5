package portal

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authportal/handler"
	"github.com/dmitrymomot/authportal/pkg/i18n"
)

// DefaultDatastarScript is the DataStar client bundle loaded by every page.
const DefaultDatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

type LoginFormParams struct {
	Email       string
	Error       string
	FieldErrors map[string]string
}

type RegisterFormParams struct {
	Name        string
	Nickname    string
	Email       string
	Error       string
	FieldErrors map[string]string
}

type EntryPageParams struct {
	Tab      string
	Notice   string
	Login    LoginFormParams
	Register RegisterFormParams
}

type ProfileField struct {
	Key   string
	Value string
}

type DashboardParams struct {
	Name   string
	Fields []ProfileField
}

// Views renders portal pages and fragments.
type Views struct {
	EntryPage    func(EntryPageParams) templ.Component
	LoginForm    func(LoginFormParams) templ.Component
	RegisterForm func(RegisterFormParams) templ.Component
	Dashboard    func(DashboardParams) templ.Component
	Loading      func() templ.Component
	ErrorPage    func(handler.ErrorPageParams) templ.Component
	ErrorToast   func(handler.ErrorToastParams) templ.Component
}

type ViewOption func(*viewSet)

// WithDatastarScript overrides the DataStar bundle URL. An empty url
// renders pages without it.
func WithDatastarScript(url string) ViewOption {
	return func(v *viewSet) {
		v.script = url
	}
}

type viewSet struct {
	base   *template.Template
	tr     *i18n.Translator
	script string
}

// NewViews parses the embedded templates. Messages are translated into the
// request language at render time.
func NewViews(tr *i18n.Translator, opts ...ViewOption) (*Views, error) {
	vs := &viewSet{tr: tr, script: DefaultDatastarScript}
	for _, opt := range opts {
		opt(vs)
	}

	base, err := template.New("portal").Funcs(vs.funcs("")).ParseFS(templateFiles, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	vs.base = base

	return &Views{
		EntryPage:    func(p EntryPageParams) templ.Component { return vs.component("entry_page", p) },
		LoginForm:    func(p LoginFormParams) templ.Component { return vs.component("login_form", p) },
		RegisterForm: func(p RegisterFormParams) templ.Component { return vs.component("register_form", p) },
		Dashboard:    func(p DashboardParams) templ.Component { return vs.component("dashboard_page", p) },
		Loading:      func() templ.Component { return vs.component("loading_page", nil) },
		ErrorPage:    func(p handler.ErrorPageParams) templ.Component { return vs.component("error_page", p) },
		ErrorToast:   func(p handler.ErrorToastParams) templ.Component { return vs.component("error_toast", p) },
	}, nil
}

func (vs *viewSet) funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t": func(key string, args ...any) string {
			return vs.tr.T(lang, key, args...)
		},
		"lang": func() string {
			if lang == "" {
				return vs.tr.DefaultLanguage()
			}
			return lang
		},
		"datastar": func() string { return vs.script },
	}
}

// component binds the request language to a fresh copy of the template set.
// The base set is never executed, so Clone cannot fail on it.
func (vs *viewSet) component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		set, err := vs.base.Clone()
		if err != nil {
			return err
		}
		set.Funcs(vs.funcs(i18n.GetLocale(ctx)))
		return templ.FromGoHTML(set.Lookup(name), data).Render(ctx, w)
	})
}
