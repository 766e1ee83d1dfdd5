package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authportal/binder"
	"github.com/dmitrymomot/authportal/handler"
	"github.com/dmitrymomot/authportal/pkg/authapi"
	"github.com/dmitrymomot/authportal/pkg/clientip"
	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/httpserver"
	"github.com/dmitrymomot/authportal/pkg/i18n"
	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/ratelimiter"
	"github.com/dmitrymomot/authportal/pkg/validator"
	"github.com/dmitrymomot/authportal/svc/authsession"
)

const (
	tabLogin    = "login"
	tabRegister = "register"

	flashNotice = "notice"
	apiPrefix   = "/api"
)

// Backend is the part of the auth API client the portal calls directly.
type Backend interface {
	CheckSession(ctx context.Context) authapi.Result
	Proxy(prefix string) http.Handler
}

type Service struct {
	provider     *authsession.Provider
	backend      Backend
	cookies      *cookie.Manager
	tr           *i18n.Translator
	views        *Views
	static       http.Handler
	limiter      *ratelimiter.Limiter
	checks       map[string]httpserver.Check
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReadinessCheck adds a dependency probed by /readyz.
func WithReadinessCheck(name string, check httpserver.Check) Option {
	return func(s *Service) {
		s.checks[name] = check
	}
}

// WithStatic serves h under /static/.
func WithStatic(h http.Handler) Option {
	return func(s *Service) {
		s.static = h
	}
}

// WithRateLimit throttles login and registration attempts per client IP
// and form.
func WithRateLimit(l *ratelimiter.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

func NewService(
	provider *authsession.Provider,
	backend Backend,
	cookies *cookie.Manager,
	tr *i18n.Translator,
	views *Views,
	opts ...Option,
) *Service {
	s := &Service{
		provider: provider,
		backend:  backend,
		cookies:  cookies,
		tr:       tr,
		views:    views,
		checks:   make(map[string]httpserver.Check),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("portal"))
	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
		Translate:  func(ctx context.Context, key string) string { return s.t(ctx, key) },
	})
	return s
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(s.log, s.checks))
	if s.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", s.static))
	}
	r.Mount(apiPrefix, s.backend.Proxy(apiPrefix))

	r.Group(func(r chi.Router) {
		r.Use(s.provider.Middleware)

		r.Get("/", handler.Wrap(s.entry,
			handler.WithBinders[handler.Context, EntryRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, EntryRequest](s.errorHandler),
		))

		r.Route("/auth", func(auth chi.Router) {
			throttled := auth.With(s.throttle)
			throttled.Post("/login", handler.Wrap(s.login,
				handler.WithBinders[handler.Context, LoginRequest](binder.Form()),
				handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
			))
			throttled.Post("/register", handler.Wrap(s.register,
				handler.WithBinders[handler.Context, RegisterRequest](binder.Form()),
				handler.WithErrorHandler[handler.Context, RegisterRequest](s.errorHandler),
			))
			auth.Post("/logout", handler.Wrap(s.logout,
				handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
			))
			auth.Get("/session", handler.Wrap(s.session,
				handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
			))
		})

		r.With(authsession.Guard(s.provider.EntryPath(), s.loading(), authsession.WithGuardLogger(s.log))).
			Get("/dashboard", handler.Wrap(s.dashboard,
				handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
			))
	})

	return r
}

func (s *Service) entry(ctx handler.Context, req EntryRequest) handler.Response {
	tab := tabLogin
	if req.Tab == tabRegister {
		tab = tabRegister
	}

	var notice string
	var noticeKey string
	if err := s.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashNotice, &noticeKey); err == nil {
		notice = s.t(ctx, noticeKey)
	}

	return handler.Templ(s.views.EntryPage(EntryPageParams{Tab: tab, Notice: notice}))
}

func (s *Service) login(ctx handler.Context, req LoginRequest) handler.Response {
	req.sanitize()
	form := LoginFormParams{Email: req.Email}

	if err := req.validate(); err != nil {
		form.FieldErrors = s.fieldErrors(ctx, err)
		return s.loginForm(http.StatusUnprocessableEntity, form)
	}

	out := s.provider.Login(ctx, s.state(ctx), ctx.ResponseWriter(), req.Email, req.Password)
	if !out.Success {
		form.Error = s.message(ctx, out.Message, out.MessageKey)
		return s.loginForm(http.StatusUnauthorized, form)
	}
	return handler.Redirect(out.Redirect)
}

func (s *Service) loginForm(status int, form LoginFormParams) handler.Response {
	return handler.TemplPartialStatus(status,
		s.views.LoginForm(form),
		s.views.EntryPage(EntryPageParams{Tab: tabLogin, Login: form}),
		handler.WithTarget("#login-form"),
	)
}

func (s *Service) register(ctx handler.Context, req RegisterRequest) handler.Response {
	req.sanitize()
	form := RegisterFormParams{Name: req.Name, Nickname: req.Nickname, Email: req.Email}

	if err := req.validate(); err != nil {
		form.FieldErrors = s.fieldErrors(ctx, err)
		return s.registerForm(http.StatusUnprocessableEntity, form)
	}

	out := s.provider.Register(ctx, s.state(ctx), req.payload())
	if !out.Success {
		form.Error = s.message(ctx, out.Message, out.MessageKey)
		return s.registerForm(http.StatusBadRequest, form)
	}

	if err := s.cookies.SetFlash(ctx.ResponseWriter(), flashNotice, "register.success"); err != nil {
		s.log.WarnContext(ctx, "set registration notice", logger.Error(err))
	}
	return handler.Redirect(s.provider.EntryPath())
}

func (s *Service) registerForm(status int, form RegisterFormParams) handler.Response {
	return handler.TemplPartialStatus(status,
		s.views.RegisterForm(form),
		s.views.EntryPage(EntryPageParams{Tab: tabRegister, Register: form}),
		handler.WithTarget("#register-form"),
	)
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	out := s.provider.Logout(ctx, s.state(ctx), ctx.ResponseWriter())
	return handler.Redirect(out.Redirect)
}

func (s *Service) dashboard(ctx handler.Context, _ struct{}) handler.Response {
	profile := s.state(ctx).Profile()
	return handler.Templ(s.views.Dashboard(DashboardParams{
		Name:   displayName(profile),
		Fields: profileFields(profile),
	}))
}

// session answers the backend's view of the current token for page
// scripts.
func (s *Service) session(ctx handler.Context, _ struct{}) handler.Response {
	res := s.backend.CheckSession(ctx)
	if !res.Success {
		return handler.JSONWithStatus(http.StatusUnauthorized, res)
	}
	return handler.JSON(res)
}

func (s *Service) throttle(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
	})
	return ratelimiter.Middleware(s.limiter,
		ratelimiter.Composite(clientip.Key, ratelimiter.Path),
		ratelimiter.WithLimitedHandler(limited),
		ratelimiter.WithLogger(s.log),
	)(next)
}

func (s *Service) loading() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := handler.Templ(s.views.Loading()).Render(w, r); err != nil {
			s.errorHandler(handler.NewContext(w, r), err)
		}
	})
}

// state returns the hydrated request state, hydrating on the spot when the
// middleware did not run.
func (s *Service) state(ctx handler.Context) *authsession.State {
	if st := authsession.FromContext(ctx); st != nil {
		return st
	}
	return s.provider.Hydrate(ctx, ctx.ResponseWriter(), ctx.Request())
}

func (s *Service) t(ctx context.Context, key string, args ...any) string {
	return s.tr.T(i18n.GetLocale(ctx), key, args...)
}

// message translates fixed messages by key. Server-supplied messages have
// no catalog entry and pass through verbatim.
func (s *Service) message(ctx context.Context, msg, key string) string {
	if key != "" && s.tr.Has(s.tr.DefaultLanguage(), key) {
		return s.t(ctx, key)
	}
	return msg
}

// fieldErrors keeps the first error per field.
func (s *Service) fieldErrors(ctx context.Context, err error) map[string]string {
	errs := validator.ExtractValidationErrors(err)
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := out[e.Field]; ok {
			continue
		}
		args := []any{"field", s.t(ctx, "fields."+e.Field)}
		for k, v := range e.TranslationValues {
			if k != "field" {
				args = append(args, k, v)
			}
		}
		out[e.Field] = s.t(ctx, e.TranslationKey, args...)
	}
	return out
}

func displayName(profile map[string]any) string {
	for _, key := range []string{"nickname", "name", "email"} {
		if v, ok := profile[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func profileFields(profile map[string]any) []ProfileField {
	fields := make([]ProfileField, 0, len(profile))
	for _, k := range slices.Sorted(maps.Keys(profile)) {
		var value string
		switch v := profile[k].(type) {
		case nil:
			continue
		case string:
			value = v
		case map[string]any, []any:
			b, _ := json.Marshal(v)
			value = string(b)
		default:
			value = fmt.Sprint(v)
		}
		fields = append(fields, ProfileField{Key: k, Value: value})
	}
	return fields
}
