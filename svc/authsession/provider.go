package authsession

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authportal/pkg/authapi"
	"github.com/dmitrymomot/authportal/pkg/credential"
	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/sanitizer"
)

// API is the part of the backend client the provider uses.
type API interface {
	Login(ctx context.Context, email, password string) authapi.Result
	Register(ctx context.Context, req authapi.RegisterRequest) authapi.Result
	Logout(ctx context.Context, w http.ResponseWriter) authapi.Result
}

// Credentials is the persisted credential.
type Credentials interface {
	Read(ctx context.Context, r *http.Request) (credential.Snapshot, error)
	Persist(ctx context.Context, w http.ResponseWriter, token string, user json.RawMessage) error
	Clear(ctx context.Context, w http.ResponseWriter) error
}

// Outcome is what a Provider operation reports to the page. Redirect is
// the path to navigate to, if any.
type Outcome struct {
	Success    bool
	Message    string
	MessageKey string
	Data       json.RawMessage
	Redirect   string
}

type Provider struct {
	api           API
	creds         Credentials
	log           *slog.Logger
	entryPath     string
	dashboardPath string
}

type Option func(*Provider)

func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithPaths overrides the entry ("/") and dashboard ("/dashboard") paths.
func WithPaths(entry, dashboard string) Option {
	return func(p *Provider) {
		if entry != "" {
			p.entryPath = entry
		}
		if dashboard != "" {
			p.dashboardPath = dashboard
		}
	}
}

func NewProvider(api API, creds Credentials, opts ...Option) *Provider {
	p := &Provider{
		api:           api,
		creds:         creds,
		log:           logger.Discard(),
		entryPath:     "/",
		dashboardPath: "/dashboard",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Component("authsession"))
	return p
}

func (p *Provider) EntryPath() string     { return p.entryPath }
func (p *Provider) DashboardPath() string { return p.dashboardPath }

// Hydrate builds the request State. The visitor is authenticated when the
// token cookie matches the stored token and the stored user parses as a
// JSON record. A token cookie without that is an implicit logout: both
// mediums are cleared.
func (p *Provider) Hydrate(ctx context.Context, w http.ResponseWriter, r *http.Request) *State {
	st := NewState()
	defer st.setLoading(false)

	if !credential.HasToken(r) {
		return st
	}

	// From here on the gate treats the visitor as signed in, so every path
	// that does not end authenticated must clear the cookie, or the gate
	// and the guard redirect into each other.
	snap, err := p.creds.Read(ctx, r)
	if err != nil {
		p.signOut(ctx, w, "credential_unreadable", err)
		return st
	}
	if snap.StoredUser == "" || snap.StoredToken != snap.CookieToken {
		p.signOut(ctx, w, "credential_mismatch", nil)
		return st
	}

	var user json.RawMessage
	if err := json.Unmarshal([]byte(snap.StoredUser), &user); err != nil || string(user) == "null" {
		p.signOut(ctx, w, "malformed_user", err)
		return st
	}
	st.setUser(user)
	return st
}

// signOut is the implicit logout of a failed hydration. It is logged,
// never reported to the visitor.
func (p *Provider) signOut(ctx context.Context, w http.ResponseWriter, reason string, cause error) {
	p.log.WarnContext(ctx, "persisted credential unusable, signing out",
		logger.Event("hydrate_recovery"),
		slog.String("reason", reason),
		logger.Error(cause),
	)
	if err := p.creds.Clear(ctx, w); err != nil {
		p.log.ErrorContext(ctx, "clear persisted credential", logger.Error(err))
	}
}

// Middleware hydrates the State once per request and puts it into the
// request context.
func (p *Provider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := p.Hydrate(r.Context(), w, r)
		next.ServeHTTP(w, r.WithContext(WithState(r.Context(), st)))
	})
}

// Login signs the visitor in. st is changed only when the backend returns
// both a token and a user record and both are persisted.
func (p *Provider) Login(ctx context.Context, st *State, w http.ResponseWriter, email, password string) (out Outcome) {
	st.setLoading(true)
	defer st.setLoading(false)
	defer func() {
		if rec := recover(); rec != nil {
			p.log.ErrorContext(ctx, "login panicked",
				logger.Error(fmt.Errorf("%v", rec)),
				logger.Email(sanitizer.MaskEmail(email)),
			)
			out = Outcome{Message: MsgLoginUnexpected, MessageKey: KeyLoginUnexpected}
		}
	}()

	res := p.api.Login(ctx, email, password)
	data, ok := res.LoginData()
	if !res.Success || !ok || data.Token == "" || !data.HasUser() {
		if res.Message != "" {
			return Outcome{Message: res.Message, MessageKey: res.MessageKey}
		}
		return Outcome{Message: MsgLoginFailed, MessageKey: KeyLoginFailed}
	}

	if err := p.creds.Persist(ctx, w, data.Token, data.UserExists); err != nil {
		p.log.ErrorContext(ctx, "persist credential", logger.Error(err))
		if cerr := p.creds.Clear(ctx, w); cerr != nil {
			p.log.ErrorContext(ctx, "roll back partial credential", logger.Error(cerr))
		}
		return Outcome{Message: MsgLoginUnexpected, MessageKey: KeyLoginUnexpected}
	}

	st.setUser(data.UserExists)
	p.log.InfoContext(ctx, "signed in",
		logger.Event("login"),
		logger.Email(sanitizer.MaskEmail(email)),
	)
	return Outcome{Success: true, Redirect: p.dashboardPath}
}

// Register creates an account. It never touches st's user or the persisted
// credential, whatever the backend returns.
func (p *Provider) Register(ctx context.Context, st *State, req authapi.RegisterRequest) (out Outcome) {
	st.setLoading(true)
	defer st.setLoading(false)
	defer func() {
		if rec := recover(); rec != nil {
			p.log.ErrorContext(ctx, "register panicked", logger.Error(fmt.Errorf("%v", rec)))
			out = Outcome{Message: MsgRegisterUnexpected, MessageKey: KeyRegisterUnexpected}
		}
	}()

	res := p.api.Register(ctx, req)
	if res.Success {
		return Outcome{Success: true, Data: res.Data}
	}
	if res.Message != "" {
		return Outcome{Message: res.Message, MessageKey: res.MessageKey}
	}
	return Outcome{Message: MsgRegisterFailed, MessageKey: KeyRegisterFailed}
}

// Logout clears both mediums and the in-memory user. Calling it while
// signed out is harmless and still redirects to the entry path.
func (p *Provider) Logout(ctx context.Context, st *State, w http.ResponseWriter) Outcome {
	p.api.Logout(ctx, w)
	st.setUser(nil)
	return Outcome{Success: true, Redirect: p.entryPath}
}
