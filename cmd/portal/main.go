// Command portal serves the sign-in portal in front of the auth backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authportal/modules/portal"
	"github.com/dmitrymomot/authportal/pkg/authapi"
	"github.com/dmitrymomot/authportal/pkg/clientip"
	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/credential"
	"github.com/dmitrymomot/authportal/pkg/gate"
	"github.com/dmitrymomot/authportal/pkg/httpserver"
	"github.com/dmitrymomot/authportal/pkg/i18n"
	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/requestid"
	"github.com/dmitrymomot/authportal/pkg/session"
	"github.com/dmitrymomot/authportal/svc/authsession"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfigs()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.app.Env, cfg.app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), visitorExtractor),
	)
	logger.SetAsDefault(log)

	cookies, err := cookie.NewFromConfig(cfg.cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	backends := newStores(cfg, log)
	defer func() {
		if err := backends.Close(); err != nil {
			log.Error("close stores", logger.Error(err))
		}
	}()
	store, err := backends.visitors(ctx)
	if err != nil {
		return err
	}
	limiter, err := backends.limiter(ctx)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	sessions := session.New(store, cookies, cfg.session, log)
	keeper := credential.New(sessions, cookies, log)

	api, err := authapi.New(cfg.authapi, keeper.Token, keeper, authapi.WithLogger(log))
	if err != nil {
		return err
	}

	g := gate.New(cfg.gate)
	provider := authsession.NewProvider(api, keeper,
		authsession.WithLogger(log),
		authsession.WithPaths(cfg.gate.EntryPath, cfg.gate.DashboardPath),
	)

	tr, err := portal.LoadTranslator(cfg.app.DefaultLang)
	if err != nil {
		return fmt.Errorf("message catalogs: %w", err)
	}
	var viewOpts []portal.ViewOption
	switch cfg.app.DatastarScript {
	case "":
	case "none":
		viewOpts = append(viewOpts, portal.WithDatastarScript(""))
	default:
		viewOpts = append(viewOpts, portal.WithDatastarScript(cfg.app.DatastarScript))
	}
	views, err := portal.NewViews(tr, viewOpts...)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	static, err := portal.StaticHandler()
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	svcOpts := []portal.Option{portal.WithLogger(log), portal.WithStatic(static)}
	if limiter != nil {
		svcOpts = append(svcOpts, portal.WithRateLimit(limiter))
	}
	for name, check := range backends.checks {
		svcOpts = append(svcOpts, portal.WithReadinessCheck(name, check))
	}
	svc := portal.NewService(provider, api, cookies, tr, views, svcOpts...)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.New(cfg.clientip).Middleware,
		accessLog(log),
		middleware.Recoverer,
		sessions.Middleware,
		g.Middleware(credential.HasToken, log),
		i18n.Middleware(tr),
	)
	r.Mount("/", svc.Handle())

	server := httpserver.NewFromConfig(cfg.http, httpserver.WithLogger(log))
	if err := server.Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
