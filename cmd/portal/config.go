package main

import (
	"github.com/dmitrymomot/authportal/pkg/authapi"
	"github.com/dmitrymomot/authportal/pkg/clientip"
	"github.com/dmitrymomot/authportal/pkg/config"
	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/gate"
	"github.com/dmitrymomot/authportal/pkg/httpserver"
	"github.com/dmitrymomot/authportal/pkg/ratelimiter"
	"github.com/dmitrymomot/authportal/pkg/redis"
	"github.com/dmitrymomot/authportal/pkg/session"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Name        string `env:"APP_NAME" envDefault:"authportal"`
	DefaultLang string `env:"DEFAULT_LANG" envDefault:"pt-BR"`

	// DatastarScript overrides the DataStar bundle URL, "none" drops it.
	DatastarScript string `env:"DATASTAR_SCRIPT_URL"`
}

type configs struct {
	app       appConfig
	http      httpserver.Config
	cookie    cookie.Config
	session   session.Config
	redis     redis.Config
	authapi   authapi.Config
	gate      gate.Config
	clientip  clientip.Config
	ratelimit ratelimiter.Config
}

func loadConfigs() (configs, error) {
	var c configs
	for _, load := range []func() error{
		func() error { return config.Load(&c.app) },
		func() error { return config.Load(&c.http) },
		func() error { return config.Load(&c.cookie) },
		func() error { return config.Load(&c.session) },
		func() error { return config.Load(&c.redis) },
		func() error { return config.Load(&c.authapi) },
		func() error { return config.Load(&c.gate) },
		func() error { return config.Load(&c.clientip) },
		func() error { return config.Load(&c.ratelimit) },
	} {
		if err := load(); err != nil {
			return configs{}, err
		}
	}
	return c, nil
}
