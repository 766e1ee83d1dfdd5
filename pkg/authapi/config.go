package authapi

import "time"

type Config struct {
	BaseURL string        `env:"AUTH_API_URL" envDefault:"http://localhost:4001"`
	Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"10s"`
}
