package config

import "time"

// Config collects every tunable of the server. Values are parsed from the
// environment by ardanlabs/conf using the DEALER prefix.
type Config struct {
	Web     Web
	DB      DB
	Cors    Cors
	Session Session
	Auth    Auth
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost:5432"`
	Name       string `conf:"default:dealership"`
	DisableTLS bool   `conf:"default:true"`
}

type Cors struct {
	Origin string `conf:"default:"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

// Auth holds the knobs of the login rate limiter, not any secret material:
// sessions are server side and carry no signing key.
type Auth struct {
	LimitBurst    int           `conf:"default:10"`
	LimitInterval time.Duration `conf:"default:1s"`
	LimitExpiry   time.Duration `conf:"default:1h"`
}
