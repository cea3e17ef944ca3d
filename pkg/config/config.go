// Package config holds the application configuration, loaded from the
// environment with envconfig.
package config

import "time"

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[finbook]"`
}

type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
