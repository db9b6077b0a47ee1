package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Auth      Auth      `envPrefix:"AUTH_"`
	Admin     Admin     `envPrefix:"ADMIN_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

// Debug reports whether error responses may carry raw failure detail.
func (e Environment) Debug() bool {
	return e.Name != "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Auth struct {
	JWTSecret  string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
}

type Admin struct {
	SessionCookie      string        `env:"SESSION_COOKIE" envDefault:"selvi_admin_session"`
	SessionLifetime    time.Duration `env:"SESSION_LIFETIME" envDefault:"2h"`
	SessionRotateAfter time.Duration `env:"SESSION_ROTATE_AFTER" envDefault:"30m"`
	MaxLoginAttempts   int           `env:"MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LockoutWindow      time.Duration `env:"LOCKOUT_WINDOW" envDefault:"15m"`
}

type RateLimit struct {
	RequestsPerSecond float64 `env:"RPS" envDefault:"5"`
	Burst             int     `env:"BURST" envDefault:"10"`
}
