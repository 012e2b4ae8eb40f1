package session

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/JeanGrijp/go-csrf-session/session/memstore"
)

const (
	DefaultCookieName = "session_id"
	DefaultLifetime   = 24 * time.Hour
)

type Config struct {
	// Backend. Defaults to an in-process memstore.
	Store Store

	// Cookie
	CookieName     string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite

	// Lifetime bounds both the store entry and the cookie Max-Age.
	Lifetime time.Duration

	Logger *zap.Logger
}

// Manager loads and commits sessions around HTTP handlers.
type Manager struct {
	cfg Config
}

func NewManager(cfg Config) *Manager {
	if cfg.Store == nil {
		cfg.Store = memstore.New(time.Minute)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.CookieSameSite == 0 {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = DefaultLifetime
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.Logger = cfg.Logger.Named("session")
	return &Manager{cfg: cfg}
}
