package csrf

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/JeanGrijp/go-csrf-session/session"
)

const (
	// DefaultFieldName is the request field carrying the submitted token.
	DefaultFieldName = "csrfToken"
	// DefaultSessionKey is the reserved session key holding the live token.
	DefaultSessionKey = "__csrf_session_token"
	// DefaultTokenBytes is the amount of randomness in a token.
	DefaultTokenBytes = 32
)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// SessionFunc returns the session bound to r.
type SessionFunc func(r *http.Request) (Session, bool)

type Config struct {
	// Token transport
	FieldName  string // form field, query parameter or JSON key; default "csrfToken"
	HeaderName string // optional, e.g. "X-CSRF-Token"; checked before the body when set

	// Methods that require a valid token. Defaults to POST only.
	Methods []string

	// Session storage
	SessionKey string
	Sessions   SessionFunc // defaults to session.FromRequest

	// Extra security
	EnforceOriginCheck bool
	AllowedOrigin      string // if empty, uses r.Host

	// Entropy
	TokenBytes int

	ErrorHandler ErrorHandler
	Logger       *zap.Logger
	Metrics      *Metrics // optional
}

func New(cfg Config) *Protector {
	if cfg.FieldName == "" {
		cfg.FieldName = DefaultFieldName
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{http.MethodPost}
	}
	if cfg.SessionKey == "" {
		cfg.SessionKey = DefaultSessionKey
	}
	if cfg.Sessions == nil {
		cfg.Sessions = requestSession
	}
	if cfg.TokenBytes <= 0 {
		cfg.TokenBytes = DefaultTokenBytes
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = badRequest
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.Logger = cfg.Logger.Named("csrf")

	p := &Protector{
		cfg:     cfg,
		manager: NewManager(cfg.SessionKey, cfg.TokenBytes),
		methods: make(map[string]struct{}, len(cfg.Methods)),
	}
	for _, m := range cfg.Methods {
		p.methods[strings.ToUpper(m)] = struct{}{}
	}
	p.SetFieldName(cfg.FieldName)
	return p
}

func requestSession(r *http.Request) (Session, bool) {
	s, ok := session.FromRequest(r)
	if !ok {
		return nil, false
	}
	return s, true
}

// badRequest answers 400 without saying which check failed.
func badRequest(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}
