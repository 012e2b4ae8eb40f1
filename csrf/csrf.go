package csrf

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// Protector enforces synchronizer-token CSRF protection on top of a session.
type Protector struct {
	cfg       Config
	manager   *Manager
	methods   map[string]struct{}
	fieldName atomic.Pointer[string]
}

// Protect wraps the given next http.Handler and enforces CSRF protection.
//
// Behavior:
//   - Methods outside Config.Methods (by default everything except POST) go
//     straight to next. The session is not touched.
//   - Protected methods must carry the token issued into the session under
//     the configured field name (or header). The stored token is consumed;
//     on mismatch the ErrorHandler answers 400 and next is not called.
//
// Params:
// - next: downstream handler to be executed after CSRF checks pass.
//
// Returns:
// - An http.Handler that performs the CSRF logic before delegating to next.
func (p *Protector) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.protects(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if err := p.Verify(r); err != nil {
			p.cfg.Logger.Debug("request rejected",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			p.cfg.ErrorHandler(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Issue stores a fresh token in the request's session and returns it for
// embedding in a form. Any token issued earlier for the session stops being valid.
//
// Returns:
// - the token, or ErrNoSession when no session middleware ran before.
func (p *Protector) Issue(r *http.Request) (string, error) {
	s, ok := p.cfg.Sessions(r)
	if !ok {
		return "", ErrNoSession
	}
	tok := p.manager.Issue(s)
	p.cfg.Metrics.observeIssue()
	return tok, nil
}

// Verify checks the token submitted with r against the session and consumes it.
// Handlers that are not behind Protect can call it to enforce the check
// themselves; they must turn a non-nil error into a client error.
func (p *Protector) Verify(r *http.Request) error {
	err := p.verify(r)
	p.cfg.Metrics.observeVerify(err)
	return err
}

func (p *Protector) verify(r *http.Request) error {
	if p.cfg.EnforceOriginCheck {
		if err := validateOriginOrReferer(r, p.cfg.AllowedOrigin); err != nil {
			return err
		}
	}

	candidate := extractToken(r, p.cfg.HeaderName, p.FieldName())

	s, ok := p.cfg.Sessions(r)
	if !ok {
		return fmt.Errorf("%w: %w", ErrMissingToken, ErrNoSession)
	}
	return p.manager.Verify(s, candidate)
}

// FieldName returns the request field currently read for the token.
func (p *Protector) FieldName() string {
	return *p.fieldName.Load()
}

// SetFieldName changes the request field read for the token. It is safe to
// call while requests are being served.
func (p *Protector) SetFieldName(name string) {
	if name == "" {
		name = DefaultFieldName
	}
	p.fieldName.Store(&name)
}

// Manager returns the token manager backing p.
func (p *Protector) Manager() *Manager {
	return p.manager
}

// TokenHandler returns an HTTP handler that issues a token into the session
// and writes it. This is useful for SPAs that fetch the token before submitting.
//
// Returns:
// - http.Handler that responds with the token in the response body (text/plain).
func (p *Protector) TokenHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := p.Issue(r)
		if err != nil {
			p.cfg.Logger.Error("issuing token failed", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Write([]byte(tok))
	})
}

func (p *Protector) protects(method string) bool {
	_, ok := p.methods[method]
	return ok
}
