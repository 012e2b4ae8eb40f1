package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JeanGrijp/go-csrf-session/internal/random"
)

const idBytes = 32

// Middleware loads the request's session, makes it available through
// FromRequest and commits modifications before the response is written.
//
// A store failure while loading answers 500 without calling next.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		s, err := m.load(ctx, r)
		if err != nil {
			m.cfg.Logger.Error("loading session failed", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		cw := &commitWriter{
			ResponseWriter: w,
			commit: func() error {
				err := m.commit(ctx, w, s)
				if err != nil {
					m.cfg.Logger.Error("committing session failed", zap.String("path", r.URL.Path), zap.Error(err))
				}
				return err
			},
		}
		next.ServeHTTP(cw, r.WithContext(NewContext(ctx, s)))

		// nothing was written: commit now and still get a chance to report failure
		if cw.commitOnce() && cw.err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// load returns the stored session named by the request cookie, or a fresh
// one when the cookie is absent, unknown, expired or undecodable.
func (m *Manager) load(ctx context.Context, r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return New(), nil
	}

	b, found, err := m.cfg.Store.Find(ctx, c.Value)
	if err != nil {
		return nil, fmt.Errorf("session: find: %w", err)
	}
	if !found {
		return New(), nil
	}

	values, err := decode(b)
	if err != nil {
		m.cfg.Logger.Warn("discarding undecodable session", zap.Error(err))
		return New(), nil
	}
	return restore(c.Value, values), nil
}

// commit persists s if it changed. Empty sessions are removed from the store
// and their cookie is expired.
func (m *Manager) commit(ctx context.Context, w http.ResponseWriter, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.modified {
		return nil
	}

	if len(s.values) == 0 {
		if s.persisted {
			if err := m.cfg.Store.Delete(ctx, s.id); err != nil {
				return fmt.Errorf("session: delete: %w", err)
			}
			http.SetCookie(w, m.cookie("", -1))
		}
		s.modified = false
		s.persisted = false
		return nil
	}

	if s.id == "" {
		id, err := random.URLString(idBytes)
		if err != nil {
			return fmt.Errorf("session: generating id: %w", err)
		}
		s.id = id
	}

	b, err := encode(s.values)
	if err != nil {
		return err
	}
	if err := m.cfg.Store.Commit(ctx, s.id, b, time.Now().Add(m.cfg.Lifetime)); err != nil {
		return fmt.Errorf("session: commit: %w", err)
	}

	http.SetCookie(w, m.cookie(s.id, int(m.cfg.Lifetime/time.Second)))
	s.modified = false
	s.persisted = true
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		MaxAge:   maxAge,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: m.cfg.CookieSameSite,
	}
}

// commitWriter commits the session right before the response headers go out,
// since Set-Cookie cannot be added afterwards.
type commitWriter struct {
	http.ResponseWriter
	commit func() error

	once sync.Once
	err  error
}

// commitOnce runs commit unless it already ran and reports whether this call ran it.
func (cw *commitWriter) commitOnce() bool {
	ran := false
	cw.once.Do(func() {
		ran = true
		cw.err = cw.commit()
	})
	return ran
}

func (cw *commitWriter) WriteHeader(code int) {
	cw.commitOnce()
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *commitWriter) Write(b []byte) (int, error) {
	cw.commitOnce()
	return cw.ResponseWriter.Write(b)
}

func (cw *commitWriter) Flush() {
	cw.commitOnce()
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *commitWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
