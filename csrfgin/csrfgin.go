// Package csrfgin adapts the csrf middleware to Gin.
//
// Sessions come from the net/http session middleware, so wrap the Gin engine
// with session.Manager.Middleware rather than registering it as a Gin handler:
//
//	engine := gin.New()
//	engine.Use(csrfgin.Middleware(p))
//	http.ListenAndServe(":8080", sm.Middleware(engine))
package csrfgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JeanGrijp/go-csrf-session/csrf"
)

// Middleware runs p.Protect in front of the remaining Gin handlers.
// Rejected requests abort the chain after the error response is written.
func Middleware(p *csrf.Protector) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		h := p.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			// keep gin context in sync with possibly modified *http.Request
			c.Request = r
			c.Next()
		}))
		h.ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// Issue stores a fresh token in the session of c's request and returns it.
func Issue(p *csrf.Protector, c *gin.Context) (string, error) {
	return p.Issue(c.Request)
}

// Verify checks and consumes the token submitted with c's request.
// On failure it answers 400 and aborts the chain.
func Verify(p *csrf.Protector, c *gin.Context) error {
	if err := p.Verify(c.Request); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return err
	}
	return nil
}

// TokenHandler serves p.TokenHandler from a Gin route.
func TokenHandler(p *csrf.Protector) gin.HandlerFunc {
	return gin.WrapH(p.TokenHandler())
}
