// Package csrf provides synchronizer-token CSRF protection for Go net/http
// servers.
//
// How it works
//   - A handler rendering a form calls Protector.Issue. A fresh random token
//     is stored in the requester's server-side session (see package session)
//     and returned for embedding in a hidden field.
//   - Protect checks every request whose method is in Config.Methods
//     (default: POST only). The submitted token is read from the configured
//     field of the form, query string or JSON body and compared with the one
//     in the session. The stored token is deleted before comparing, so each
//     token is accepted at most once.
//   - Both failure modes (ErrMissingToken, ErrTokenMismatch) are answered with
//     an identical 400 Bad Request.
//
// PUT, PATCH and DELETE are not checked unless listed in Config.Methods.
//
// # Configuration
//
// All behavior is driven by Config. Key fields include:
//   - FieldName (default: "csrfToken"), changeable later with SetFieldName
//   - HeaderName (default: disabled)
//   - Methods (default: POST)
//   - SessionKey (default: "__csrf_session_token")
//   - EnforceOriginCheck and AllowedOrigin (empty means use the request host)
//   - TokenBytes (default: 32)
//
// Typical usage
//
//	sm := session.NewManager(session.Config{CookieSecure: true})
//	p := csrf.New(csrf.Config{})
//	http.ListenAndServe(":8080", sm.Middleware(p.Protect(appMux)))
//
// In a handler rendering a form:
//
//	tok, err := p.Issue(r)
//	if err != nil {
//	    // no session middleware in front of this handler
//	}
//	tmpl.Execute(w, map[string]string{"CSRFToken": tok})
//
// For SPAs, expose a small endpoint that issues a token:
//
//	r.Get("/csrf-token", p.TokenHandler().ServeHTTP)
package csrf
