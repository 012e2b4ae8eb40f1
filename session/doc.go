// Package session provides server-side sessions for net/http applications.
//
// A session is a small string-to-string map identified by an opaque id that
// travels in a cookie. The data itself lives in a Store (see the memstore and
// redisstore subpackages). Manager.Middleware loads the session for each
// request, exposes it through FromRequest/FromContext and commits any changes
// before the first byte of the response is written.
//
// Typical usage
//
//	sm := session.NewManager(session.Config{
//		Store:        redisstore.New(rdb, "session"),
//		CookieSecure: true,
//	})
//	http.ListenAndServe(":8080", sm.Middleware(mux))
//
// Changes made after the handler has started writing the response are not
// persisted, so set session values before writing headers or body.
package session
