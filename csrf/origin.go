package csrf

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrNoOrigin  = errors.New("csrf: no origin or referer")
	ErrBadOrigin = errors.New("csrf: cross-site origin")
)

// validateOriginOrReferer checks whether the request is same-site according to
// the allowed host. When allowed is empty, it falls back to r.Host.
// Origin is preferred; Referer is only consulted when Origin is absent.
func validateOriginOrReferer(r *http.Request, allowed string) error {
	host := allowed
	if host == "" {
		host = r.Host
	}

	origin := r.Header.Get("Origin")
	ref := r.Header.Get("Referer")

	switch {
	case origin == "" && ref == "":
		return ErrNoOrigin
	case origin != "":
		if !sameSite(origin, host) {
			return ErrBadOrigin
		}
	case !sameSite(ref, host):
		return ErrBadOrigin
	}
	return nil
}

// sameSite reports whether the host of originOrRef equals allowedHost
// (port included, case-insensitive).
func sameSite(originOrRef, allowedHost string) bool {
	u, err := url.Parse(originOrRef)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, allowedHost)
}
