package csrf

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
)

// maxJSONBody caps how much of a JSON body is buffered to look for the token.
const maxJSONBody = 1 << 20

// extractToken returns the token submitted with r, or "" if there is none.
// Parsing problems count as "no token".
func extractToken(r *http.Request, headerName, fieldName string) string {
	// header wins when configured
	if headerName != "" {
		if h := r.Header.Get(headerName); h != "" {
			return h
		}
	}

	if isJSON(r) {
		if v := jsonField(r, fieldName); v != "" {
			return v
		}
		return r.URL.Query().Get(fieldName)
	}

	// x-www-form-urlencoded, multipart and the query string
	return r.FormValue(fieldName)
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// jsonField reads the top-level string field from a JSON body and puts the
// body back so downstream handlers can decode it again.
func jsonField(r *http.Request, field string) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody+1))
	r.Body = &replayBody{Reader: io.MultiReader(bytes.NewReader(buf), r.Body), Closer: r.Body}
	if err != nil || len(buf) > maxJSONBody {
		return ""
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf, &doc); err != nil {
		return ""
	}
	raw, ok := doc[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

type replayBody struct {
	io.Reader
	io.Closer
}
