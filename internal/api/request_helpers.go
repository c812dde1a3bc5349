package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// pathParam returns the named chi URL parameter, percent-decoded. chi matches
// against r.URL.RawPath when it is set (escaped separators such as "%2F"), and
// against the already decoded r.URL.Path otherwise, so only the former is
// unescaped here.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
