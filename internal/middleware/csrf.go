package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRF returns middleware protecting form routes against cross-site
// request forgery. filippo.io/csrf/gorilla validates Fetch metadata
// headers instead of cookies, so no token plumbing is needed in
// templates.
func CSRF(authKey []byte, isDev bool, serverAddr string) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	}

	// In development, trust localhost origins for easier testing.
	// The csrf library expects host-only values, not full URLs.
	if isDev {
		opts = append(opts, csrf.TrustedOrigins([]string{
			serverAddr,
			"localhost:10000",
			"127.0.0.1:10000",
		}))
	}

	return csrf.Protect(authKey, opts...)
}

// csrfErrorHandler handles CSRF validation failures.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reasonStr := "unknown"
	if reason := csrf.FailureReason(r); reason != nil {
		reasonStr = reason.Error()
	}
	slog.Error("CSRF validation failed",
		"reason", reasonStr,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
	)
	http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
}
