package middleware

import "net/http"

// RequestSize limits the size of incoming request bodies via
// http.MaxBytesReader; oversized bodies fail the read with 413 semantics.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
