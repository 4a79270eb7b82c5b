package middleware

import "net/http"

// LimitBody caps how many request body bytes handlers may read. Reads past the limit fail with
// *http.MaxBytesError and the connection is closed after the response.
func LimitBody(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}
