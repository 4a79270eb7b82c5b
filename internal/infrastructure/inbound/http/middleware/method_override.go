package middleware

import (
	"net/http"
	"strings"
)

const (
	methodField          = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

// MethodOverride lets HTML forms reach PUT, PATCH and DELETE routes by posting a _method field
// or sending the X-HTTP-Method-Override header. It wraps the router instead of running inside it
// because gin picks the route before any middleware sees the request.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get(methodOverrideHeader)
			if method == "" && isForm(r) {
				method = r.PostFormValue(methodField)
			}
			switch method = strings.ToUpper(method); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}
