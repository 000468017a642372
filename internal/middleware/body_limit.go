package middleware

import (
	"net/http"
)

// MaxRequestBodySize caps request bodies at 50MB; machine and exercise
// payloads can carry base64 data-URL images, so the cap is generous.
const MaxRequestBodySize = 50 << 20

func LimitRequestBody() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
