package handlers

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// CORSMiddleware allows all origins on every response and short-circuits
// preflight requests.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BasicAuthMiddleware gates every route behind a single shared
// credential pair. The password is configured as a bcrypt hash. When
// either value is empty the gate is disabled and requests pass through.
func BasicAuthMiddleware(user, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if user == "" || passwordHash == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqUser, reqPassword, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(reqUser), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(reqPassword)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="inventario"`)
				writeError(w, http.StatusUnauthorized, "Credenciales inválidas", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
