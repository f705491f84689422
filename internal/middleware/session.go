package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/passform/passform-go/internal/token"
)

type contextKey string

const sessionKey contextKey = "formSession"

// FormSession returns middleware that decodes the form-session token from
// the Authorization header and stores the session in the request context.
func FormSession(signer *token.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing form token")
				return
			}

			raw, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || raw == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			sess, err := signer.Parse(raw)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired form token")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the form session from the request context.
func SessionFromContext(ctx context.Context) (token.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(token.Session)
	return sess, ok
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess token.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
