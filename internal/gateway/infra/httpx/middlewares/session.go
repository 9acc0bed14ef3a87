package middlewares

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
)

// SessionCookie is the cookie the auth service sets on login.
const SessionCookie = "session_id"

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const sessionContextKey contextKey = "session"

// Session resolves the session cookie into an entity.Session and stores it
// in the request context. Requests without a valid session get a 401; the
// checkout flow is only reachable for signed-in customers.
func Session(store ports.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				slog.ErrorContext(r.Context(), "session lookup failed", "error", err)
				unauthorized(w)
				return
			}
			if sess == nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, *sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by the middleware.
func SessionFromContext(ctx context.Context) (entity.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(entity.Session)
	return sess, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại",
	})
}
