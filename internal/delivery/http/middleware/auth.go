package middleware

import (
	"context"
	"net/http"

	"undangan/internal/domain"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "undangan_session"

type contextKey string

const userKey contextKey = "user"

// SetUser returns a context with the authenticated user set.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

func loadUser(r *http.Request, auth domain.AuthService) *domain.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	user, err := auth.UserFromToken(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// WithUser returns a wrapper that resolves the session cookie to a user, if
// any, and sets it in the request context. It never rejects the request.
func WithUser(auth domain.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if user := loadUser(r, auth); user != nil {
				r = r.WithContext(SetUser(r.Context(), user))
			}
			next(w, r)
		}
	}
}

// RequireUser returns a wrapper that resolves the session cookie and redirects
// to the auth page when there is no valid session.
func RequireUser(auth domain.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := loadUser(r, auth)
			if user == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			r = r.WithContext(SetUser(r.Context(), user))
			next(w, r)
		}
	}
}

// RequireAdmin is RequireUser plus a role check; non-admins get 403.
func RequireAdmin(auth domain.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := loadUser(r, auth)
			if user == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			if !user.IsAdmin() {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			r = r.WithContext(SetUser(r.Context(), user))
			next(w, r)
		}
	}
}
