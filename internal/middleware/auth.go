package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/borda-dev/borda/internal/utils/jwt"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

// Auth holds dependencies for authentication middleware.
type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid login token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that additionally requires the admin flag.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates user context when a valid token is present but
// never rejects. Decode failure means "no session", not an error.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := a.extractUser(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			if adminOnly && !user.IsAdmin {
				http.Error(w, "Admin only", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractUser reads the login token from the cookie (browser clients) or
// the Authorization header (API clients) and decodes it.
func (a *Auth) extractUser(r *http.Request) (domain.MiniUser, error) {
	var tokenString string
	if cookie, err := r.Cookie("loginToken"); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return domain.MiniUser{}, errNoToken
	}
	return a.jwtService.DecodeToken(tokenString)
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

// GetUserFromContext returns the authenticated user, or nil when the
// request carries no session.
func GetUserFromContext(r *http.Request) *domain.MiniUser {
	user, ok := r.Context().Value(userClaimsKey).(domain.MiniUser)
	if !ok {
		return nil
	}
	return &user
}
