package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/kalichetiAravindreddy/image-search/internal/api"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
)

type contextKey string

const (
	UserKey         contextKey = "user"
	userRecorderKey contextKey = "user_recorder"
)

// userRecorder is a slot filled by Session once the user is resolved, so
// middleware that wrapped the request earlier in the chain can read the
// identity after the handler returns. Context values only flow inward;
// the pointer carries the user back out.
type userRecorder struct {
	user *domain.User
}

// RecordUser installs the slot. It must run before Session in the chain.
func RecordUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userRecorderKey, &userRecorder{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolvedUser returns the authenticated user visible from ctx: directly
// when Session ran on this context, via the recorder slot otherwise.
func resolvedUser(ctx context.Context) *domain.User {
	if user := GetUser(ctx); user != nil {
		return user
	}
	if rec, ok := ctx.Value(userRecorderKey).(*userRecorder); ok {
		return rec.user
	}
	return nil
}

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "imgsearch_session"

// SessionValidator resolves an opaque session token to a user.
type SessionValidator interface {
	UserForToken(ctx context.Context, token string) (*domain.User, error)
}

// Session resolves the session cookie, if any, and attaches the user to
// the request context. It never rejects: routes that need a user wrap
// RequireUser on top, and handlers receive identity explicitly.
func Session(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := validator.UserForToken(r.Context(), cookie.Value)
			if err != nil {
				// Expired or unknown sessions behave like no session at all.
				var domainErr *domain.DomainError
				if errors.As(err, &domainErr) && domainErr.Code != domain.ErrCodeStore {
					next.ServeHTTP(w, r)
					return
				}
				api.HandleError(w, err)
				return
			}

			if rec, ok := r.Context().Value(userRecorderKey).(*userRecorder); ok {
				rec.user = user
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that did not resolve to an authenticated user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			api.HandleError(w, domain.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated user from context, or nil.
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserKey).(*domain.User)
	return user
}

// WithUser attaches a user to the context. Used by tests and the
// callback handler.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
