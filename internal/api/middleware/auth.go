package middleware

import (
	"context"
	"net/http"

	"github.com/internlink/server/internal/api/problem"
	"github.com/internlink/server/internal/auth"
	"github.com/internlink/server/internal/storage"
)

type contextKey string

const identityKey contextKey = "identity"

func ContextWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the verified caller placed there by the auth
// middleware.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// Authenticate validates the bearer token and stores the decoded identity in
// the request context. It does not touch the database; use RequireRole for
// role-gated routes.
func Authenticate(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromRequest(w, r, manager, env)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRole validates the bearer token, checks the role claim, and then
// re-verifies that the account still exists in the matching table. The token
// alone is never trusted for authorization: a deleted account's token stops
// working immediately, at the cost of one lookup per request.
func RequireRole(manager *auth.JWTManager, accounts storage.AccountRepository, role auth.Role, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromRequest(w, r, manager, env)
			if !ok {
				return
			}

			if identity.Role != role {
				forbidden(w, r, role, env)
				return
			}

			var (
				exists bool
				err    error
			)
			switch role {
			case auth.RoleAdmin:
				exists, err = accounts.AdminExists(r.Context(), identity.ID)
			case auth.RoleStudent:
				exists, err = accounts.StudentExists(r.Context(), identity.ID)
			}
			if err != nil {
				problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, env)
				return
			}
			if !exists {
				forbidden(w, r, role, env)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

func identityFromRequest(w http.ResponseWriter, r *http.Request, manager *auth.JWTManager, env string) (auth.Identity, bool) {
	token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
		return auth.Identity{}, false
	}

	identity, err := manager.Validate(token)
	if err != nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
		return auth.Identity{}, false
	}
	return identity, true
}

func forbidden(w http.ResponseWriter, r *http.Request, role auth.Role, env string) {
	title := "Admin access required"
	if role == auth.RoleStudent {
		title = "Student access required"
	}
	problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, title, nil, env)
}
