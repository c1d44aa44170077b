package http

import (
	"context"
	"net/http"
	"time"
	"vending-machine/common/errs"
	"vending-machine/model"
)

const (
	HeaderUserId   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type identityCtxKey struct{}

func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "request timeout")
	}
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-Id, X-User-Role")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityMiddleware trusts the identity headers set by the gateway. A request
// without them is anonymous, a request with a malformed pair is rejected.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderUserId)
		rawRole := r.Header.Get(HeaderUserRole)

		if id == "" && rawRole == "" {
			next.ServeHTTP(w, r)
			return
		}

		role, ok := model.ParseRole(rawRole)
		if id == "" || !ok {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusUnauthorized, Message: "Invalid identity"})
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), model.Identity{ID: id, Role: role})))
	})
}

// RequireRole lets the request through only for an identified caller holding
// role.
func RequireRole(role model.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusUnauthorized, Message: "Unauthorized"})
			return
		}

		if identity.Role != role {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusForbidden, Message: "Forbidden"})
			return
		}

		next(w, r)
	}
}

func identityFromCtx(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(model.Identity)
	return identity, ok
}

func withIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}
