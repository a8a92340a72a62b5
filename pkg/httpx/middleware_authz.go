package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// RoleResolver looks up the role names held by a token subject.
type RoleResolver interface {
	RoleNamesForSubject(ctx context.Context, subject string) ([]string, error)
}

// RoleResolverFunc adapts a function to RoleResolver.
type RoleResolverFunc func(ctx context.Context, subject string) ([]string, error)

func (f RoleResolverFunc) RoleNamesForSubject(ctx context.Context, subject string) ([]string, error) {
	return f(ctx, subject)
}

// RequireAnyRole the caller must hold at least one of the provided roles.
// It must run after AuthnMiddleware. Roles are read from the store on
// every request, so a revoked role takes effect immediately.
func RequireAnyRole(resolver RoleResolver, required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, s := range required {
		want[s] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			// 1. Need a verified subject.
			subject, ok := SubjectFromContext(ctx)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			// 2. Resolve what the subject currently holds.
			have, err := resolver.RoleNamesForSubject(ctx, subject)
			if err != nil {
				log.Error("resolve roles failed", "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "An error occurred.", nil)
				return
			}

			// 3. Ensure at least one required role is present.
			for _, role := range have {
				if _, ok := want[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("missing required role", "required", required, "held", have)
			writeInsufficientRole(w, required...)
		})
	}
}

func writeInsufficientRole(w http.ResponseWriter, required ...string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteError(w, http.StatusForbidden, "forbidden", "You do not have permission to perform this action.", nil)
}
