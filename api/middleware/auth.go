package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	pkgauth "github.com/neocodenexus/vendorx-backend/pkg/auth"
	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// UserSource resolves the account behind a token subject. A nil user or an
// error means the bearer is rejected; stale tokens for deleted accounts must
// not pass.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Auth validates a bearer token, confirms the account still exists, and
// seeds the request context with the authenticated identity.
func Auth(cfg config.JWTConfig, users UserSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			username := claims.Username()
			if username == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
				return
			}

			user, err := users.FindByUsername(r.Context(), username)
			if err != nil || user == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "could not validate credentials"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUsername, user.Username)
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			ctx = context.WithValue(ctx, ctxUserActive, user.IsActive)

			if logg != nil {
				ctx = logg.WithUsername(ctx, user.Username)
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
