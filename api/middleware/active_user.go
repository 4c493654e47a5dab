package middleware

import (
	"net/http"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// RequireActiveUser rejects authenticated but deactivated accounts. Runs
// after Auth, so a missing flag means the chain is miswired and the request
// is rejected the same way.
func RequireActiveUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !UserActiveFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "inactive user"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
