package controllers

import (
	"net/http"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	"github.com/neocodenexus/vendorx-backend/api/validators"
	"github.com/neocodenexus/vendorx-backend/internal/auth"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// AuthToken exchanges form-encoded credentials for a bearer token.
func AuthToken(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := r.ParseForm(); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form payload"))
			return
		}

		body := auth.LoginRequest{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}
		if err := validators.ValidateStruct(body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, token)
	}
}
