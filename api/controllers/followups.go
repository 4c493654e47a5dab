package controllers

import (
	"net/http"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	"github.com/neocodenexus/vendorx-backend/api/validators"
	"github.com/neocodenexus/vendorx-backend/internal/followups"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// FollowupDraft asks the language model for a followup email draft.
func FollowupDraft(drafter followups.Drafter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if drafter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drafting service unavailable"))
			return
		}

		var payload followups.DraftRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := drafter.DraftFollowup(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}
