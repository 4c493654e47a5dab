package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	"github.com/neocodenexus/vendorx-backend/api/validators"
	"github.com/neocodenexus/vendorx-backend/internal/followups"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// FollowupRecordCreate logs a followup against a vendor.
func FollowupRecordCreate(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followup service unavailable"))
			return
		}

		var payload followups.CreateRecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateRecord(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// FollowupRecordList returns followups, optionally scoped to one vendor.
// Soft-deleted rows stay hidden unless include_deleted=true.
func FollowupRecordList(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followup service unavailable"))
			return
		}

		filter := followups.ListFilter{}
		if raw := r.URL.Query().Get("vendor_id"); raw != "" {
			vendorID, err := validators.ParsePathUint(raw, "vendor_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter.VendorID = &vendorID
		}
		if raw := r.URL.Query().Get("include_deleted"); raw != "" {
			include, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid include_deleted"))
				return
			}
			filter.IncludeDeleted = include
		}

		items, err := svc.ListRecords(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// FollowupRecordGet returns one live followup record.
func FollowupRecordGet(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followup service unavailable"))
			return
		}

		id, err := validators.ParsePathUint(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetRecord(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// FollowupRecordUpdate applies a partial patch to a live record.
func FollowupRecordUpdate(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followup service unavailable"))
			return
		}

		id, err := validators.ParsePathUint(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload followups.UpdateRecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateRecord(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// FollowupRecordDelete soft-deletes a record; the row stays behind for the
// onboarding status projection.
func FollowupRecordDelete(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followup service unavailable"))
			return
		}

		id, err := validators.ParsePathUint(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRecord(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
