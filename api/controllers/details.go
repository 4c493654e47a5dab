package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	"github.com/neocodenexus/vendorx-backend/api/validators"
	"github.com/neocodenexus/vendorx-backend/internal/details"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// The four detail sub-resources share one controller shape: decode, hand to
// the service, write. Each handler set differs only in payload types.

func requireDetailsService(svc details.Service, logg *logger.Logger, w http.ResponseWriter, r *http.Request) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "details service unavailable"))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uint, bool) {
	id, err := validators.ParsePathUint(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return 0, false
	}
	return id, true
}

func BusinessDetailCreate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		var payload details.CreateBusinessDetailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateBusiness(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func BusinessDetailList(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		items, err := svc.ListBusiness(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func BusinessDetailGet(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		detail, err := svc.GetBusiness(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func BusinessDetailUpdate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		var patch details.BusinessDetailPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateBusiness(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func BusinessDetailDelete(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		if err := svc.DeleteBusiness(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func ContactDetailCreate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		var payload details.CreateContactDetailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateContact(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ContactDetailList(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		items, err := svc.ListContact(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ContactDetailGet(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		detail, err := svc.GetContact(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ContactDetailUpdate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		var patch details.ContactDetailPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateContact(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func ContactDetailDelete(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		if err := svc.DeleteContact(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func BankingDetailCreate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		var payload details.CreateBankingDetailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateBanking(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func BankingDetailList(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		items, err := svc.ListBanking(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func BankingDetailGet(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		detail, err := svc.GetBanking(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func BankingDetailUpdate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		var patch details.BankingDetailPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateBanking(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func BankingDetailDelete(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		if err := svc.DeleteBanking(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func ComplianceDetailCreate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		var payload details.CreateComplianceDetailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateCompliance(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ComplianceDetailList(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		items, err := svc.ListCompliance(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ComplianceDetailGet(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		detail, err := svc.GetCompliance(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ComplianceDetailUpdate(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		var patch details.ComplianceDetailPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateCompliance(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func ComplianceDetailDelete(svc details.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireDetailsService(svc, logg, w, r) {
			return
		}
		id, ok := pathID(w, r, logg)
		if !ok {
			return
		}
		if err := svc.DeleteCompliance(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
