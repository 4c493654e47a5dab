package controllers

import (
	"net/http"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	"github.com/neocodenexus/vendorx-backend/api/validators"
	"github.com/neocodenexus/vendorx-backend/internal/otp"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

func requireOTPService(svc otp.Service, logg *logger.Logger, w http.ResponseWriter, r *http.Request) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable"))
		return false
	}
	return true
}

// OTPIssue generates and emails a one-time password to a vendor address.
func OTPIssue(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOTPService(svc, logg, w, r) {
			return
		}

		var payload otp.IssueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.IssueOTP(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// OTPVerify checks a submitted code; success consumes it.
func OTPVerify(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOTPService(svc, logg, w, r) {
			return
		}

		var payload otp.VerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.VerifyOTP(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// OTPSendMail relays an arbitrary subject and body to a recipient.
func OTPSendMail(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOTPService(svc, logg, w, r) {
			return
		}

		var payload otp.SendMailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// The subject lands in a mail header; normalize it before relay.
		payload.Subject = validators.SanitizeString(payload.Subject, 255)
		payload.Body = validators.SanitizeString(payload.Body, 0)

		result, err := svc.SendMail(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// OTPSendInvitation emails an onboarding invitation link to a vendor.
func OTPSendInvitation(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOTPService(svc, logg, w, r) {
			return
		}

		var payload otp.InvitationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SendInvitation(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
