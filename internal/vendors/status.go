package vendors

import (
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

// Onboarding status labels derived from vendor status and followup history.
const (
	OnboardingWaitingForMissingData    = "Waiting for missing data"
	OnboardingWaitingForVendorResponse = "Waiting for vendor response"
	OnboardingValidated                = "Validated"
	OnboardingDenied                   = "Denied"
	OnboardingRequested                = "Requested"
)

// OnboardingStatus projects the pipeline position from the vendor status and
// its followup history. Soft-deleted followups still count: a followup was
// raised against the vendor even if an operator later hid it from listings.
func OnboardingStatus(vendor *models.Vendor) string {
	if vendor == nil {
		return OnboardingRequested
	}
	switch vendor.Status {
	case enums.VendorStatusActive:
		if len(vendor.FollowupRecords) > 0 {
			return OnboardingWaitingForMissingData
		}
		return OnboardingWaitingForVendorResponse
	case enums.VendorStatusCompleted:
		return OnboardingValidated
	case enums.VendorStatusDiscarded:
		return OnboardingDenied
	default:
		return OnboardingRequested
	}
}
