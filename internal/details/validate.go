package details

import (
	"time"

	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

// ValidateYearEstablished rejects registration years later than the current one.
func ValidateYearEstablished(year int, now time.Time) error {
	if year > now.Year() {
		return pkgerrors.New(pkgerrors.CodeValidation, "year_established cannot be in the future")
	}
	return nil
}

// ValidateLicenseExpiry requires a strictly future license expiry.
func ValidateLicenseExpiry(expiry time.Time, now time.Time) error {
	if !expiry.After(now) {
		return pkgerrors.New(pkgerrors.CodeValidation, "license_expiry_date must be in the future")
	}
	return nil
}

// ValidateInsuranceExpiry requires a strictly future insurance expiry.
func ValidateInsuranceExpiry(expiry time.Time, now time.Time) error {
	if !expiry.After(now) {
		return pkgerrors.New(pkgerrors.CodeValidation, "insurance_expiry_date must be in the future")
	}
	return nil
}
