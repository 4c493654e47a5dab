package vendors

import (
	"time"

	"github.com/neocodenexus/vendorx-backend/internal/details"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// CreateVendorRequest is the full onboarding aggregate: the vendor row plus
// its four mandatory detail records, written in one transaction.
type CreateVendorRequest struct {
	VendorName     string  `json:"vendor_name" validate:"required,max=255"`
	VendorEmail    string  `json:"vendor_email" validate:"required,email"`
	VendorCategory *string `json:"vendor_category" validate:"omitempty,max=100"`
	Status         *string `json:"status" validate:"omitempty,oneof=active completed discarded"`
	Remarks        *string `json:"remarks"`
	ContactPerson  *string `json:"contact_person" validate:"omitempty,max=255"`
	ContactNumber  *string `json:"contact_number" validate:"omitempty,max=50"`

	BusinessDetails   details.BusinessDetailPayload   `json:"business_details" validate:"required"`
	ContactDetails    details.ContactDetailPayload    `json:"contact_details" validate:"required"`
	BankingDetails    details.BankingDetailPayload    `json:"banking_details" validate:"required"`
	ComplianceDetails details.ComplianceDetailPayload `json:"compliance_details" validate:"required"`
}

// UpdateVendorRequest carries a partial update. Nil means "leave unchanged";
// the contract treats explicit nulls the same way.
type UpdateVendorRequest struct {
	VendorName     *string `json:"vendor_name" validate:"omitempty,max=255"`
	VendorEmail    *string `json:"vendor_email" validate:"omitempty,email"`
	VendorCategory *string `json:"vendor_category" validate:"omitempty,max=100"`
	Status         *string `json:"status" validate:"omitempty,oneof=active completed discarded"`
	Remarks        *string `json:"remarks"`
	ContactPerson  *string `json:"contact_person" validate:"omitempty,max=255"`
	ContactNumber  *string `json:"contact_number" validate:"omitempty,max=50"`

	BusinessDetails   *details.BusinessDetailPatch   `json:"business_details"`
	ContactDetails    *details.ContactDetailPatch    `json:"contact_details"`
	BankingDetails    *details.BankingDetailPatch    `json:"banking_details"`
	ComplianceDetails *details.ComplianceDetailPatch `json:"compliance_details"`
}

// VendorResponse is the vendor row plus its nested details.
type VendorResponse struct {
	ID             uint    `json:"id"`
	VendorName     string  `json:"vendor_name"`
	VendorEmail    string  `json:"vendor_email"`
	VendorCategory *string `json:"vendor_category"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks"`
	ContactPerson  *string `json:"contact_person"`
	ContactNumber  *string `json:"contact_number"`

	BusinessDetails   *details.BusinessDetailResponse   `json:"business_details,omitempty"`
	ContactDetails    *details.ContactDetailResponse    `json:"contact_details,omitempty"`
	BankingDetails    *details.BankingDetailResponse    `json:"banking_details,omitempty"`
	ComplianceDetails *details.ComplianceDetailResponse `json:"compliance_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComprehensiveVendorResponse is the pipeline summary row: vendor identity,
// the derived onboarding status, and the visible followup history.
type ComprehensiveVendorResponse struct {
	ID               uint               `json:"id"`
	VendorName       string             `json:"vendor_name"`
	VendorEmail      string             `json:"vendor_email"`
	Status           string             `json:"status"`
	OnboardingStatus string             `json:"onboarding_status"`
	Followups        []FollowupResponse `json:"followups"`
}

type FollowupResponse struct {
	ID             uint      `json:"id"`
	VendorID       uint      `json:"vendor_id"`
	IssueType      string    `json:"issue_type"`
	FollowupStatus string    `json:"followup_status"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	FollowupStage  *string   `json:"followup_stage"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toVendorResponse(v *models.Vendor) *VendorResponse {
	if v == nil {
		return nil
	}
	return &VendorResponse{
		ID:                v.ID,
		VendorName:        v.VendorName,
		VendorEmail:       v.VendorEmail,
		VendorCategory:    v.VendorCategory,
		Status:            string(v.Status),
		Remarks:           v.Remarks,
		ContactPerson:     v.ContactPerson,
		ContactNumber:     v.ContactNumber,
		BusinessDetails:   details.ToBusinessDetailResponse(v.BusinessDetail),
		ContactDetails:    details.ToContactDetailResponse(v.ContactDetail),
		BankingDetails:    details.ToBankingDetailResponse(v.BankingDetail),
		ComplianceDetails: details.ToComplianceDetailResponse(v.ComplianceDetail),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func toFollowupResponse(f *models.FollowupRecord) FollowupResponse {
	return FollowupResponse{
		ID:             f.ID,
		VendorID:       f.VendorID,
		IssueType:      string(f.IssueType),
		FollowupStatus: f.FollowupStatus,
		Subject:        f.Subject,
		Body:           f.Body,
		FollowupStage:  f.FollowupStage,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}
