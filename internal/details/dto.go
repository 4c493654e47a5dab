package details

import (
	"strings"
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// BusinessDetailPayload is the full business profile for a vendor.
type BusinessDetailPayload struct {
	LegalBusinessName          string `json:"legal_business_name" validate:"required,max=255"`
	BusinessRegistrationNumber string `json:"business_registration_number" validate:"required,max=100"`
	BusinessType               string `json:"business_type" validate:"required,max=100"`
	YearEstablished            int    `json:"year_established" validate:"required,gte=1800"`
	BusinessAddress            string `json:"business_address" validate:"required"`
	IndustrySector             string `json:"industry_sector" validate:"required,max=100"`
	NumberOfEmployees          *int   `json:"number_of_employees" validate:"omitempty,gte=1"`
}

type ContactDetailPayload struct {
	PrimaryContactName    string  `json:"primary_contact_name" validate:"required,max=255"`
	JobTitle              string  `json:"job_title" validate:"required,max=100"`
	EmailAddress          string  `json:"email_address" validate:"required,email"`
	PhoneNumber           string  `json:"phone_number" validate:"required,max=50"`
	SecondaryContactName  *string `json:"secondary_contact_name" validate:"omitempty,max=255"`
	SecondaryContactEmail *string `json:"secondary_contact_email" validate:"omitempty,email"`
	Website               *string `json:"website" validate:"omitempty,url"`
}

type BankingDetailPayload struct {
	BankName          string  `json:"bank_name" validate:"required,max=255"`
	AccountHolderName string  `json:"account_holder_name" validate:"required,max=255"`
	AccountNumber     string  `json:"account_number" validate:"required,min=8,max=18"`
	AccountType       string  `json:"account_type" validate:"required,max=50"`
	RoutingSwiftCode  string  `json:"routing_swift_code" validate:"required,max=50"`
	IBAN              *string `json:"iban" validate:"omitempty,max=50"`
	PaymentTerms      string  `json:"payment_terms" validate:"required,max=100"`
	Currency          string  `json:"currency" validate:"required,max=10"`
}

type ComplianceDetailPayload struct {
	TaxIdentificationNumber string    `json:"tax_identification_number" validate:"required,max=100"`
	BusinessLicenseNumber   string    `json:"business_license_number" validate:"required,max=100"`
	LicenseExpiryDate       time.Time `json:"license_expiry_date" validate:"required"`
	InsuranceProvider       string    `json:"insurance_provider" validate:"required,max=255"`
	InsurancePolicyNumber   string    `json:"insurance_policy_number" validate:"required,max=100"`
	InsuranceExpiryDate     time.Time `json:"insurance_expiry_date" validate:"required"`
	IndustryCertifications  *string   `json:"industry_certifications"`
}

// Patch types carry partial updates. Nil means "leave unchanged"; the
// contract treats explicit nulls the same way. A vendor_id re-parents the
// row; the standalone update endpoints validate the target vendor exists.

type BusinessDetailPatch struct {
	VendorID                   *uint   `json:"vendor_id" validate:"omitempty,gte=1"`
	LegalBusinessName          *string `json:"legal_business_name" validate:"omitempty,max=255"`
	BusinessRegistrationNumber *string `json:"business_registration_number" validate:"omitempty,max=100"`
	BusinessType               *string `json:"business_type" validate:"omitempty,max=100"`
	YearEstablished            *int    `json:"year_established" validate:"omitempty,gte=1800"`
	BusinessAddress            *string `json:"business_address"`
	IndustrySector             *string `json:"industry_sector" validate:"omitempty,max=100"`
	NumberOfEmployees          *int    `json:"number_of_employees" validate:"omitempty,gte=1"`
}

type ContactDetailPatch struct {
	VendorID              *uint   `json:"vendor_id" validate:"omitempty,gte=1"`
	PrimaryContactName    *string `json:"primary_contact_name" validate:"omitempty,max=255"`
	JobTitle              *string `json:"job_title" validate:"omitempty,max=100"`
	EmailAddress          *string `json:"email_address" validate:"omitempty,email"`
	PhoneNumber           *string `json:"phone_number" validate:"omitempty,max=50"`
	SecondaryContactName  *string `json:"secondary_contact_name" validate:"omitempty,max=255"`
	SecondaryContactEmail *string `json:"secondary_contact_email" validate:"omitempty,email"`
	Website               *string `json:"website" validate:"omitempty,url"`
}

type BankingDetailPatch struct {
	VendorID          *uint   `json:"vendor_id" validate:"omitempty,gte=1"`
	BankName          *string `json:"bank_name" validate:"omitempty,max=255"`
	AccountHolderName *string `json:"account_holder_name" validate:"omitempty,max=255"`
	AccountNumber     *string `json:"account_number" validate:"omitempty,min=8,max=18"`
	AccountType       *string `json:"account_type" validate:"omitempty,max=50"`
	RoutingSwiftCode  *string `json:"routing_swift_code" validate:"omitempty,max=50"`
	IBAN              *string `json:"iban" validate:"omitempty,max=50"`
	PaymentTerms      *string `json:"payment_terms" validate:"omitempty,max=100"`
	Currency          *string `json:"currency" validate:"omitempty,max=10"`
}

type ComplianceDetailPatch struct {
	VendorID                *uint      `json:"vendor_id" validate:"omitempty,gte=1"`
	TaxIdentificationNumber *string    `json:"tax_identification_number" validate:"omitempty,max=100"`
	BusinessLicenseNumber   *string    `json:"business_license_number" validate:"omitempty,max=100"`
	LicenseExpiryDate       *time.Time `json:"license_expiry_date"`
	InsuranceProvider       *string    `json:"insurance_provider" validate:"omitempty,max=255"`
	InsurancePolicyNumber   *string    `json:"insurance_policy_number" validate:"omitempty,max=100"`
	InsuranceExpiryDate     *time.Time `json:"insurance_expiry_date"`
	IndustryCertifications  *string    `json:"industry_certifications"`
}

// Standalone requests add the vendor binding the nested aggregate forms imply.

type CreateBusinessDetailRequest struct {
	VendorID uint `json:"vendor_id" validate:"required"`
	BusinessDetailPayload
}

type CreateContactDetailRequest struct {
	VendorID uint `json:"vendor_id" validate:"required"`
	ContactDetailPayload
}

type CreateBankingDetailRequest struct {
	VendorID uint `json:"vendor_id" validate:"required"`
	BankingDetailPayload
}

type CreateComplianceDetailRequest struct {
	VendorID uint `json:"vendor_id" validate:"required"`
	ComplianceDetailPayload
}

type BusinessDetailResponse struct {
	ID                         uint      `json:"id"`
	VendorID                   uint      `json:"vendor_id"`
	LegalBusinessName          string    `json:"legal_business_name"`
	BusinessRegistrationNumber string    `json:"business_registration_number"`
	BusinessType               string    `json:"business_type"`
	YearEstablished            int       `json:"year_established"`
	BusinessAddress            string    `json:"business_address"`
	IndustrySector             string    `json:"industry_sector"`
	NumberOfEmployees          *int      `json:"number_of_employees"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

type ContactDetailResponse struct {
	ID                    uint      `json:"id"`
	VendorID              uint      `json:"vendor_id"`
	PrimaryContactName    string    `json:"primary_contact_name"`
	JobTitle              string    `json:"job_title"`
	EmailAddress          string    `json:"email_address"`
	PhoneNumber           string    `json:"phone_number"`
	SecondaryContactName  *string   `json:"secondary_contact_name"`
	SecondaryContactEmail *string   `json:"secondary_contact_email"`
	Website               *string   `json:"website"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type BankingDetailResponse struct {
	ID                uint      `json:"id"`
	VendorID          uint      `json:"vendor_id"`
	BankName          string    `json:"bank_name"`
	AccountHolderName string    `json:"account_holder_name"`
	AccountNumber     string    `json:"account_number"`
	AccountType       string    `json:"account_type"`
	RoutingSwiftCode  string    `json:"routing_swift_code"`
	IBAN              *string   `json:"iban"`
	PaymentTerms      string    `json:"payment_terms"`
	Currency          string    `json:"currency"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ComplianceDetailResponse struct {
	ID                      uint      `json:"id"`
	VendorID                uint      `json:"vendor_id"`
	TaxIdentificationNumber string    `json:"tax_identification_number"`
	BusinessLicenseNumber   string    `json:"business_license_number"`
	LicenseExpiryDate       time.Time `json:"license_expiry_date"`
	InsuranceProvider       string    `json:"insurance_provider"`
	InsurancePolicyNumber   string    `json:"insurance_policy_number"`
	InsuranceExpiryDate     time.Time `json:"insurance_expiry_date"`
	IndustryCertifications  *string   `json:"industry_certifications"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NewBusinessDetail builds a model row from the payload. vendorID may be zero
// when the row is created through the vendor aggregate.
func NewBusinessDetail(vendorID uint, input BusinessDetailPayload) *models.BusinessDetail {
	return &models.BusinessDetail{
		VendorID:                   vendorID,
		LegalBusinessName:          strings.TrimSpace(input.LegalBusinessName),
		BusinessRegistrationNumber: strings.TrimSpace(input.BusinessRegistrationNumber),
		BusinessType:               input.BusinessType,
		YearEstablished:            input.YearEstablished,
		BusinessAddress:            input.BusinessAddress,
		IndustrySector:             input.IndustrySector,
		NumberOfEmployees:          input.NumberOfEmployees,
	}
}

func NewContactDetail(vendorID uint, input ContactDetailPayload) *models.ContactDetail {
	return &models.ContactDetail{
		VendorID:              vendorID,
		PrimaryContactName:    strings.TrimSpace(input.PrimaryContactName),
		JobTitle:              input.JobTitle,
		EmailAddress:          strings.ToLower(strings.TrimSpace(input.EmailAddress)),
		PhoneNumber:           input.PhoneNumber,
		SecondaryContactName:  input.SecondaryContactName,
		SecondaryContactEmail: input.SecondaryContactEmail,
		Website:               input.Website,
	}
}

func NewBankingDetail(vendorID uint, input BankingDetailPayload) *models.BankingDetail {
	return &models.BankingDetail{
		VendorID:          vendorID,
		BankName:          input.BankName,
		AccountHolderName: input.AccountHolderName,
		AccountNumber:     input.AccountNumber,
		AccountType:       input.AccountType,
		RoutingSwiftCode:  input.RoutingSwiftCode,
		IBAN:              input.IBAN,
		PaymentTerms:      input.PaymentTerms,
		Currency:          strings.ToUpper(strings.TrimSpace(input.Currency)),
	}
}

func NewComplianceDetail(vendorID uint, input ComplianceDetailPayload) *models.ComplianceDetail {
	return &models.ComplianceDetail{
		VendorID:                vendorID,
		TaxIdentificationNumber: input.TaxIdentificationNumber,
		BusinessLicenseNumber:   input.BusinessLicenseNumber,
		LicenseExpiryDate:       input.LicenseExpiryDate,
		InsuranceProvider:       input.InsuranceProvider,
		InsurancePolicyNumber:   input.InsurancePolicyNumber,
		InsuranceExpiryDate:     input.InsuranceExpiryDate,
		IndustryCertifications:  input.IndustryCertifications,
	}
}

// ApplyBusinessPatch copies non-nil fields onto the row. Uniqueness checks on
// the registration number belong to the caller.
func ApplyBusinessPatch(detail *models.BusinessDetail, patch *BusinessDetailPatch) {
	if patch.LegalBusinessName != nil {
		detail.LegalBusinessName = strings.TrimSpace(*patch.LegalBusinessName)
	}
	if patch.BusinessRegistrationNumber != nil {
		detail.BusinessRegistrationNumber = strings.TrimSpace(*patch.BusinessRegistrationNumber)
	}
	if patch.BusinessType != nil {
		detail.BusinessType = *patch.BusinessType
	}
	if patch.YearEstablished != nil {
		detail.YearEstablished = *patch.YearEstablished
	}
	if patch.BusinessAddress != nil {
		detail.BusinessAddress = *patch.BusinessAddress
	}
	if patch.IndustrySector != nil {
		detail.IndustrySector = *patch.IndustrySector
	}
	if patch.NumberOfEmployees != nil {
		detail.NumberOfEmployees = patch.NumberOfEmployees
	}
}

func ApplyContactPatch(detail *models.ContactDetail, patch *ContactDetailPatch) {
	if patch.PrimaryContactName != nil {
		detail.PrimaryContactName = strings.TrimSpace(*patch.PrimaryContactName)
	}
	if patch.JobTitle != nil {
		detail.JobTitle = *patch.JobTitle
	}
	if patch.EmailAddress != nil {
		detail.EmailAddress = strings.ToLower(strings.TrimSpace(*patch.EmailAddress))
	}
	if patch.PhoneNumber != nil {
		detail.PhoneNumber = *patch.PhoneNumber
	}
	if patch.SecondaryContactName != nil {
		detail.SecondaryContactName = patch.SecondaryContactName
	}
	if patch.SecondaryContactEmail != nil {
		detail.SecondaryContactEmail = patch.SecondaryContactEmail
	}
	if patch.Website != nil {
		detail.Website = patch.Website
	}
}

func ApplyBankingPatch(detail *models.BankingDetail, patch *BankingDetailPatch) {
	if patch.BankName != nil {
		detail.BankName = *patch.BankName
	}
	if patch.AccountHolderName != nil {
		detail.AccountHolderName = *patch.AccountHolderName
	}
	if patch.AccountNumber != nil {
		detail.AccountNumber = *patch.AccountNumber
	}
	if patch.AccountType != nil {
		detail.AccountType = *patch.AccountType
	}
	if patch.RoutingSwiftCode != nil {
		detail.RoutingSwiftCode = *patch.RoutingSwiftCode
	}
	if patch.IBAN != nil {
		detail.IBAN = patch.IBAN
	}
	if patch.PaymentTerms != nil {
		detail.PaymentTerms = *patch.PaymentTerms
	}
	if patch.Currency != nil {
		detail.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
}

// ApplyCompliancePatch copies non-nil fields onto the row. Expiry-date
// validation belongs to the caller.
func ApplyCompliancePatch(detail *models.ComplianceDetail, patch *ComplianceDetailPatch) {
	if patch.TaxIdentificationNumber != nil {
		detail.TaxIdentificationNumber = *patch.TaxIdentificationNumber
	}
	if patch.BusinessLicenseNumber != nil {
		detail.BusinessLicenseNumber = *patch.BusinessLicenseNumber
	}
	if patch.LicenseExpiryDate != nil {
		detail.LicenseExpiryDate = *patch.LicenseExpiryDate
	}
	if patch.InsuranceProvider != nil {
		detail.InsuranceProvider = *patch.InsuranceProvider
	}
	if patch.InsurancePolicyNumber != nil {
		detail.InsurancePolicyNumber = *patch.InsurancePolicyNumber
	}
	if patch.InsuranceExpiryDate != nil {
		detail.InsuranceExpiryDate = *patch.InsuranceExpiryDate
	}
	if patch.IndustryCertifications != nil {
		detail.IndustryCertifications = patch.IndustryCertifications
	}
}

func ToBusinessDetailResponse(d *models.BusinessDetail) *BusinessDetailResponse {
	if d == nil {
		return nil
	}
	return &BusinessDetailResponse{
		ID:                         d.ID,
		VendorID:                   d.VendorID,
		LegalBusinessName:          d.LegalBusinessName,
		BusinessRegistrationNumber: d.BusinessRegistrationNumber,
		BusinessType:               d.BusinessType,
		YearEstablished:            d.YearEstablished,
		BusinessAddress:            d.BusinessAddress,
		IndustrySector:             d.IndustrySector,
		NumberOfEmployees:          d.NumberOfEmployees,
		CreatedAt:                  d.CreatedAt,
		UpdatedAt:                  d.UpdatedAt,
	}
}

func ToContactDetailResponse(d *models.ContactDetail) *ContactDetailResponse {
	if d == nil {
		return nil
	}
	return &ContactDetailResponse{
		ID:                    d.ID,
		VendorID:              d.VendorID,
		PrimaryContactName:    d.PrimaryContactName,
		JobTitle:              d.JobTitle,
		EmailAddress:          d.EmailAddress,
		PhoneNumber:           d.PhoneNumber,
		SecondaryContactName:  d.SecondaryContactName,
		SecondaryContactEmail: d.SecondaryContactEmail,
		Website:               d.Website,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func ToBankingDetailResponse(d *models.BankingDetail) *BankingDetailResponse {
	if d == nil {
		return nil
	}
	return &BankingDetailResponse{
		ID:                d.ID,
		VendorID:          d.VendorID,
		BankName:          d.BankName,
		AccountHolderName: d.AccountHolderName,
		AccountNumber:     d.AccountNumber,
		AccountType:       d.AccountType,
		RoutingSwiftCode:  d.RoutingSwiftCode,
		IBAN:              d.IBAN,
		PaymentTerms:      d.PaymentTerms,
		Currency:          d.Currency,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func ToComplianceDetailResponse(d *models.ComplianceDetail) *ComplianceDetailResponse {
	if d == nil {
		return nil
	}
	return &ComplianceDetailResponse{
		ID:                      d.ID,
		VendorID:                d.VendorID,
		TaxIdentificationNumber: d.TaxIdentificationNumber,
		BusinessLicenseNumber:   d.BusinessLicenseNumber,
		LicenseExpiryDate:       d.LicenseExpiryDate,
		InsuranceProvider:       d.InsuranceProvider,
		InsurancePolicyNumber:   d.InsurancePolicyNumber,
		InsuranceExpiryDate:     d.InsuranceExpiryDate,
		IndustryCertifications:  d.IndustryCertifications,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}
