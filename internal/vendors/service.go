package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/internal/details"
	"github.com/neocodenexus/vendorx-backend/pkg/db"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes vendor aggregate creation, lookup, update, and deletion.
type Service interface {
	CreateVendor(ctx context.Context, input CreateVendorRequest) (*VendorResponse, error)
	GetVendor(ctx context.Context, id uint) (*VendorResponse, error)
	ListVendors(ctx context.Context, status string) ([]VendorResponse, error)
	ListComprehensiveVendors(ctx context.Context) ([]ComprehensiveVendorResponse, error)
	UpdateVendor(ctx context.Context, id uint, input UpdateVendorRequest) (*VendorResponse, error)
	DeleteVendor(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a vendor service backed by the repository and transaction runner.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

// CreateVendor writes the vendor row and its four detail rows in one
// transaction. The uniqueness pre-checks give friendly conflicts; the unique
// indexes remain the authority under concurrent writes.
func (s *service) CreateVendor(ctx context.Context, input CreateVendorRequest) (*VendorResponse, error) {
	status := enums.VendorStatusActive
	if input.Status != nil {
		parsed, err := enums.ParseVendorStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor status")
		}
		status = parsed
	}
	now := s.now()
	if err := details.ValidateYearEstablished(input.BusinessDetails.YearEstablished, now); err != nil {
		return nil, err
	}
	if err := details.ValidateLicenseExpiry(input.ComplianceDetails.LicenseExpiryDate, now); err != nil {
		return nil, err
	}
	if err := details.ValidateInsuranceExpiry(input.ComplianceDetails.InsuranceExpiryDate, now); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.VendorEmail))
	taken, err := s.repo.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor email")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor email already registered")
	}

	regNumber := strings.TrimSpace(input.BusinessDetails.BusinessRegistrationNumber)
	taken, err = s.repo.RegistrationNumberExists(ctx, regNumber, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check registration number")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "business registration number already registered")
	}

	vendor := &models.Vendor{
		VendorName:       strings.TrimSpace(input.VendorName),
		VendorEmail:      email,
		VendorCategory:   trimPtr(input.VendorCategory),
		Status:           status,
		Remarks:          input.Remarks,
		ContactPerson:    trimPtr(input.ContactPerson),
		ContactNumber:    trimPtr(input.ContactNumber),
		BusinessDetail:   details.NewBusinessDetail(0, input.BusinessDetails),
		ContactDetail:    details.NewContactDetail(0, input.ContactDetails),
		BankingDetail:    details.NewBankingDetail(0, input.BankingDetails),
		ComplianceDetail: details.NewComplianceDetail(0, input.ComplianceDetails),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, createErr := s.repo.WithTx(tx).CreateAggregate(ctx, vendor)
		return createErr
	})
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return toVendorResponse(vendor), nil
}

func (s *service) GetVendor(ctx context.Context, id uint) (*VendorResponse, error) {
	vendor, err := s.findVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// ListComprehensiveVendors returns a pipeline summary per vendor with the
// derived onboarding status and the visible followup history. Soft-deleted
// followups are hidden from the list but still drive the projection.
func (s *service) ListComprehensiveVendors(ctx context.Context) ([]ComprehensiveVendorResponse, error) {
	rows, err := s.repo.ListWithFollowups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	items := make([]ComprehensiveVendorResponse, len(rows))
	for i := range rows {
		vendor := &rows[i]
		followups := make([]FollowupResponse, 0, len(vendor.FollowupRecords))
		for j := range vendor.FollowupRecords {
			if vendor.FollowupRecords[j].IsDeleted {
				continue
			}
			followups = append(followups, toFollowupResponse(&vendor.FollowupRecords[j]))
		}
		items[i] = ComprehensiveVendorResponse{
			ID:               vendor.ID,
			VendorName:       vendor.VendorName,
			VendorEmail:      vendor.VendorEmail,
			Status:           string(vendor.Status),
			OnboardingStatus: OnboardingStatus(vendor),
			Followups:        followups,
		}
	}
	return items, nil
}

func (s *service) ListVendors(ctx context.Context, status string) ([]VendorResponse, error) {
	if status != "" {
		if _, err := enums.ParseVendorStatus(status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor status filter")
		}
	}
	rows, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	items := make([]VendorResponse, len(rows))
	for i := range rows {
		items[i] = *toVendorResponse(&rows[i])
	}
	return items, nil
}

// UpdateVendor applies a partial update. Nil fields stay untouched; the same
// goes for omitted detail sections.
func (s *service) UpdateVendor(ctx context.Context, id uint, input UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.findVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VendorName != nil {
		vendor.VendorName = strings.TrimSpace(*input.VendorName)
	}
	if input.VendorEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*input.VendorEmail))
		if email != vendor.VendorEmail {
			taken, checkErr := s.repo.ExistsByEmail(ctx, email, id)
			if checkErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, checkErr, "check vendor email")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor email already registered")
			}
		}
		vendor.VendorEmail = email
	}
	if input.VendorCategory != nil {
		vendor.VendorCategory = trimPtr(input.VendorCategory)
	}
	if input.Status != nil {
		parsed, parseErr := enums.ParseVendorStatus(*input.Status)
		if parseErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid vendor status")
		}
		vendor.Status = parsed
	}
	if input.Remarks != nil {
		vendor.Remarks = input.Remarks
	}
	if input.ContactPerson != nil {
		vendor.ContactPerson = trimPtr(input.ContactPerson)
	}
	if input.ContactNumber != nil {
		vendor.ContactNumber = trimPtr(input.ContactNumber)
	}

	if input.BusinessDetails != nil {
		if vendor.BusinessDetail == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "business details not found")
		}
		if err := s.applyBusinessPatch(ctx, vendor, input.BusinessDetails); err != nil {
			return nil, err
		}
	}
	if input.ContactDetails != nil {
		if vendor.ContactDetail == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact details not found")
		}
		details.ApplyContactPatch(vendor.ContactDetail, input.ContactDetails)
	}
	if input.BankingDetails != nil {
		if vendor.BankingDetail == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banking details not found")
		}
		details.ApplyBankingPatch(vendor.BankingDetail, input.BankingDetails)
	}
	if input.ComplianceDetails != nil {
		if vendor.ComplianceDetail == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "compliance details not found")
		}
		now := s.now()
		if input.ComplianceDetails.LicenseExpiryDate != nil {
			if err := details.ValidateLicenseExpiry(*input.ComplianceDetails.LicenseExpiryDate, now); err != nil {
				return nil, err
			}
		}
		if input.ComplianceDetails.InsuranceExpiryDate != nil {
			if err := details.ValidateInsuranceExpiry(*input.ComplianceDetails.InsuranceExpiryDate, now); err != nil {
				return nil, err
			}
		}
		details.ApplyCompliancePatch(vendor.ComplianceDetail, input.ComplianceDetails)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if saveErr := repo.SaveVendor(ctx, vendor); saveErr != nil {
			return saveErr
		}
		if input.BusinessDetails != nil {
			if saveErr := repo.SaveBusinessDetail(ctx, vendor.BusinessDetail); saveErr != nil {
				return saveErr
			}
		}
		if input.ContactDetails != nil {
			if saveErr := repo.SaveContactDetail(ctx, vendor.ContactDetail); saveErr != nil {
				return saveErr
			}
		}
		if input.BankingDetails != nil {
			if saveErr := repo.SaveBankingDetail(ctx, vendor.BankingDetail); saveErr != nil {
				return saveErr
			}
		}
		if input.ComplianceDetails != nil {
			if saveErr := repo.SaveComplianceDetail(ctx, vendor.ComplianceDetail); saveErr != nil {
				return saveErr
			}
		}
		return nil
	})
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}

	updated, err := s.findVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(updated), nil
}

// DeleteVendor removes the aggregate: vendor, detail rows, and followups.
func (s *service) DeleteVendor(ctx context.Context, id uint) error {
	if _, err := s.findVendor(ctx, id); err != nil {
		return err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	return nil
}

func (s *service) findVendor(ctx context.Context, id uint) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor")
	}
	return vendor, nil
}

func (s *service) applyBusinessPatch(ctx context.Context, vendor *models.Vendor, patch *details.BusinessDetailPatch) error {
	if patch.YearEstablished != nil {
		if err := details.ValidateYearEstablished(*patch.YearEstablished, s.now()); err != nil {
			return err
		}
	}
	if patch.BusinessRegistrationNumber != nil {
		regNumber := strings.TrimSpace(*patch.BusinessRegistrationNumber)
		if regNumber != vendor.BusinessDetail.BusinessRegistrationNumber {
			taken, err := s.repo.RegistrationNumberExists(ctx, regNumber, vendor.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check registration number")
			}
			if taken {
				return pkgerrors.New(pkgerrors.CodeConflict, "business registration number already registered")
			}
		}
	}
	details.ApplyBusinessPatch(vendor.BusinessDetail, patch)
	return nil
}

// mapUniqueViolation translates unique-index failures into conflicts so a
// race past the pre-checks still surfaces as 409 rather than 502. Each case
// lists the Postgres index name and the sqlite column reference.
func mapUniqueViolation(err error) *pkgerrors.Error {
	switch {
	case isUniqueViolation(err, "idx_vendors_vendor_email", "vendors.vendor_email"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "vendor email already registered")
	case isUniqueViolation(err, "idx_business_details_business_registration_number", "business_details.business_registration_number"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "business registration number already registered")
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "vendor record already exists")
	default:
		return nil
	}
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func isUniqueViolation(err error, names ...string) bool {
	for _, name := range names {
		if db.IsUniqueViolation(err, name) {
			return true
		}
	}
	return false
}
