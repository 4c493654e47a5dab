package details

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

// Service exposes standalone CRUD for the four vendor detail record types.
// The nested forms of the same rows are managed through the vendor aggregate.
type Service interface {
	CreateBusiness(ctx context.Context, input CreateBusinessDetailRequest) (*BusinessDetailResponse, error)
	GetBusiness(ctx context.Context, id uint) (*BusinessDetailResponse, error)
	ListBusiness(ctx context.Context) ([]BusinessDetailResponse, error)
	UpdateBusiness(ctx context.Context, id uint, patch BusinessDetailPatch) (*BusinessDetailResponse, error)
	DeleteBusiness(ctx context.Context, id uint) error

	CreateContact(ctx context.Context, input CreateContactDetailRequest) (*ContactDetailResponse, error)
	GetContact(ctx context.Context, id uint) (*ContactDetailResponse, error)
	ListContact(ctx context.Context) ([]ContactDetailResponse, error)
	UpdateContact(ctx context.Context, id uint, patch ContactDetailPatch) (*ContactDetailResponse, error)
	DeleteContact(ctx context.Context, id uint) error

	CreateBanking(ctx context.Context, input CreateBankingDetailRequest) (*BankingDetailResponse, error)
	GetBanking(ctx context.Context, id uint) (*BankingDetailResponse, error)
	ListBanking(ctx context.Context) ([]BankingDetailResponse, error)
	UpdateBanking(ctx context.Context, id uint, patch BankingDetailPatch) (*BankingDetailResponse, error)
	DeleteBanking(ctx context.Context, id uint) error

	CreateCompliance(ctx context.Context, input CreateComplianceDetailRequest) (*ComplianceDetailResponse, error)
	GetCompliance(ctx context.Context, id uint) (*ComplianceDetailResponse, error)
	ListCompliance(ctx context.Context) ([]ComplianceDetailResponse, error)
	UpdateCompliance(ctx context.Context, id uint, patch ComplianceDetailPatch) (*ComplianceDetailResponse, error)
	DeleteCompliance(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds a detail service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("detail repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) requireVendor(ctx context.Context, vendorID uint) error {
	exists, err := s.repo.VendorExists(ctx, vendorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return nil
}

func (s *service) CreateBusiness(ctx context.Context, input CreateBusinessDetailRequest) (*BusinessDetailResponse, error) {
	if err := s.requireVendor(ctx, input.VendorID); err != nil {
		return nil, err
	}
	if err := ValidateYearEstablished(input.YearEstablished, s.now()); err != nil {
		return nil, err
	}

	regNumber := strings.TrimSpace(input.BusinessRegistrationNumber)
	taken, err := s.repo.RegistrationNumberExists(ctx, regNumber, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check registration number")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "business registration number already registered")
	}

	detail := NewBusinessDetail(input.VendorID, input.BusinessDetailPayload)
	if err := s.repo.CreateBusiness(ctx, detail); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create business details")
	}
	return ToBusinessDetailResponse(detail), nil
}

func (s *service) GetBusiness(ctx context.Context, id uint) (*BusinessDetailResponse, error) {
	row, err := s.repo.FindBusinessByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "business details not found")
	}
	return ToBusinessDetailResponse(row), nil
}

func (s *service) ListBusiness(ctx context.Context) ([]BusinessDetailResponse, error) {
	rows, err := s.repo.ListBusiness(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list business details")
	}
	items := make([]BusinessDetailResponse, len(rows))
	for i := range rows {
		items[i] = *ToBusinessDetailResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateBusiness(ctx context.Context, id uint, patch BusinessDetailPatch) (*BusinessDetailResponse, error) {
	row, err := s.repo.FindBusinessByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "business details not found")
	}
	if patch.VendorID != nil && *patch.VendorID != row.VendorID {
		if err := s.requireVendor(ctx, *patch.VendorID); err != nil {
			return nil, err
		}
		row.VendorID = *patch.VendorID
	}
	if patch.YearEstablished != nil {
		if err := ValidateYearEstablished(*patch.YearEstablished, s.now()); err != nil {
			return nil, err
		}
	}
	if patch.BusinessRegistrationNumber != nil {
		regNumber := strings.TrimSpace(*patch.BusinessRegistrationNumber)
		if regNumber != row.BusinessRegistrationNumber {
			taken, checkErr := s.repo.RegistrationNumberExists(ctx, regNumber, id)
			if checkErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, checkErr, "check registration number")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "business registration number already registered")
			}
		}
	}

	ApplyBusinessPatch(row, &patch)
	if err := s.repo.SaveBusiness(ctx, row); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update business details")
	}
	return ToBusinessDetailResponse(row), nil
}

func (s *service) DeleteBusiness(ctx context.Context, id uint) error {
	if _, err := s.repo.FindBusinessByID(ctx, id); err != nil {
		return mapLookupError(err, "business details not found")
	}
	if err := s.repo.DeleteBusiness(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete business details")
	}
	return nil
}

func (s *service) CreateContact(ctx context.Context, input CreateContactDetailRequest) (*ContactDetailResponse, error) {
	if err := s.requireVendor(ctx, input.VendorID); err != nil {
		return nil, err
	}
	detail := NewContactDetail(input.VendorID, input.ContactDetailPayload)
	if err := s.repo.CreateContact(ctx, detail); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact details")
	}
	return ToContactDetailResponse(detail), nil
}

func (s *service) GetContact(ctx context.Context, id uint) (*ContactDetailResponse, error) {
	row, err := s.repo.FindContactByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "contact details not found")
	}
	return ToContactDetailResponse(row), nil
}

func (s *service) ListContact(ctx context.Context) ([]ContactDetailResponse, error) {
	rows, err := s.repo.ListContact(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact details")
	}
	items := make([]ContactDetailResponse, len(rows))
	for i := range rows {
		items[i] = *ToContactDetailResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateContact(ctx context.Context, id uint, patch ContactDetailPatch) (*ContactDetailResponse, error) {
	row, err := s.repo.FindContactByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "contact details not found")
	}
	if patch.VendorID != nil && *patch.VendorID != row.VendorID {
		if err := s.requireVendor(ctx, *patch.VendorID); err != nil {
			return nil, err
		}
		row.VendorID = *patch.VendorID
	}
	ApplyContactPatch(row, &patch)
	if err := s.repo.SaveContact(ctx, row); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact details")
	}
	return ToContactDetailResponse(row), nil
}

func (s *service) DeleteContact(ctx context.Context, id uint) error {
	if _, err := s.repo.FindContactByID(ctx, id); err != nil {
		return mapLookupError(err, "contact details not found")
	}
	if err := s.repo.DeleteContact(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact details")
	}
	return nil
}

func (s *service) CreateBanking(ctx context.Context, input CreateBankingDetailRequest) (*BankingDetailResponse, error) {
	if err := s.requireVendor(ctx, input.VendorID); err != nil {
		return nil, err
	}
	detail := NewBankingDetail(input.VendorID, input.BankingDetailPayload)
	if err := s.repo.CreateBanking(ctx, detail); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banking details")
	}
	return ToBankingDetailResponse(detail), nil
}

func (s *service) GetBanking(ctx context.Context, id uint) (*BankingDetailResponse, error) {
	row, err := s.repo.FindBankingByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "banking details not found")
	}
	return ToBankingDetailResponse(row), nil
}

func (s *service) ListBanking(ctx context.Context) ([]BankingDetailResponse, error) {
	rows, err := s.repo.ListBanking(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banking details")
	}
	items := make([]BankingDetailResponse, len(rows))
	for i := range rows {
		items[i] = *ToBankingDetailResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateBanking(ctx context.Context, id uint, patch BankingDetailPatch) (*BankingDetailResponse, error) {
	row, err := s.repo.FindBankingByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "banking details not found")
	}
	if patch.VendorID != nil && *patch.VendorID != row.VendorID {
		if err := s.requireVendor(ctx, *patch.VendorID); err != nil {
			return nil, err
		}
		row.VendorID = *patch.VendorID
	}
	ApplyBankingPatch(row, &patch)
	if err := s.repo.SaveBanking(ctx, row); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update banking details")
	}
	return ToBankingDetailResponse(row), nil
}

func (s *service) DeleteBanking(ctx context.Context, id uint) error {
	if _, err := s.repo.FindBankingByID(ctx, id); err != nil {
		return mapLookupError(err, "banking details not found")
	}
	if err := s.repo.DeleteBanking(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete banking details")
	}
	return nil
}

func (s *service) CreateCompliance(ctx context.Context, input CreateComplianceDetailRequest) (*ComplianceDetailResponse, error) {
	if err := s.requireVendor(ctx, input.VendorID); err != nil {
		return nil, err
	}
	now := s.now()
	if err := ValidateLicenseExpiry(input.LicenseExpiryDate, now); err != nil {
		return nil, err
	}
	if err := ValidateInsuranceExpiry(input.InsuranceExpiryDate, now); err != nil {
		return nil, err
	}
	detail := NewComplianceDetail(input.VendorID, input.ComplianceDetailPayload)
	if err := s.repo.CreateCompliance(ctx, detail); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create compliance details")
	}
	return ToComplianceDetailResponse(detail), nil
}

func (s *service) GetCompliance(ctx context.Context, id uint) (*ComplianceDetailResponse, error) {
	row, err := s.repo.FindComplianceByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "compliance details not found")
	}
	return ToComplianceDetailResponse(row), nil
}

func (s *service) ListCompliance(ctx context.Context) ([]ComplianceDetailResponse, error) {
	rows, err := s.repo.ListCompliance(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list compliance details")
	}
	items := make([]ComplianceDetailResponse, len(rows))
	for i := range rows {
		items[i] = *ToComplianceDetailResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateCompliance(ctx context.Context, id uint, patch ComplianceDetailPatch) (*ComplianceDetailResponse, error) {
	row, err := s.repo.FindComplianceByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "compliance details not found")
	}
	if patch.VendorID != nil && *patch.VendorID != row.VendorID {
		if err := s.requireVendor(ctx, *patch.VendorID); err != nil {
			return nil, err
		}
		row.VendorID = *patch.VendorID
	}
	now := s.now()
	if patch.LicenseExpiryDate != nil {
		if err := ValidateLicenseExpiry(*patch.LicenseExpiryDate, now); err != nil {
			return nil, err
		}
	}
	if patch.InsuranceExpiryDate != nil {
		if err := ValidateInsuranceExpiry(*patch.InsuranceExpiryDate, now); err != nil {
			return nil, err
		}
	}
	ApplyCompliancePatch(row, &patch)
	if err := s.repo.SaveCompliance(ctx, row); err != nil {
		if mapped := mapDetailConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update compliance details")
	}
	return ToComplianceDetailResponse(row), nil
}

func (s *service) DeleteCompliance(ctx context.Context, id uint) error {
	if _, err := s.repo.FindComplianceByID(ctx, id); err != nil {
		return mapLookupError(err, "compliance details not found")
	}
	if err := s.repo.DeleteCompliance(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete compliance details")
	}
	return nil
}

func mapLookupError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup detail record")
}

// mapDetailConflict covers the one-row-per-vendor indexes and the global
// registration-number index when a write slips past the pre-checks.
func mapDetailConflict(err error) *pkgerrors.Error {
	switch {
	case db.IsUniqueViolation(err, "idx_business_details_business_registration_number"),
		db.IsUniqueViolation(err, "business_details.business_registration_number"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "business registration number already registered")
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "vendor already has this detail record")
	default:
		return nil
	}
}
