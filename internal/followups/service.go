package followups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

const defaultFollowupStatus = "requested"

// Service exposes followup record CRUD with soft deletion.
type Service interface {
	CreateRecord(ctx context.Context, input CreateRecordRequest) (*RecordResponse, error)
	GetRecord(ctx context.Context, id uint) (*RecordResponse, error)
	ListRecords(ctx context.Context, filter ListFilter) ([]RecordResponse, error)
	UpdateRecord(ctx context.Context, id uint, input UpdateRecordRequest) (*RecordResponse, error)
	DeleteRecord(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("followup repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateRecord(ctx context.Context, input CreateRecordRequest) (*RecordResponse, error) {
	issueType, err := enums.ParseIssueType(input.IssueType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid issue type")
	}

	exists, err := s.repo.VendorExists(ctx, input.VendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}

	status := defaultFollowupStatus
	if input.FollowupStatus != nil && strings.TrimSpace(*input.FollowupStatus) != "" {
		status = strings.TrimSpace(*input.FollowupStatus)
	}

	record := &models.FollowupRecord{
		VendorID:       input.VendorID,
		IssueType:      issueType,
		FollowupStatus: status,
		Subject:        strings.TrimSpace(input.Subject),
		Body:           input.Body,
		FollowupStage:  input.FollowupStage,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create followup record")
	}
	return toRecordResponse(record), nil
}

// GetRecord treats soft-deleted rows as absent.
func (s *service) GetRecord(ctx context.Context, id uint) (*RecordResponse, error) {
	record, err := s.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecordResponse(record), nil
}

func (s *service) ListRecords(ctx context.Context, filter ListFilter) ([]RecordResponse, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list followup records")
	}
	items := make([]RecordResponse, len(rows))
	for i := range rows {
		items[i] = *toRecordResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateRecord(ctx context.Context, id uint, input UpdateRecordRequest) (*RecordResponse, error) {
	record, err := s.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IssueType != nil {
		issueType, parseErr := enums.ParseIssueType(*input.IssueType)
		if parseErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid issue type")
		}
		record.IssueType = issueType
	}
	if input.FollowupStatus != nil {
		record.FollowupStatus = strings.TrimSpace(*input.FollowupStatus)
	}
	if input.Subject != nil {
		record.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.Body != nil {
		record.Body = *input.Body
	}
	if input.FollowupStage != nil {
		record.FollowupStage = input.FollowupStage
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update followup record")
	}
	return toRecordResponse(record), nil
}

// DeleteRecord flips is_deleted; the row stays for the status projection.
func (s *service) DeleteRecord(ctx context.Context, id uint) error {
	record, err := s.findVisible(ctx, id)
	if err != nil {
		return err
	}
	record.IsDeleted = true
	if err := s.repo.Save(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete followup record")
	}
	return nil
}

func (s *service) findVisible(ctx context.Context, id uint) (*models.FollowupRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "followup record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup followup record")
	}
	if record.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "followup record not found")
	}
	return record, nil
}
