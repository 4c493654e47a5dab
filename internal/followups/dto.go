package followups

import (
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// CreateRecordRequest opens a followup against a vendor. followup_status
// defaults to "requested" when omitted.
type CreateRecordRequest struct {
	VendorID       uint    `json:"vendor_id" validate:"required"`
	IssueType      string  `json:"issue_type" validate:"required,oneof=missing_data incorrect_file delayed_response clarification"`
	FollowupStatus *string `json:"followup_status" validate:"omitempty,max=50"`
	Subject        string  `json:"subject" validate:"required,max=255"`
	Body           string  `json:"body" validate:"required"`
	FollowupStage  *string `json:"followup_stage" validate:"omitempty,max=100"`
}

// UpdateRecordRequest is a partial update; nil fields stay unchanged.
type UpdateRecordRequest struct {
	IssueType      *string `json:"issue_type" validate:"omitempty,oneof=missing_data incorrect_file delayed_response clarification"`
	FollowupStatus *string `json:"followup_status" validate:"omitempty,max=50"`
	Subject        *string `json:"subject" validate:"omitempty,max=255"`
	Body           *string `json:"body"`
	FollowupStage  *string `json:"followup_stage" validate:"omitempty,max=100"`
}

// ListFilter narrows record listings. Soft-deleted rows are excluded unless
// IncludeDeleted is set.
type ListFilter struct {
	VendorID       *uint
	IncludeDeleted bool
}

type RecordResponse struct {
	ID             uint      `json:"id"`
	VendorID       uint      `json:"vendor_id"`
	IssueType      string    `json:"issue_type"`
	FollowupStatus string    `json:"followup_status"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	FollowupStage  *string   `json:"followup_stage"`
	IsDeleted      bool      `json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DraftRequest asks the LLM collaborator for a followup email draft.
type DraftRequest struct {
	VendorName       string   `json:"vendor_name" validate:"required,max=255"`
	IssueType        string   `json:"issue_type" validate:"required,oneof=missing_data incorrect_file delayed_response clarification"`
	ContextNotes     *string  `json:"context_notes"`
	MissingItems     []string `json:"missingItems"`
	PreviousAttempts int      `json:"previous_attempts" validate:"omitempty,gte=1"`
	Tone             string   `json:"tone" validate:"omitempty,max=50"`
}

type DraftResponse struct {
	Subject            string `json:"subject"`
	Body               string `json:"body"`
	SuggestedSignature string `json:"suggested_signature"`
}

func toRecordResponse(r *models.FollowupRecord) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		ID:             r.ID,
		VendorID:       r.VendorID,
		IssueType:      string(r.IssueType),
		FollowupStatus: r.FollowupStatus,
		Subject:        r.Subject,
		Body:           r.Body,
		FollowupStage:  r.FollowupStage,
		IsDeleted:      r.IsDeleted,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
