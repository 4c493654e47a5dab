package enums

import "fmt"

// IssueType classifies why a followup was raised against a vendor.
type IssueType string

const (
	IssueTypeMissingData     IssueType = "missing_data"
	IssueTypeIncorrectFile   IssueType = "incorrect_file"
	IssueTypeDelayedResponse IssueType = "delayed_response"
	IssueTypeClarification   IssueType = "clarification"
)

var validIssueTypes = []IssueType{
	IssueTypeMissingData,
	IssueTypeIncorrectFile,
	IssueTypeDelayedResponse,
	IssueTypeClarification,
}

// String implements fmt.Stringer.
func (i IssueType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known IssueType.
func (i IssueType) IsValid() bool {
	for _, candidate := range validIssueTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseIssueType converts raw input into an IssueType.
func ParseIssueType(value string) (IssueType, error) {
	for _, candidate := range validIssueTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue type %q", value)
}
