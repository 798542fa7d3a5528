package service

import (
	"fmt"
	"strings"

	"github.com/mtlprog/taskdesk/internal/config"
	"github.com/mtlprog/taskdesk/internal/domain"
)

// Field names reported in validation errors. They match the public API field names.
const (
	FieldComplaintNumber = "complaint_number"
	FieldRemarks         = "remarks"
	FieldStatus          = "status"
	FieldCreatedBy       = "created_by"
	FieldSkip            = "skip"
	FieldLimit           = "limit"
)

// RequireNonEmpty rejects values that are empty or whitespace only.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "must not be empty")
	}
	return nil
}

// ValidateStatus rejects statuses outside the recognized set.
func ValidateStatus(status domain.TaskStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError(FieldStatus, fmt.Sprintf(
			"must be one of %s, got %q", joinStatuses(), status))
	}
	return nil
}

// ValidatePagination checks skip >= 0 and 1 <= limit <= maxLimit.
// Oversized pages are rejected rather than clamped.
func ValidatePagination(skip, limit, maxLimit int) error {
	if skip < 0 {
		return domain.NewValidationError(FieldSkip, "must be greater than or equal to 0")
	}
	if limit < 1 || limit > maxLimit {
		return domain.NewValidationError(FieldLimit, fmt.Sprintf("must be between 1 and %d", maxLimit))
	}
	return nil
}

// ValidateCreate checks the fields of a new task.
func ValidateCreate(params CreateTaskParams) error {
	if err := RequireNonEmpty(FieldComplaintNumber, params.ComplaintNumber); err != nil {
		return err
	}
	if err := RequireNonEmpty(FieldCreatedBy, params.CreatedBy); err != nil {
		return err
	}
	if params.Status != nil {
		if err := ValidateStatus(*params.Status); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePatch checks a partial update. An empty patch is a caller error.
func ValidatePatch(patch domain.TaskPatch) error {
	if patch.IsEmpty() {
		return domain.NewValidationError("", "update must change at least one field")
	}
	if patch.ComplaintNumber != nil {
		if err := RequireNonEmpty(FieldComplaintNumber, *patch.ComplaintNumber); err != nil {
			return err
		}
	}
	if patch.CreatedBy != nil {
		if err := RequireNonEmpty(FieldCreatedBy, *patch.CreatedBy); err != nil {
			return err
		}
	}
	if patch.Status != nil {
		if err := ValidateStatus(*patch.Status); err != nil {
			return err
		}
	}
	return nil
}

// ValidateList checks list parameters against the configured maximum page size.
func ValidateList(params ListTasksParams) error {
	if err := ValidatePagination(params.Skip, params.Limit, config.MaxListLimit); err != nil {
		return err
	}
	if params.Status != nil {
		if err := ValidateStatus(*params.Status); err != nil {
			return err
		}
	}
	return nil
}

func joinStatuses() string {
	statuses := domain.TaskStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
