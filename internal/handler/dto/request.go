package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mtlprog/taskdesk/internal/domain"
)

// ErrInvalidJSON marks request bodies that are not well-formed JSON of the expected shape.
var ErrInvalidJSON = errors.New("invalid JSON body")

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	ComplaintNumber string  `json:"complaint_number"`
	Remarks         *string `json:"remarks,omitempty"`
	Status          *string `json:"status,omitempty"`
	CreatedBy       string  `json:"created_by"`
}

// UpdateTaskRequest documents the body of PATCH/PUT /tasks/{id}. Every field is optional;
// "remarks": null clears the remarks. It is decoded with DecodeTaskPatch.
type UpdateTaskRequest struct {
	ComplaintNumber *string `json:"complaint_number,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`
	Status          *string `json:"status,omitempty"`
	CreatedBy       *string `json:"created_by,omitempty"`
}

// patchFields is the closed set of keys accepted in an update body.
var patchFields = map[string]struct{}{
	"complaint_number": {},
	"remarks":          {},
	"status":           {},
	"created_by":       {},
}

// DecodeCreateTask decodes a create body, rejecting unknown fields.
func DecodeCreateTask(r io.Reader) (CreateTaskRequest, error) {
	var req CreateTaskRequest

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if field, ok := unknownField(err); ok {
			return req, domain.NewValidationError(field, "is not a recognized field")
		}
		return req, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return req, nil
}

// DecodeTaskPatch decodes an update body key by key so that absent, null and
// present values stay distinguishable. Unknown keys are rejected.
func DecodeTaskPatch(r io.Reader) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return patch, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if raw == nil {
		return patch, fmt.Errorf("%w: body must be a JSON object", ErrInvalidJSON)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := patchFields[key]; !ok {
			return patch, domain.NewValidationError(key, "is not a recognized field")
		}
	}

	if v, ok := raw["complaint_number"]; ok {
		s, err := decodeRequiredString("complaint_number", v)
		if err != nil {
			return patch, err
		}
		patch.ComplaintNumber = &s
	}
	if v, ok := raw["created_by"]; ok {
		s, err := decodeRequiredString("created_by", v)
		if err != nil {
			return patch, err
		}
		patch.CreatedBy = &s
	}
	if v, ok := raw["status"]; ok {
		s, err := decodeRequiredString("status", v)
		if err != nil {
			return patch, err
		}
		status := domain.TaskStatus(s)
		patch.Status = &status
	}
	if v, ok := raw["remarks"]; ok {
		var remarks *string
		if err := json.Unmarshal(v, &remarks); err != nil {
			return patch, domain.NewValidationError("remarks", "must be a string or null")
		}
		patch.Remarks = domain.OptionalString{Set: true, Value: remarks}
	}

	return patch, nil
}

func decodeRequiredString(field string, v json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return "", domain.NewValidationError(field, "must not be null")
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", domain.NewValidationError(field, "must be a string")
	}
	return s, nil
}

// unknownField extracts the field name from encoding/json's DisallowUnknownFields error.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

// ListTasksFilters represents query parameters for GET /tasks.
type ListTasksFilters struct {
	Status    *string // ?status=pending
	CreatedBy *string // ?created_by=alice
	Skip      int     // ?skip=0
	Limit     int     // ?limit=100
}
