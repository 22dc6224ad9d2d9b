package response

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/query"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/validator"
)

// Response is the standardized result envelope handed to the caller.
type Response struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	// Detail carries raw store text for diagnostics. It never drives behavior.
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	// Data is the rows to render. It is nil when the display should be left
	// as it is.
	Data     []model.StudentRecord `json:"data"`
	Affected int64                 `json:"affected"`
	View     model.ViewSpec        `json:"view"`
	Metadata Metadata              `json:"metadata"`
}

// Metadata includes operation tracing and timing.
type Metadata struct {
	OperationID string `json:"operation_id"`
	Timestamp   string `json:"timestamp"`
}

// OK reports whether the operation succeeded.
func (r *Response) OK() bool { return r.Status == StatusSuccess }

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success builds a successful response carrying rows and an affected count.
func Success(data []model.StudentRecord, affected int64) *Response {
	return &Response{
		Status:   StatusSuccess,
		Message:  GetMessage(StatusSuccess),
		Data:     data,
		Affected: affected,
		Metadata: buildMetadata(),
	}
}

// Info builds an informational, non-error response such as not-found.
func Info(status Status, message string) *Response {
	if message == "" {
		message = GetMessage(status)
	}
	return &Response{
		Status:   status,
		Message:  message,
		Metadata: buildMetadata(),
	}
}

// FromError translates an error from the validate, build or execute steps
// into a response. The error kind alone decides the status.
func FromError(err error) *Response {
	r := &Response{Metadata: buildMetadata()}

	var (
		invalid  *validator.InvalidInputError
		badSort  *query.UnsupportedSortError
		storeErr *repository.StoreError
	)
	switch {
	case errors.As(err, &invalid):
		r.Status = StatusValidationFailed
		r.Fields = map[string]string{invalid.Field: invalid.Message}
	case errors.As(err, &badSort):
		r.Status = StatusValidationFailed
		r.Fields = map[string]string{badSort.Param: badSort.Error()}
	case errors.Is(err, query.ErrNothingToUpdate):
		r.Status = StatusNothingToUpdate
	case errors.Is(err, repository.ErrDuplicateID):
		r.Status = StatusDuplicateID
	case errors.As(err, &storeErr):
		r.Status = StatusStoreError
		r.Detail = storeErr.Err.Error()
	default:
		r.Status = StatusStoreError
		r.Detail = err.Error()
	}
	r.Message = GetMessage(r.Status)
	return r
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func buildMetadata() Metadata {
	return Metadata{
		OperationID: uuid.New().String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}
