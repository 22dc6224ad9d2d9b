package response

// Status is a typed outcome code for consistent result identification.
type Status string

const (
	StatusSuccess Status = "SUCCESS"

	// ─── Informational ─────────────────────────────────────────────────
	StatusNotFound        Status = "NOT_FOUND"
	StatusNothingToUpdate Status = "NOTHING_TO_UPDATE"

	// ─── Validation ────────────────────────────────────────────────────
	StatusValidationFailed Status = "VALIDATION_FAILED"

	// ─── Store ─────────────────────────────────────────────────────────
	StatusDuplicateID Status = "DUPLICATE_ID"
	StatusStoreError  Status = "STORE_ERROR"
)

// Severity tells the caller how prominently to present an outcome.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityFailure
	SeverityCritical
)

// Severity returns how prominently s should be surfaced.
func (s Status) Severity() Severity {
	switch s {
	case StatusSuccess:
		return SeverityNone
	case StatusNotFound, StatusNothingToUpdate, StatusValidationFailed:
		return SeverityInfo
	case StatusDuplicateID:
		return SeverityFailure
	default:
		return SeverityCritical
	}
}

// GetMessage returns a human-readable message for a given status.
func GetMessage(s Status) string {
	switch s {
	case StatusSuccess:
		return "Done."
	case StatusNotFound:
		return "No matching record."
	case StatusNothingToUpdate:
		return "No valid name or grade entered. Provide the data to update."
	case StatusValidationFailed:
		return "Invalid input. Check the id, name and grade fields."
	case StatusDuplicateID:
		return "A student with this id already exists."
	case StatusStoreError:
		return "The student database reported an error."
	default:
		return "An unexpected error occurred."
	}
}
