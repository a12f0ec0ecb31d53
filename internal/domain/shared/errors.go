package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrNoDocuments        = NewDomainError("NO_DOCUMENTS", "At least one document must be selected")
	ErrNoOffsets          = NewDomainError("NO_OFFSETS", "At least one day offset is required")
	ErrNonPositiveTarget  = NewDomainError("NON_POSITIVE_TARGET", "Refinancing target must be positive")
	ErrCurrencyMismatch   = NewDomainError("CURRENCY_MISMATCH", "Amounts are in different currencies")
	ErrValidationFailed   = NewDomainError("VALIDATION_FAILED", "One or more instruments have missing or invalid fields")
	ErrUnknownMethod      = NewDomainError("UNKNOWN_METHOD", "Unknown payment method")
	ErrSameDayRefinancing = NewDomainError("SAME_DAY_REFINANCING", "Cannot refinance while a same-day document is selected")
)
