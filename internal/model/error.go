package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeCategoryInUse      = "CATEGORY_IN_USE"
	ErrCodeCategoryExists     = "CATEGORY_EXISTS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUserExists         = "USER_EXISTS"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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

// Validation creates a domain error naming the first violated field rule.
func Validation(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrCategoryInUse      = NewDomainError(ErrCodeCategoryInUse, "Cannot delete category that has products")
	ErrCategoryExists     = NewDomainError(ErrCodeCategoryExists, "Category already exists")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrUserExists         = NewDomainError(ErrCodeUserExists, "A user with this email already exists")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
)
