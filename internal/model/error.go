package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ErrorKind classifies domain errors so the HTTP boundary can pick a status code.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindInvalidTransition
	KindNotFound
	KindUnauthorized
	KindForbidden
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidTableState  = "INVALID_TABLE_STATE"
	ErrCodeInvalidCapacity    = "INVALID_CAPACITY"
	ErrCodeInvalidTableNumber = "INVALID_TABLE_NUMBER"
	ErrCodeTableNumberTaken   = "TABLE_NUMBER_TAKEN"
	ErrCodeCategoryNameTaken  = "CATEGORY_NAME_TAKEN"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeDishUnavailable    = "DISH_UNAVAILABLE"
	ErrCodeDishInUse          = "DISH_IN_USE"
	ErrCodeMissingEmployee    = "MISSING_EMPLOYEE"
	ErrCodeInvalidTransition  = "INVALID_STATE_TRANSITION"
	ErrCodeOrderNotPending    = "ORDER_NOT_PENDING"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeDishNotFound       = "DISH_NOT_FOUND"
	ErrCodeTableNotFound      = "TABLE_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeOrderItemNotFound  = "ORDER_ITEM_NOT_FOUND"
	ErrCodeEmployeeNotFound   = "EMPLOYEE_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is matches sentinels even after they have been re-created with a
// more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity    = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPrice       = NewDomainError(KindValidation, ErrCodeInvalidPrice, "Price must be zero or greater")
	ErrInvalidStatus      = NewDomainError(KindValidation, ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidTableState  = NewDomainError(KindValidation, ErrCodeInvalidTableState, "Unknown table state")
	ErrInvalidCapacity    = NewDomainError(KindValidation, ErrCodeInvalidCapacity, "Capacity must be greater than zero")
	ErrInvalidTableNumber = NewDomainError(KindValidation, ErrCodeInvalidTableNumber, "Table number must be greater than zero")
	ErrTableNumberTaken   = NewDomainError(KindValidation, ErrCodeTableNumberTaken, "Table number is already in use")
	ErrCategoryNameTaken  = NewDomainError(KindValidation, ErrCodeCategoryNameTaken, "Category name is already in use")
	ErrUsernameTaken      = NewDomainError(KindValidation, ErrCodeUsernameTaken, "Username is already in use")
	ErrDishUnavailable    = NewDomainError(KindValidation, ErrCodeDishUnavailable, "Dish is not available")
	ErrDishInUse          = NewDomainError(KindValidation, ErrCodeDishInUse, "Dish is referenced by orders; mark it unavailable instead")
	ErrMissingEmployee    = NewDomainError(KindValidation, ErrCodeMissingEmployee, "An employee is required to create an order")

	ErrInvalidTransition = NewDomainError(KindInvalidTransition, ErrCodeInvalidTransition, "Order status transition is not allowed")
	ErrOrderNotPending   = NewDomainError(KindInvalidTransition, ErrCodeOrderNotPending, "Order is closed and can no longer be modified")

	ErrCategoryNotFound  = NewDomainError(KindNotFound, ErrCodeCategoryNotFound, "Category not found")
	ErrDishNotFound      = NewDomainError(KindNotFound, ErrCodeDishNotFound, "Dish not found")
	ErrTableNotFound     = NewDomainError(KindNotFound, ErrCodeTableNotFound, "Table not found")
	ErrOrderNotFound     = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrOrderItemNotFound = NewDomainError(KindNotFound, ErrCodeOrderItemNotFound, "Order item not found")
	ErrEmployeeNotFound  = NewDomainError(KindNotFound, ErrCodeEmployeeNotFound, "Employee not found")

	ErrUnauthorised = NewDomainError(KindUnauthorized, ErrCodeUnauthorised, "Authentication credentials were not provided or are invalid")
	ErrForbidden    = NewDomainError(KindForbidden, ErrCodeForbidden, "Employee account is inactive")
)

// ValidationError builds a validation-kind error for a missing or malformed field.
func ValidationError(message string) *DomainError {
	return NewDomainError(KindValidation, ErrCodeMissingField, message)
}

// AsDomainError extracts a DomainError from err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
