// internal/common/errors/errors.go

// Package errors provides structured error handling for the return-status
// notification workers, including conversion to BPMN errors for the
// workflow engine boundary.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Error Types
// ==========================

// ErrorCode identifies a failure class of the return-status operation.
type ErrorCode string

const (
	// Caller input errors (status 400): the request itself is unusable.
	ErrCodeEmptyResellerID       ErrorCode = "EMPTY_RESELLER_ID"
	ErrCodeEmptyNotificationType ErrorCode = "EMPTY_NOTIFICATION_TYPE"
	ErrCodeSellerNotFound        ErrorCode = "SELLER_NOT_FOUND"
	ErrCodeClientNotFound        ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeEmployeeNotFound      ErrorCode = "EMPLOYEE_NOT_FOUND"

	// Internal consistency errors (status 500): the assembled template
	// payload cannot produce a valid notification.
	ErrCodeTemplateDataIncomplete ErrorCode = "TEMPLATE_DATA_INCOMPLETE"

	// Infrastructure errors: a lookup collaborator failed, retry may help.
	ErrCodeLookupFailed ErrorCode = "LOOKUP_FAILED"
)

// OperationError is a structured failure of the return-status operation.
// Status carries the caller/internal classification: 400 for input errors,
// 500 for template-consistency and infrastructure errors.
type OperationError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"status"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("OperationError[%s]: %s", e.Code, e.Message)
}

// Is makes errors.Is match on the error code.
func (e *OperationError) Is(target error) bool {
	var oe *OperationError
	if errors.As(target, &oe) {
		return e.Code == oe.Code
	}
	return false
}

// AsOperationError unwraps err into an *OperationError if it is one.
func AsOperationError(err error) (*OperationError, bool) {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewEmptyResellerIDError reports a request with no resellerId.
func NewEmptyResellerIDError() *OperationError {
	return &OperationError{
		Code:      ErrCodeEmptyResellerID,
		Message:   "Empty resellerId",
		Status:    400,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyNotificationTypeError reports a missing or unknown notification type.
func NewEmptyNotificationTypeError(got int) *OperationError {
	return &OperationError{
		Code:      ErrCodeEmptyNotificationType,
		Message:   "Empty notificationType",
		Details:   fmt.Sprintf("notificationType: %d", got),
		Status:    400,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSellerNotFoundError reports an unknown reseller.
func NewSellerNotFoundError(resellerID int) *OperationError {
	return &OperationError{
		Code:      ErrCodeSellerNotFound,
		Message:   "Seller not found!",
		Details:   fmt.Sprintf("resellerId: %d", resellerID),
		Status:    400,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewClientNotFoundError covers all three client failure cases: missing,
// not a customer, or owned by a different reseller. They are deliberately
// indistinguishable in the error.
func NewClientNotFoundError(clientID int) *OperationError {
	return &OperationError{
		Code:      ErrCodeClientNotFound,
		Message:   "Client not found!",
		Details:   fmt.Sprintf("clientId: %d", clientID),
		Status:    400,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmployeeNotFoundError reports a missing creator or expert.
func NewEmployeeNotFoundError(role string, employeeID int) *OperationError {
	return &OperationError{
		Code:      ErrCodeEmployeeNotFound,
		Message:   "Employee not found!",
		Details:   fmt.Sprintf("role: %s, employeeId: %d", role, employeeID),
		Status:    400,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateDataIncompleteError names the first empty template field.
func NewTemplateDataIncompleteError(field string) *OperationError {
	return &OperationError{
		Code:      ErrCodeTemplateDataIncomplete,
		Message:   fmt.Sprintf("Template Data (%s) is empty!", field),
		Details:   fmt.Sprintf("field: %s", field),
		Status:    500,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLookupFailedError wraps an infrastructure failure from a lookup
// collaborator. Retryable, unlike the validation errors.
func NewLookupFailedError(entity string, err error) *OperationError {
	return &OperationError{
		Code:      ErrCodeLookupFailed,
		Message:   fmt.Sprintf("Lookup of %s failed", entity),
		Details:   err.Error(),
		Status:    500,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Conversion to BPMN
// ==========================

// GetRetryCount returns the retry budget per error code; only
// infrastructure failures are worth retrying.
func GetRetryCount(code ErrorCode) int {
	if code == ErrCodeLookupFailed {
		return 3
	}
	return 0
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// ConvertToBPMNError converts an OperationError to a BPMNError for the
// workflow engine.
func ConvertToBPMNError(opErr *OperationError) *BPMNError {
	retries := GetRetryCount(opErr.Code)
	if !opErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(opErr.Code),
		Message:   opErr.Message,
		Details:   opErr.Details,
		Retryable: opErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"status":    opErr.Status,
			"timestamp": opErr.Timestamp.Format(time.RFC3339),
		},
	}
}
