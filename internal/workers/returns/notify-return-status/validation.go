// internal/workers/returns/notify-return-status/validation.go
package notifyreturnstatus

import (
	"fmt"

	cerrors "return-notify-workers/internal/common/errors"
	"return-notify-workers/internal/directory"

	"github.com/xeipuuv/gojsonschema"
)

// inputSchemaJSON type-checks the job variables before they are decoded.
// Nothing is required at this layer and extra workflow variables are
// allowed; the business checks in validateRequest own the required-field
// semantics so their error codes stay stable.
const inputSchemaJSON = `{
	"type": "object",
	"properties": {
		"resellerId":        {"type": "integer"},
		"notificationType":  {"type": "integer"},
		"clientId":          {"type": "integer"},
		"creatorId":         {"type": "integer"},
		"expertId":          {"type": "integer"},
		"complaintId":       {"type": "integer"},
		"complaintNumber":   {"type": "string"},
		"consumptionId":     {"type": "integer"},
		"consumptionNumber": {"type": "string"},
		"agreementNumber":   {"type": "string"},
		"date":              {"type": "string"},
		"differences": {
			"type": "object",
			"properties": {
				"from": {"type": "integer"},
				"to":   {"type": "integer"}
			}
		}
	},
	"additionalProperties": true
}`

// ValidateInputSchema checks raw job variables against the input schema.
func ValidateInputSchema(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(inputSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed: %v", errs)
	}

	return nil
}

// validateRequest enforces the required request fields.
func validateRequest(input *Input) *cerrors.OperationError {
	if input.ResellerID == 0 {
		return cerrors.NewEmptyResellerIDError()
	}
	if input.NotificationType != NotificationTypeNew && input.NotificationType != NotificationTypeChange {
		return cerrors.NewEmptyNotificationTypeError(input.NotificationType)
	}
	return nil
}

// validateClient is the single collapsed client check: the contractor must
// exist, be a customer, and belong to the requesting reseller. All three
// violations surface as the same error.
func validateClient(client *directory.Contractor, resellerID int, clientID int) *cerrors.OperationError {
	if client == nil || client.Type != directory.ContractorTypeCustomer || client.SellerID != resellerID {
		return cerrors.NewClientNotFoundError(clientID)
	}
	return nil
}
