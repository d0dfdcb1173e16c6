// internal/workers/returns/notify-return-status/models.go
package notifyreturnstatus

// Notification types
const (
	NotificationTypeNew    = 1
	NotificationTypeChange = 2
)

// Event kind identifying this use case to the messaging collaborators.
const EventChangeReturnStatus = "change-return-status"

// Permit gating which employee addresses receive return-status events.
const PermitGoodsReturn = "tsGoodsReturn"

// Differences is the from/to status pair of a status-change event.
type Differences struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Input is the goods-return event as delivered in the job variables.
// Fields not present default to zero values; only the documented required
// checks reject them.
type Input struct {
	ResellerID        int          `json:"resellerId"`
	NotificationType  int          `json:"notificationType"`
	ClientID          int          `json:"clientId"`
	CreatorID         int          `json:"creatorId"`
	ExpertID          int          `json:"expertId"`
	ComplaintID       int          `json:"complaintId"`
	ComplaintNumber   string       `json:"complaintNumber"`
	ConsumptionID     int          `json:"consumptionId"`
	ConsumptionNumber string       `json:"consumptionNumber"`
	AgreementNumber   string       `json:"agreementNumber"`
	Date              string       `json:"date"`
	Differences       *Differences `json:"differences,omitempty"`
}

// SmsResult is the per-channel outcome of the client SMS. Message may be
// populated together with IsSent, depending on what the SMS collaborator
// reports.
type SmsResult struct {
	IsSent  bool   `json:"isSent"`
	Message string `json:"message"`
}

// Result carries the per-channel outcome of one processed event. All
// fields start false/empty and are only raised by a dispatched send.
type Result struct {
	NotificationEmployeeByEmail bool      `json:"notificationEmployeeByEmail"`
	NotificationClientByEmail   bool      `json:"notificationClientByEmail"`
	NotificationClientBySms     SmsResult `json:"notificationClientBySms"`
}

// Template data fields
const (
	FieldComplaintID       = "COMPLAINT_ID"
	FieldComplaintNumber   = "COMPLAINT_NUMBER"
	FieldCreatorID         = "CREATOR_ID"
	FieldCreatorName       = "CREATOR_NAME"
	FieldExpertID          = "EXPERT_ID"
	FieldExpertName        = "EXPERT_NAME"
	FieldClientID          = "CLIENT_ID"
	FieldClientName        = "CLIENT_NAME"
	FieldConsumptionID     = "CONSUMPTION_ID"
	FieldConsumptionNumber = "CONSUMPTION_NUMBER"
	FieldAgreementNumber   = "AGREEMENT_NUMBER"
	FieldDate              = "DATE"
	FieldDifferences       = "DIFFERENCES"
)

// templateFieldOrder fixes the iteration order of the completeness gate so
// the first offending field named in an error is deterministic.
var templateFieldOrder = []string{
	FieldComplaintID,
	FieldComplaintNumber,
	FieldCreatorID,
	FieldCreatorName,
	FieldExpertID,
	FieldExpertName,
	FieldClientID,
	FieldClientName,
	FieldConsumptionID,
	FieldConsumptionNumber,
	FieldAgreementNumber,
	FieldDate,
	FieldDifferences,
}
