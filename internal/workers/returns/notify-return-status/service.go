// internal/workers/returns/notify-return-status/service.go
package notifyreturnstatus

import (
	"context"

	cerrors "return-notify-workers/internal/common/errors"
	"return-notify-workers/internal/common/logger"
	"return-notify-workers/internal/common/metrics"
	"return-notify-workers/internal/directory"
	"return-notify-workers/internal/localization"
	"return-notify-workers/internal/messaging"
)

// Collaborator interfaces, one per capability, extracted for substitution
// with test doubles.

type Directory interface {
	SellerByID(ctx context.Context, id int) (*directory.Seller, error)
	ContractorByID(ctx context.Context, id int) (*directory.Contractor, error)
	EmployeeByID(ctx context.Context, id int) (*directory.Employee, error)
	StatusName(ctx context.Context, id int) (string, error)
	EmailsByPermit(ctx context.Context, sellerID int, permit string) ([]string, error)
	SellerEmailFrom(ctx context.Context, sellerID int) (string, error)
}

type Renderer interface {
	Render(ctx context.Context, key string, params map[string]interface{}, sellerID int) (string, error)
}

type EmailSender interface {
	Send(ctx context.Context, batch []messaging.Email, tags messaging.Tags) error
}

type SMSSender interface {
	Send(ctx context.Context, sellerID, contractorID int, event string, targetStatus int, templateData map[string]interface{}, mobile string) (bool, string)
}

type ServiceDependencies struct {
	Directory Directory
	Renderer  Renderer
	Email     EmailSender
	SMS       SMSSender
	Logger    logger.Logger
}

// Service processes one goods-return status event: validates the request
// and its entities, assembles the template payload, notifies permitted
// employees by email and, on a qualifying status change, the client by
// email and SMS.
type Service struct {
	config   *Config
	dir      Directory
	renderer Renderer
	email    EmailSender
	sms      SMSSender
	logger   logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		dir:      deps.Directory,
		renderer: deps.Renderer,
		email:    deps.Email,
		sms:      deps.SMS,
		logger:   deps.Logger,
	}
}

// Execute runs the operation. Validation failures abort with no Result;
// once the template gate passes, send failures stay channel-local and are
// only visible as unset Result flags.
func (s *Service) Execute(ctx context.Context, input *Input) (*Result, error) {
	if err := validateRequest(input); err != nil {
		return nil, err
	}

	seller, err := s.dir.SellerByID(ctx, input.ResellerID)
	if err != nil {
		return nil, cerrors.NewLookupFailedError("seller", err)
	}
	if seller == nil {
		return nil, cerrors.NewSellerNotFoundError(input.ResellerID)
	}

	client, err := s.dir.ContractorByID(ctx, input.ClientID)
	if err != nil {
		return nil, cerrors.NewLookupFailedError("contractor", err)
	}
	if err := validateClient(client, input.ResellerID, input.ClientID); err != nil {
		return nil, err
	}

	creator, err := s.employee(ctx, "creator", input.CreatorID)
	if err != nil {
		return nil, err
	}
	expert, err := s.employee(ctx, "expert", input.ExpertID)
	if err != nil {
		return nil, err
	}

	differences, err := s.resolveDifferences(ctx, input)
	if err != nil {
		return nil, err
	}

	templateData := buildTemplateData(input, client, creator, expert, differences)
	if err := validateTemplateData(templateData); err != nil {
		return nil, err
	}

	emailFrom, err := s.dir.SellerEmailFrom(ctx, input.ResellerID)
	if err != nil {
		return nil, cerrors.NewLookupFailedError("sender address", err)
	}
	if emailFrom == "" {
		emailFrom = s.config.FromEmailFallback
	}

	result := &Result{}
	result.NotificationEmployeeByEmail = s.notifyEmployees(ctx, emailFrom, templateData, input.ResellerID)

	if input.NotificationType == NotificationTypeChange && input.Differences != nil && input.Differences.To != 0 {
		result.NotificationClientByEmail, result.NotificationClientBySms =
			s.notifyClient(ctx, emailFrom, client, templateData, input)
	}

	return result, nil
}

func (s *Service) employee(ctx context.Context, role string, id int) (*directory.Employee, error) {
	emp, err := s.dir.EmployeeByID(ctx, id)
	if err != nil {
		return nil, cerrors.NewLookupFailedError("employee", err)
	}
	if emp == nil {
		return nil, cerrors.NewEmployeeNotFoundError(role, id)
	}
	return emp, nil
}

// resolveDifferences produces the localized description of the change. A
// NEW event ignores any differences block; a CHANGE event without one
// resolves to "", which the template gate rejects downstream.
func (s *Service) resolveDifferences(ctx context.Context, input *Input) (string, error) {
	switch {
	case input.NotificationType == NotificationTypeNew:
		return s.renderer.Render(ctx, localization.KeyNewPositionAdded, nil, input.ResellerID)

	case input.NotificationType == NotificationTypeChange && input.Differences != nil:
		from, err := s.dir.StatusName(ctx, input.Differences.From)
		if err != nil {
			return "", cerrors.NewLookupFailedError("status", err)
		}
		to, err := s.dir.StatusName(ctx, input.Differences.To)
		if err != nil {
			return "", cerrors.NewLookupFailedError("status", err)
		}
		return s.renderer.Render(ctx, localization.KeyPositionStatusHasChanged, map[string]interface{}{
			"FROM": from,
			"TO":   to,
		}, input.ResellerID)
	}

	return "", nil
}

// buildTemplateData assembles the flat payload for the notification
// templates. Pure; no I/O.
func buildTemplateData(input *Input, client *directory.Contractor, creator, expert *directory.Employee, differences string) map[string]interface{} {
	clientName := client.FullName()
	if clientName == "" {
		clientName = client.Name
	}

	return map[string]interface{}{
		FieldComplaintID:       input.ComplaintID,
		FieldComplaintNumber:   input.ComplaintNumber,
		FieldCreatorID:         input.CreatorID,
		FieldCreatorName:       creator.FullName(),
		FieldExpertID:          input.ExpertID,
		FieldExpertName:        expert.FullName(),
		FieldClientID:          input.ClientID,
		FieldClientName:        clientName,
		FieldConsumptionID:     input.ConsumptionID,
		FieldConsumptionNumber: input.ConsumptionNumber,
		FieldAgreementNumber:   input.AgreementNumber,
		FieldDate:              input.Date,
		FieldDifferences:       differences,
	}
}

// validateTemplateData is the hard gate before any send: every field must
// be non-zero/non-blank.
func validateTemplateData(data map[string]interface{}) *cerrors.OperationError {
	for _, field := range templateFieldOrder {
		switch v := data[field].(type) {
		case int:
			if v == 0 {
				return cerrors.NewTemplateDataIncompleteError(field)
			}
		case string:
			if v == "" {
				return cerrors.NewTemplateDataIncompleteError(field)
			}
		}
	}
	return nil
}

// notifyEmployees emails every address permitted to receive return-status
// events for the reseller. Returns whether at least one send was
// dispatched; transport outcome is not surfaced.
func (s *Service) notifyEmployees(ctx context.Context, emailFrom string, templateData map[string]interface{}, resellerID int) bool {
	emails, err := s.dir.EmailsByPermit(ctx, resellerID, PermitGoodsReturn)
	if err != nil {
		s.logger.Warn("permitted email lookup failed", map[string]interface{}{
			"resellerId": resellerID,
			"error":      err.Error(),
		})
		return false
	}

	if emailFrom == "" || len(emails) == 0 {
		return false
	}

	subject, err := s.renderer.Render(ctx, localization.KeyComplaintEmployeeEmailSubject, templateData, resellerID)
	if err != nil {
		s.logger.Error("employee subject render failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	body, err := s.renderer.Render(ctx, localization.KeyComplaintEmployeeEmailBody, templateData, resellerID)
	if err != nil {
		s.logger.Error("employee body render failed", map[string]interface{}{"error": err.Error()})
		return false
	}

	batch := make([]messaging.Email, 0, len(emails))
	for _, to := range emails {
		batch = append(batch, messaging.Email{
			From:    emailFrom,
			To:      to,
			Subject: subject,
			Body:    body,
		})
	}

	// Fire-and-forget: a transport error is logged inside the client and
	// does not lower the flag.
	_ = s.email.Send(ctx, batch, messaging.Tags{
		SellerID: resellerID,
		Event:    EventChangeReturnStatus,
	})

	metrics.NotificationsSent.WithLabelValues("email", "employee").Add(float64(len(batch)))
	return true
}

// notifyClient emails and/or SMS-notifies the client. Only called for a
// CHANGE event with a target status.
func (s *Service) notifyClient(ctx context.Context, emailFrom string, client *directory.Contractor, templateData map[string]interface{}, input *Input) (bool, SmsResult) {
	emailSent := false

	if emailFrom != "" && client.Email != "" {
		subject, sErr := s.renderer.Render(ctx, localization.KeyComplaintClientEmailSubject, templateData, input.ResellerID)
		body, bErr := s.renderer.Render(ctx, localization.KeyComplaintClientEmailBody, templateData, input.ResellerID)
		if sErr != nil || bErr != nil {
			s.logger.Error("client email render failed", map[string]interface{}{
				"subjectError": sErr,
				"bodyError":    bErr,
			})
		} else {
			_ = s.email.Send(ctx, []messaging.Email{{
				From:    emailFrom,
				To:      client.Email,
				Subject: subject,
				Body:    body,
			}}, messaging.Tags{
				SellerID:     input.ResellerID,
				Event:        EventChangeReturnStatus,
				ContractorID: client.ID,
				TargetStatus: input.Differences.To,
			})

			metrics.NotificationsSent.WithLabelValues("email", "client").Inc()
			emailSent = true
		}
	}

	smsResult := SmsResult{}
	if client.Mobile != "" {
		sent, errMsg := s.sms.Send(ctx, input.ResellerID, client.ID, EventChangeReturnStatus, input.Differences.To, templateData, client.Mobile)
		smsResult.IsSent = sent
		if errMsg != "" {
			smsResult.Message = errMsg
		}
		if sent {
			metrics.NotificationsSent.WithLabelValues("sms", "client").Inc()
		}
	}

	return emailSent, smsResult
}
