// internal/messaging/sms.go
package messaging

import (
	"context"

	"return-notify-workers/internal/common/logger"
	"return-notify-workers/internal/common/metrics"
	"return-notify-workers/internal/localization"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSService is the SNS surface used by the SMS notifier, extracted for
// mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Renderer renders a template key for a seller; satisfied by
// localization.Localizer.
type Renderer interface {
	Render(ctx context.Context, key string, params map[string]interface{}, sellerID int) (string, error)
}

type SMSNotifier struct {
	sns      SNSService
	renderer Renderer
	senderID string
	logger   logger.Logger
}

func NewSMSNotifier(svc SNSService, renderer Renderer, senderID string, log logger.Logger) *SMSNotifier {
	return &SMSNotifier{
		sns:      svc,
		renderer: renderer,
		senderID: senderID,
		logger:   log,
	}
}

// Send publishes a status-change SMS for a contractor. It returns whether
// the message went out and an error string for the caller's result; both
// mirror the sub-result contract of the return-status operation.
func (n *SMSNotifier) Send(ctx context.Context, sellerID, contractorID int, event string, targetStatus int, templateData map[string]interface{}, mobile string) (bool, string) {
	text, err := n.renderer.Render(ctx, localization.KeyComplaintClientSmsBody, templateData, sellerID)
	if err != nil {
		return false, err.Error()
	}

	input := &sns.PublishInput{
		PhoneNumber: aws.String(mobile),
		Message:     aws.String(text),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event),
			},
		},
	}
	if n.senderID != "" {
		input.MessageAttributes["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(n.senderID),
		}
	}

	if _, err := n.sns.Publish(ctx, input); err != nil {
		metrics.NotificationSendErrors.WithLabelValues("sms").Inc()
		n.logger.Error("sms send failed", map[string]interface{}{
			"sellerId":     sellerID,
			"contractorId": contractorID,
			"event":        event,
			"targetStatus": targetStatus,
			"error":        err.Error(),
		})
		return false, err.Error()
	}

	n.logger.Info("sms dispatched", map[string]interface{}{
		"sellerId":     sellerID,
		"contractorId": contractorID,
		"event":        event,
		"targetStatus": targetStatus,
	})
	return true, ""
}
