// internal/messaging/email.go

// Package messaging delivers rendered notifications through AWS. Email goes
// out via SES, SMS via SNS. Both senders are fire-and-forget from the
// operation's point of view: transport failures are logged and counted but
// the operation does not wait for delivery confirmation.
package messaging

import (
	"context"
	"strconv"

	"return-notify-workers/internal/common/logger"
	"return-notify-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"
)

// SESService is the SES surface used by the email client, extracted for
// mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Email is one outbound message.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Tags identify the business event behind a batch of emails.
// ContractorID and TargetStatus are only set for client-facing sends.
type Tags struct {
	SellerID     int
	Event        string
	ContractorID int
	TargetStatus int
}

type EmailClient struct {
	ses    SESService
	logger logger.Logger
}

func NewEmailClient(svc SESService, log logger.Logger) *EmailClient {
	return &EmailClient{
		ses:    svc,
		logger: log,
	}
}

// Send dispatches every message in the batch. Failed sends are logged and
// counted; the first transport error is returned for the caller's log but
// does not stop the rest of the batch.
func (c *EmailClient) Send(ctx context.Context, batch []Email, tags Tags) error {
	var firstErr error

	for _, msg := range batch {
		batchID := uuid.New().String()

		_, err := c.ses.SendEmail(ctx, &ses.SendEmailInput{
			Source: aws.String(msg.From),
			Destination: &types.Destination{
				ToAddresses: []string{msg.To},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body)},
				},
			},
			Tags: messageTags(tags),
		})
		if err != nil {
			metrics.NotificationSendErrors.WithLabelValues("email").Inc()
			c.logger.Error("email send failed", map[string]interface{}{
				"to":       msg.To,
				"event":    tags.Event,
				"sellerId": tags.SellerID,
				"batchId":  batchID,
				"error":    err.Error(),
			})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		c.logger.Info("email dispatched", map[string]interface{}{
			"to":       msg.To,
			"event":    tags.Event,
			"sellerId": tags.SellerID,
			"batchId":  batchID,
		})
	}

	return firstErr
}

func messageTags(tags Tags) []types.MessageTag {
	out := []types.MessageTag{
		{Name: aws.String("event"), Value: aws.String(tags.Event)},
		{Name: aws.String("seller_id"), Value: aws.String(strconv.Itoa(tags.SellerID))},
	}
	if tags.ContractorID != 0 {
		out = append(out, types.MessageTag{
			Name:  aws.String("contractor_id"),
			Value: aws.String(strconv.Itoa(tags.ContractorID)),
		})
	}
	if tags.TargetStatus != 0 {
		out = append(out, types.MessageTag{
			Name:  aws.String("target_status"),
			Value: aws.String(strconv.Itoa(tags.TargetStatus)),
		})
	}
	return out
}
