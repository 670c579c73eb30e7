package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/fredjean/fredjean-net-contact/internal/classify"
	"github.com/fredjean/fredjean-net-contact/internal/contact"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

// ErrSendFailed wraps every email dispatch failure. Callers match it
// with errors.Is.
var ErrSendFailed = errors.New("email dispatch failed")

// SESClient is the subset of the SES v2 API used by the notifier.
type SESClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

var _ SESClient = (*sesv2.Client)(nil)

// Notifier delivers accepted submissions to the configured recipient.
type Notifier struct {
	client    SESClient
	sender    string
	recipient string
	wordCount int
	logger    logging.Logger
	now       func() time.Time
}

func NewNotifier(client SESClient, sender, recipient string, wordCount int, logger logging.Logger) *Notifier {
	return &Notifier{
		client:    client,
		sender:    sender,
		recipient: recipient,
		wordCount: wordCount,
		logger:    logger,
		now:       time.Now,
	}
}

// Send dispatches one notification email and returns the provider
// message id. The reply-to header points back at the submitter so the
// recipient can answer directly.
func (n *Notifier) Send(ctx context.Context, sub *contact.Submission, result *classify.Result) (string, error) {
	subject := Subject(sub, result, n.wordCount)
	body := Body(sub, result, n.now())

	out, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination:      &types.Destination{ToAddresses: []string{n.recipient}},
		ReplyToAddresses: []string{fmt.Sprintf("%s <%s>", sub.Name, sub.Email)},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	id := aws.ToString(out.MessageId)
	n.logger.Info(ctx, "notification sent", "message_id", id, "recipient", n.recipient)
	return id, nil
}
