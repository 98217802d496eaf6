// internal/delivery/email.go
package delivery

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"padel-notifier/internal/models"
	"padel-notifier/internal/store"
)

// SESAPI is the slice of the SES client the publisher uses, defined for
// mocking.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailPublisher mails the notification text to the recipient's profile
// address. Recipients without an address are silently skipped.
type EmailPublisher struct {
	client SESAPI
	store  store.Store
	from   string
}

func NewEmailPublisher(ctx context.Context, region, from string, s store.Store) (*EmailPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &EmailPublisher{client: ses.NewFromConfig(cfg), store: s, from: from}, nil
}

// NewEmailPublisherWithClient wires an explicit client, used by tests.
func NewEmailPublisherWithClient(client SESAPI, s store.Store, from string) *EmailPublisher {
	return &EmailPublisher{client: client, store: s, from: from}
}

func (p *EmailPublisher) Publish(ctx context.Context, notification models.Notification) error {
	profile, err := p.store.GetProfile(ctx, notification.UserID)
	if err != nil {
		return fmt.Errorf("lookup recipient profile: %w", err)
	}
	if profile == nil || profile.Email == "" {
		return nil
	}

	_, err = p.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{profile.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(notification.Title)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(notification.Message + "\n\n" + notification.Link)},
			},
		},
		Source: aws.String(p.from),
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
