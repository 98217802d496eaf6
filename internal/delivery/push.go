// internal/delivery/push.go
package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"padel-notifier/internal/models"
)

// SNSAPI is the slice of the SNS client the publisher uses, defined for
// mocking.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// PushPublisher fans notifications out to an SNS topic. Subscribers filter on
// the userId message attribute to route pushes to the right device.
type PushPublisher struct {
	client   SNSAPI
	topicARN string
}

func NewPushPublisher(ctx context.Context, region, topicARN string) (*PushPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &PushPublisher{client: sns.NewFromConfig(cfg), topicARN: topicARN}, nil
}

// NewPushPublisherWithClient wires an explicit client, used by tests.
func NewPushPublisherWithClient(client SNSAPI, topicARN string) *PushPublisher {
	return &PushPublisher{client: client, topicARN: topicARN}
}

func (p *PushPublisher) Publish(ctx context.Context, notification models.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(notification.Title),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"userId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(notification.UserID),
			},
			"kind": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(notification.Kind)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish to SNS: %w", err)
	}
	return nil
}
