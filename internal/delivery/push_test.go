// internal/delivery/push_test.go
package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-notifier/internal/models"
)

type mockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func pushNotification() models.Notification {
	return models.Notification{
		ID:      "notif-1",
		UserID:  "user-a",
		Kind:    models.TriggerNewMatch,
		Title:   "New padel match",
		Message: "Elena organised a new match.",
		Link:    "/matches/match-1",
		MatchID: "match-1",
	}
}

func TestPushPublisher_PublishesToTopic(t *testing.T) {
	var captured *sns.PublishInput
	client := &mockSNS{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{}, nil
		},
	}

	p := NewPushPublisherWithClient(client, "arn:aws:sns:eu-west-1:123:notifications")
	require.NoError(t, p.Publish(context.Background(), pushNotification()))

	require.NotNil(t, captured)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:notifications", *captured.TopicArn)
	assert.Equal(t, "New padel match", *captured.Subject)
	assert.Equal(t, "user-a", *captured.MessageAttributes["userId"].StringValue)
	assert.Equal(t, "new_match", *captured.MessageAttributes["kind"].StringValue)

	var body models.Notification
	require.NoError(t, json.Unmarshal([]byte(*captured.Message), &body))
	assert.Equal(t, "notif-1", body.ID)
	assert.Equal(t, "/matches/match-1", body.Link)
}

func TestPushPublisher_ClientError(t *testing.T) {
	client := &mockSNS{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	p := NewPushPublisherWithClient(client, "arn:topic")
	assert.Error(t, p.Publish(context.Background(), pushNotification()))
}
