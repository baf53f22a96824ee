package pub

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// EventSource tags every message so subscribers can filter on it.
const EventSource = "clientreg"

type snsPub struct{ cli *sns.Client }

// NewSNS publishes change events to an SNS topic ARN.
func NewSNS(c *sns.Client) *snsPub { return &snsPub{cli: c} }

func (s *snsPub) PublishRaw(ctx context.Context, arn string, payload []byte) error {
	_, err := s.cli.Publish(ctx, &sns.PublishInput{
		TopicArn:          &arn,
		Subject:           aws.String("client changed"),
		Message:           aws.String(string(payload)),
		MessageAttributes: messageAttributes(),
	})
	return err
}

func messageAttributes() map[string]types.MessageAttributeValue {
	return map[string]types.MessageAttributeValue{
		"content-type": {DataType: aws.String("String"), StringValue: aws.String("application/json")},
		"source":       {DataType: aws.String("String"), StringValue: aws.String(EventSource)},
	}
}
