package pub

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestMessageAttributes(t *testing.T) {
	attrs := messageAttributes()
	assert.Equal(t, "application/json", aws.ToString(attrs["content-type"].StringValue))
	assert.Equal(t, EventSource, aws.ToString(attrs["source"].StringValue))
	assert.Equal(t, "String", aws.ToString(attrs["source"].DataType))
}
