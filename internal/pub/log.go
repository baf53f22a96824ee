package pub

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type logPub struct {
	logger log.FieldLogger
}

// NewLog writes change events to the log instead of a broker.
func NewLog(logger log.FieldLogger) *logPub {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &logPub{logger: logger}
}

func (p *logPub) PublishRaw(_ context.Context, topic string, payload []byte) error {
	p.logger.WithField("topic", topic).Info(string(payload))
	return nil
}
