package flow

import (
	"clientreg/internal/backends/memory"
	"clientreg/internal/ports"
	"clientreg/internal/types"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

const TestTopic = "arn:aws:sns:us-east-1:000000000000:clientreg-test"

type UnitTestSuite struct {
	suite.Suite

	clientStore ports.ClientStore
	publisher   *TestPublish
	dispatcher  *Dispatcher
}

// TestPublish records every payload it is handed.
type TestPublish struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	fail     bool
}

func (p *TestPublish) PublishRaw(_ context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *TestPublish) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func (s *UnitTestSuite) SetupTest() {
	RestoreTimeNow()
	s.clientStore = memory.NewClientStore()
	s.publisher = &TestPublish{}
	s.dispatcher = NewDispatcher(s.clientStore, s.publisher, TestTopic, "unit")
}

func (s *UnitTestSuite) dispatch(req Request) Result {
	res, err := s.dispatcher.Dispatch(context.Background(), req)
	s.Require().NoError(err)
	return res
}

func (s *UnitTestSuite) registerAna() {
	s.dispatch(Request{
		Action: types.ActionRegister,
		Fields: types.ClientFields{Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234"},
	})
}

func TestUnitTestSuite(t *testing.T) {
	suite.Run(t, new(UnitTestSuite))
}
