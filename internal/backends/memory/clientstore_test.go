package memory

import (
	"clientreg/internal/backends/storetest"
	"clientreg/internal/ports"
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestMemoryClientStore(t *testing.T) {
	suite.Run(t, &storetest.ClientStoreSuite{
		NewStore: func() ports.ClientStore { return NewClientStore() },
	})
}
