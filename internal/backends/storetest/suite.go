// Package storetest holds the behavior every ports.ClientStore backend must share.
package storetest

import (
	"clientreg/internal/ports"
	"clientreg/internal/types"
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/suite"
)

// ClientStoreSuite runs against the store returned by NewStore.
// The store is cleared before each test.
type ClientStoreSuite struct {
	suite.Suite

	NewStore func() ports.ClientStore
	store    ports.ClientStore
}

func (s *ClientStoreSuite) SetupSuite() {
	s.store = s.NewStore()
}

func (s *ClientStoreSuite) SetupTest() {
	s.Require().NoError(s.store.ClearAll(context.Background()))
}

func (s *ClientStoreSuite) TearDownSuite() {
	_ = s.store.ClearAll(context.Background())
}

func (s *ClientStoreSuite) register(name, email, phone string) types.ClientRecord {
	rec, err := s.store.Register(context.Background(), types.ClientFields{Name: name, Email: email, Phone: phone})
	s.Require().NoError(err)
	return rec
}

func (s *ClientStoreSuite) list() []types.ClientRecord {
	recs, err := s.store.List(context.Background())
	s.Require().NoError(err)
	return recs
}

func (s *ClientStoreSuite) TestEmptyList() {
	s.Empty(s.list())
}

func (s *ClientStoreSuite) TestRegisterFirstClient() {
	rec := s.register("Ana Gómez", "ana@x.com", "5551234")
	s.Equal(types.ClientRecord{ID: 1, Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234", Active: true}, rec)

	found, err := s.store.FindByID(context.Background(), 1)
	s.NoError(err)
	s.Equal(rec, found)
}

func (s *ClientStoreSuite) TestSequentialIDs() {
	for i := 1; i <= 5; i++ {
		rec := s.register(fmt.Sprintf("client %d", i), fmt.Sprintf("c%d@x.com", i), "555")
		s.Equal(i, rec.ID)
	}
	recs := s.list()
	s.Len(recs, 5)
	for i, rec := range recs {
		s.Equal(i+1, rec.ID)
		s.True(rec.Active)
	}
}

func (s *ClientStoreSuite) TestRegisterAcceptsEmptyStrings() {
	rec := s.register("", "", "")
	s.Equal(1, rec.ID)
	s.True(rec.Active)
}

func (s *ClientStoreSuite) TestFindByIDMissing() {
	s.register("a", "a@x.com", "1")
	_, err := s.store.FindByID(context.Background(), 2)
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ClientStoreSuite) TestUpdateOnlyPhone() {
	first := s.register("Ana Gómez", "ana@x.com", "5551234")
	second := s.register("Luis Pérez", "luis@x.com", "5554321")

	updated, err := s.store.Update(context.Background(), 1, types.ClientFields{Phone: "9999999"})
	s.NoError(err)
	s.Equal("9999999", updated.Phone)
	s.Equal(first.Name, updated.Name)
	s.Equal(first.Email, updated.Email)
	s.True(updated.Active)

	recs := s.list()
	s.Equal(updated, recs[0])
	s.Equal(second, recs[1])
}

func (s *ClientStoreSuite) TestUpdateOnlyEmail() {
	s.register("Ana Gómez", "ana@x.com", "5551234")
	updated, err := s.store.Update(context.Background(), 1, types.ClientFields{Email: "ana@new.com"})
	s.NoError(err)
	s.Equal(types.ClientRecord{ID: 1, Name: "Ana Gómez", Email: "ana@new.com", Phone: "5551234", Active: true}, updated)
}

func (s *ClientStoreSuite) TestUpdateWithNoFields() {
	before := s.register("Ana Gómez", "ana@x.com", "5551234")
	after, err := s.store.Update(context.Background(), 1, types.ClientFields{})
	s.NoError(err)
	s.Equal(before, after)
	s.Equal([]types.ClientRecord{before}, s.list())
}

func (s *ClientStoreSuite) TestUpdateMissing() {
	s.register("Ana Gómez", "ana@x.com", "5551234")
	before := s.list()

	_, err := s.store.Update(context.Background(), 99, types.ClientFields{Name: "x", Email: "y", Phone: "z"})
	s.ErrorIs(err, types.ErrNotFound)
	s.Equal(before, s.list())
}

func (s *ClientStoreSuite) TestDeactivate() {
	first := s.register("Ana Gómez", "ana@x.com", "5551234")
	s.register("Luis Pérez", "luis@x.com", "5554321")

	rec, err := s.store.Deactivate(context.Background(), 2)
	s.NoError(err)
	s.False(rec.Active)

	recs := s.list()
	s.Len(recs, 2)
	s.Equal(first, recs[0])
	s.False(recs[1].Active)
	s.Equal("Luis Pérez", recs[1].Name)
}

func (s *ClientStoreSuite) TestDeactivateTwice() {
	s.register("Ana Gómez", "ana@x.com", "5551234")
	_, err := s.store.Deactivate(context.Background(), 1)
	s.NoError(err)
	rec, err := s.store.Deactivate(context.Background(), 1)
	s.NoError(err)
	s.False(rec.Active)
}

func (s *ClientStoreSuite) TestDeactivateMissing() {
	s.register("Ana Gómez", "ana@x.com", "5551234")
	before := s.list()
	_, err := s.store.Deactivate(context.Background(), 7)
	s.ErrorIs(err, types.ErrNotFound)
	s.Equal(before, s.list())
}

func (s *ClientStoreSuite) TestIDsKeepGrowingAfterDeactivation() {
	s.register("a", "a@x.com", "1")
	s.register("b", "b@x.com", "2")
	_, err := s.store.Deactivate(context.Background(), 1)
	s.NoError(err)
	rec := s.register("c", "c@x.com", "3")
	s.Equal(3, rec.ID)
}

func (s *ClientStoreSuite) TestListIsACopy() {
	s.register("Ana Gómez", "ana@x.com", "5551234")
	recs := s.list()
	recs[0].Name = "changed"
	recs[0].Active = false

	again := s.list()
	s.Equal("Ana Gómez", again[0].Name)
	s.True(again[0].Active)
}

func (s *ClientStoreSuite) TestClearAllRestartsSession() {
	s.register("a", "a@x.com", "1")
	s.NoError(s.store.ClearAll(context.Background()))
	s.Empty(s.list())
	s.Equal(1, s.register("b", "b@x.com", "2").ID)
}

func (s *ClientStoreSuite) TestConcurrentRegister() {
	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := s.store.Register(context.Background(), types.ClientFields{Name: fmt.Sprint(i), Email: "e", Phone: "p"})
			if err == nil {
				ids <- rec.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		s.False(seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	s.Len(seen, n)
	recs := s.list()
	s.Len(recs, n)
	for i, rec := range recs {
		s.Equal(i+1, rec.ID)
	}
}
