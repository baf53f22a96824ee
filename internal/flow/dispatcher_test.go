package flow

import (
	"clientreg/internal/types"
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

func (s *UnitTestSuite) TestDispatchRegister() {
	res := s.dispatch(Request{
		Action: types.ActionRegister,
		Fields: types.ClientFields{Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234"},
	})
	s.Equal(Registered, res.Status)
	s.Equal(types.NoticeSuccess, res.Notice.Kind)
	s.Equal(MsgRegistered, res.Notice.Message)
	s.Equal(types.ClientRecord{ID: 1, Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234", Active: true}, *res.Record)
}

func (s *UnitTestSuite) TestDispatchListEmpty() {
	res := s.dispatch(Request{Action: types.ActionList})
	s.Equal(ListedEmpty, res.Status)
	s.Empty(res.Records)
	s.Nil(res.Notice)
}

func (s *UnitTestSuite) TestDispatchListWithFilter() {
	s.registerAna()
	s.dispatch(Request{Action: types.ActionRegister, Fields: types.ClientFields{Name: "Luis", Email: "l@x.com", Phone: "1"}})
	s.dispatch(Request{Action: types.ActionDeactivate, ID: 2})

	res := s.dispatch(Request{Action: types.ActionList})
	s.Equal(Listed, res.Status)
	s.Len(res.Records, 2)

	res = s.dispatch(Request{Action: types.ActionList, Filter: "[?active]"})
	s.Equal(Listed, res.Status)
	s.Len(res.Records, 1)
	s.Equal("Ana Gómez", res.Records[0].Name)
}

func (s *UnitTestSuite) TestDispatchListBadFilter() {
	s.registerAna()
	res := s.dispatch(Request{Action: types.ActionList, Filter: "[?"})
	s.Equal(Rejected, res.Status)
	s.Equal(types.NoticeError, res.Notice.Kind)
	s.Len(res.Records, 1)
}

func (s *UnitTestSuite) TestDispatchUpdate() {
	s.registerAna()
	s.dispatch(Request{Action: types.ActionRegister, Fields: types.ClientFields{Name: "Luis", Email: "l@x.com", Phone: "1"}})

	res := s.dispatch(Request{Action: types.ActionUpdate, ID: 1, Fields: types.ClientFields{Phone: "9999999"}})
	s.Equal(Updated, res.Status)
	s.Equal(MsgUpdated, res.Notice.Message)
	s.Equal("9999999", res.Record.Phone)

	second, err := s.clientStore.FindByID(context.Background(), 2)
	s.NoError(err)
	s.Equal("1", second.Phone)
}

func (s *UnitTestSuite) TestDispatchUpdateNotFound() {
	s.registerAna()
	before, _ := s.clientStore.List(context.Background())
	published := s.publisher.count()

	res := s.dispatch(Request{Action: types.ActionUpdate, ID: 99, Fields: types.ClientFields{Name: "x"}})
	s.Equal(NotFound, res.Status)
	s.Equal(types.NoticeError, res.Notice.Kind)
	s.Equal(MsgNotFound, res.Notice.Message)
	s.Nil(res.Record)

	after, _ := s.clientStore.List(context.Background())
	s.Equal(before, after)
	s.Equal(published, s.publisher.count())
}

func (s *UnitTestSuite) TestDispatchDeactivate() {
	s.registerAna()
	res := s.dispatch(Request{Action: types.ActionDeactivate, ID: 1})
	s.Equal(Deactivated, res.Status)
	s.False(res.Record.Active)

	res = s.dispatch(Request{Action: types.ActionDeactivate, ID: 1})
	s.Equal(Deactivated, res.Status)
	s.Equal(MsgDeactivated, res.Notice.Message)

	res = s.dispatch(Request{Action: types.ActionDeactivate, ID: 5})
	s.Equal(NotFound, res.Status)
}

func (s *UnitTestSuite) TestDispatchInvalidOption() {
	s.registerAna()
	published := s.publisher.count()

	for _, a := range []types.Action{types.ActionInvalid, types.ParseAction("delete"), types.Action(42)} {
		res := s.dispatch(Request{Action: a, ID: 1, Fields: types.ClientFields{Name: "ignored"}})
		s.Equal(InvalidOption, res.Status)
		s.Equal(MsgInvalidOption, res.Notice.Message)
	}

	rec, err := s.clientStore.FindByID(context.Background(), 1)
	s.NoError(err)
	s.Equal("Ana Gómez", rec.Name)
	s.Equal(published, s.publisher.count())
}

func (s *UnitTestSuite) TestChangeEventsPublished() {
	SetTimeNowFn(func() time.Time { return time.Unix(1700000000, 0) })
	s.registerAna()
	s.dispatch(Request{Action: types.ActionUpdate, ID: 1, Fields: types.ClientFields{Email: "ana@y.com"}})
	s.dispatch(Request{Action: types.ActionDeactivate, ID: 1})
	s.dispatch(Request{Action: types.ActionList})

	s.Equal(3, s.publisher.count())
	var actions []string
	for i, payload := range s.publisher.payloads {
		s.Equal(TestTopic, s.publisher.topics[i])
		var ev ChangeEvent
		s.NoError(json.Unmarshal(payload, &ev))
		s.Equal("unit", ev.Session)
		s.Equal(int64(1700000000), ev.At)
		s.Equal(1, ev.Client.ID)
		actions = append(actions, ev.Action)
	}
	s.Equal([]string{"register", "update", "deactivate"}, actions)
}

func (s *UnitTestSuite) TestPublishFailureDoesNotFailMutation() {
	s.publisher.fail = true
	res := s.dispatch(Request{
		Action: types.ActionRegister,
		Fields: types.ClientFields{Name: "a", Email: "b", Phone: "c"},
	})
	s.Equal(Registered, res.Status)
}

func (s *UnitTestSuite) TestNilPublisher() {
	d := NewDispatcher(s.clientStore, nil, "", "")
	res, err := d.Dispatch(context.Background(), Request{Action: types.ActionRegister})
	s.NoError(err)
	s.Equal(Registered, res.Status)
}

func (s *UnitTestSuite) TestStoreErrorIsReturned() {
	boom := errors.New("boom")
	d := NewDispatcher(brokenStore{err: boom}, nil, "", "")
	for _, a := range types.Actions {
		_, err := d.Dispatch(context.Background(), Request{Action: a, ID: 1})
		s.ErrorIs(err, boom, a.String())
	}
}

type brokenStore struct{ err error }

func (b brokenStore) Register(context.Context, types.ClientFields) (types.ClientRecord, error) {
	return types.ClientRecord{}, b.err
}
func (b brokenStore) List(context.Context) ([]types.ClientRecord, error) { return nil, b.err }
func (b brokenStore) FindByID(context.Context, int) (types.ClientRecord, error) {
	return types.ClientRecord{}, b.err
}
func (b brokenStore) Update(context.Context, int, types.ClientFields) (types.ClientRecord, error) {
	return types.ClientRecord{}, b.err
}
func (b brokenStore) Deactivate(context.Context, int) (types.ClientRecord, error) {
	return types.ClientRecord{}, b.err
}
func (b brokenStore) ClearAll(context.Context) error { return b.err }
