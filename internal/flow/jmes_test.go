package flow

import "clientreg/internal/types"

func (s *UnitTestSuite) TestEvalAny() {
	obj := map[string]any{
		"key1": "value1",
		"key2": map[string]any{"subkey1": "subvalue1"},
		"key3": []any{"elem1", "elem2"},
	}

	v, err := EvalAny("key1", obj)
	s.NoError(err)
	s.Equal("value1", v.(string))

	v, err = EvalAny("key2.subkey1", obj)
	s.NoError(err)
	s.Equal("subvalue1", v.(string))

	v, err = EvalAny("nonexistent", obj)
	s.NoError(err)
	s.Nil(v)

	v, err = EvalAny("contains(key3, 'elem2')", obj)
	s.NoError(err)
	s.Equal(true, v.(bool))

	_, err = EvalAny("key3[", obj)
	s.Error(err)
}

func (s *UnitTestSuite) TestFilterRecords() {
	recs := []types.ClientRecord{
		{ID: 1, Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234", Active: true},
		{ID: 2, Name: "Luis Pérez", Email: "luis@y.com", Phone: "5554321", Active: false},
		{ID: 3, Name: "Ana Ruiz", Email: "ruiz@y.com", Phone: "5550000", Active: true},
	}

	out, err := FilterRecords("", recs)
	s.NoError(err)
	s.Equal(recs, out)

	out, err = FilterRecords("[?active]", recs)
	s.NoError(err)
	s.Equal([]types.ClientRecord{recs[0], recs[2]}, out)

	out, err = FilterRecords("[?!active]", recs)
	s.NoError(err)
	s.Equal([]types.ClientRecord{recs[1]}, out)

	out, err = FilterRecords("[?contains(name, 'Ana')]", recs)
	s.NoError(err)
	s.Len(out, 2)

	out, err = FilterRecords("[?id > `1`]", recs)
	s.NoError(err)
	s.Equal([]int{2, 3}, []int{out[0].ID, out[1].ID})

	out, err = FilterRecords("[?name == 'nobody']", recs)
	s.NoError(err)
	s.Empty(out)

	_, err = FilterRecords("[*].name", recs)
	s.ErrorIs(err, types.ErrInvalidFilter)

	_, err = FilterRecords("length(@)", recs)
	s.ErrorIs(err, types.ErrInvalidFilter)

	_, err = FilterRecords("[?", recs)
	s.ErrorIs(err, types.ErrInvalidFilter)
}

func (s *UnitTestSuite) TestFilterRecordsRejectsProjections() {
	recs := []types.ClientRecord{
		{ID: 1, Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234", Active: true},
	}

	_, err := FilterRecords("[].{name: name}", recs)
	s.ErrorIs(err, types.ErrInvalidFilter)

	_, err = FilterRecords("[].{id: id, name: name, email: email, phone: phone, active: `false`}", recs)
	s.ErrorIs(err, types.ErrInvalidFilter)

	_, err = FilterRecords("[].{id: `7`, name: name, email: email, phone: phone, active: active}", recs)
	s.ErrorIs(err, types.ErrInvalidFilter)

	out, err := FilterRecords("[].{id: id, name: name, email: email, phone: phone, active: active}", recs)
	s.NoError(err)
	s.Equal(recs, out)
}

func (s *UnitTestSuite) TestDispatchListProjectionRejected() {
	s.registerAna()
	res := s.dispatch(Request{Action: types.ActionList, Filter: "[].{name: name}"})
	s.Equal(Rejected, res.Status)
	s.Equal(types.NoticeError, res.Notice.Kind)
	s.Require().Len(res.Records, 1)
	s.Equal(1, res.Records[0].ID)
	s.True(res.Records[0].Active)
}

func (s *UnitTestSuite) TestDispatchListFilterMatchesNothing() {
	s.registerAna()
	res := s.dispatch(Request{Action: types.ActionList, Filter: "[?name == 'nobody']"})
	s.Equal(Listed, res.Status)
	s.Empty(res.Records)
	s.Nil(res.Notice)
}
