package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOnlyEmail(t *testing.T) {
	rec := NewRecord(1, ClientFields{Name: "Ana Gómez", Email: "ana@x.com", Phone: "5551234"})
	got := ClientFields{Email: "ana@y.com"}.Apply(rec)

	assert.Equal(t, "ana@y.com", got.Email)
	assert.Equal(t, "Ana Gómez", got.Name)
	assert.Equal(t, "5551234", got.Phone)
	assert.Equal(t, 1, got.ID)
	assert.True(t, got.Active)
}

func TestApplyEmptyIsNoOp(t *testing.T) {
	rec := ClientRecord{ID: 3, Name: "B", Email: "b@x.com", Phone: "1", Active: false}
	assert.Equal(t, rec, ClientFields{}.Apply(rec))
	assert.True(t, ClientFields{}.Empty())
}

func TestRequire(t *testing.T) {
	require.NoError(t, ClientFields{Name: "a", Email: "b", Phone: "c"}.Require())

	err := ClientFields{Name: "a"}.Require()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFields))
	assert.Contains(t, err.Error(), "email, phone")
	assert.Equal(t, []string{FieldName, FieldEmail, FieldPhone}, ClientFields{}.Missing())
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, in := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, ErrInvalidID, in)
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Active", ClientRecord{Active: true}.StatusText())
	assert.Equal(t, "Inactive", ClientRecord{}.StatusText())
}
