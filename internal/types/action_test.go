package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"register":     ActionRegister,
		" LIST ":       ActionList,
		"update":       ActionUpdate,
		"deactivate":   ActionDeactivate,
		"registrar":    ActionRegister,
		"consultar":    ActionList,
		"actualizar":   ActionUpdate,
		"desactivar":   ActionDeactivate,
		"":             ActionInvalid,
		"delete":       ActionInvalid,
		"invalid":      ActionInvalid,
		"register-now": ActionInvalid,
	}
	for token, want := range cases {
		assert.Equal(t, want, ParseAction(token), token)
	}
}

func TestActionRoundTrip(t *testing.T) {
	for _, a := range Actions {
		assert.Equal(t, a, ParseAction(a.String()))
	}
	assert.Equal(t, "invalid", Action(99).String())
	assert.True(t, ActionUpdate.Mutates())
	assert.False(t, ActionList.Mutates())
	assert.False(t, ActionInvalid.Mutates())
}
