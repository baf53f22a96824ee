package types

import "strings"

// Action is a menu option picked in the UI.
type Action int

const (
	ActionInvalid Action = iota // anything not recognized
	ActionRegister
	ActionList
	ActionUpdate
	ActionDeactivate
)

var actionTokens = map[Action]string{
	ActionInvalid:    "invalid",
	ActionRegister:   "register",
	ActionList:       "list",
	ActionUpdate:     "update",
	ActionDeactivate: "deactivate",
}

// legacyTokens are the data-action values of the older Spanish menu links.
var legacyTokens = map[string]Action{
	"registrar":  ActionRegister,
	"consultar":  ActionList,
	"actualizar": ActionUpdate,
	"desactivar": ActionDeactivate,
}

// Actions lists the valid menu options in display order.
var Actions = []Action{ActionRegister, ActionList, ActionUpdate, ActionDeactivate}

// ParseAction maps a UI token to an Action. Unknown tokens yield ActionInvalid.
func ParseAction(token string) Action {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return ActionInvalid
	}
	for a, s := range actionTokens {
		if a != ActionInvalid && s == t {
			return a
		}
	}
	if a, ok := legacyTokens[t]; ok {
		return a
	}
	return ActionInvalid
}

func (a Action) String() string {
	if s, ok := actionTokens[a]; ok {
		return s
	}
	return actionTokens[ActionInvalid]
}

// Mutates reports whether the action changes the store.
func (a Action) Mutates() bool {
	return a == ActionRegister || a == ActionUpdate || a == ActionDeactivate
}
