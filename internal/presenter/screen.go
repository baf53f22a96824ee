// Package presenter turns dispatcher results into screens, tables and transient notices.
package presenter

import (
	"clientreg/internal/flow"
	"clientreg/internal/types"
)

type ScreenKind int

const (
	ScreenHome ScreenKind = iota
	ScreenRegisterForm
	ScreenClientList
	ScreenUpdateForm
	ScreenDeactivateForm
	ScreenInvalidOption
)

// Screen is what the content area (or the modal) shows.
type Screen struct {
	Kind  ScreenKind
	Title string
	// Modal is true for the forms, which open in a modal dialog.
	Modal bool
}

var (
	homeScreen       = Screen{Kind: ScreenHome, Title: "Client Management"}
	registerScreen   = Screen{Kind: ScreenRegisterForm, Title: "Register New Client", Modal: true}
	listScreen       = Screen{Kind: ScreenClientList, Title: "Registered Clients"}
	updateScreen     = Screen{Kind: ScreenUpdateForm, Title: "Update Client", Modal: true}
	deactivateScreen = Screen{Kind: ScreenDeactivateForm, Title: "Deactivate Client", Modal: true}
	invalidScreen    = Screen{Kind: ScreenInvalidOption, Title: "Invalid option"}
)

// MenuItem is one entry of the options menu.
type MenuItem struct {
	Token string
	Label string
}

var Menu = []MenuItem{
	{Token: types.ActionRegister.String(), Label: "Register client"},
	{Token: types.ActionList.String(), Label: "List clients"},
	{Token: types.ActionUpdate.String(), Label: "Update client"},
	{Token: types.ActionDeactivate.String(), Label: "Deactivate client"},
}

// ScreenFor is the screen opened when a menu option is picked.
func ScreenFor(a types.Action) Screen {
	switch a {
	case types.ActionRegister:
		return registerScreen
	case types.ActionList:
		return listScreen
	case types.ActionUpdate:
		return updateScreen
	case types.ActionDeactivate:
		return deactivateScreen
	case types.ActionInvalid:
		fallthrough
	default:
		return invalidScreen
	}
}

// ScreenAfter is the screen shown once a dispatched action returns.
// A successful submission closes its modal; a missing client keeps the form open.
func ScreenAfter(res flow.Result) Screen {
	switch res.Status {
	case flow.Registered, flow.Updated, flow.Deactivated:
		return homeScreen
	case flow.NotFound:
		return ScreenFor(res.Action)
	case flow.Listed, flow.ListedEmpty, flow.Rejected, flow.Found:
		return listScreen
	case flow.InvalidOption:
		fallthrough
	default:
		return invalidScreen
	}
}

// Home is the menu-only screen.
func Home() Screen { return homeScreen }
