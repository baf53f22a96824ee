package flow

import "time"

// Status is the outcome of one dispatched action.
type Status int

const (
	InvalidOption Status = iota // unrecognized action token; the store was not touched
	Registered
	Listed
	ListedEmpty
	Updated
	Deactivated
	NotFound
	Rejected // form level input problem, e.g. a bad list filter
	Found    // single record lookup
)

var StatusTextMap = map[Status]string{
	InvalidOption: "invalid_option",
	Registered:    "registered",
	Listed:        "listed",
	ListedEmpty:   "no_clients",
	Updated:       "updated",
	Deactivated:   "deactivated",
	NotFound:      "not_found",
	Rejected:      "rejected",
	Found:         "found",
}

func (s Status) String() string { return StatusTextMap[s] }

const (
	MsgRegistered    = "Client registered successfully"
	MsgUpdated       = "Client updated successfully"
	MsgDeactivated   = "Client deactivated successfully"
	MsgNotFound      = "Client not found"
	MsgInvalidOption = "Invalid option. Please select a valid option."
	MsgNoClients     = "No clients registered."
	MsgNoMatches     = "No clients match the filter."

	MsgFieldsRequired = "All fields are required"
	MsgInvalidID      = "Invalid client id"
)

var timeNow = time.Now

func EpochTime() int64 {
	return timeNow().Unix()
}

func SetTimeNowFn(f func() time.Time) {
	timeNow = f
}

func RestoreTimeNow() {
	timeNow = time.Now
}
