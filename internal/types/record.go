package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ClientRecord is one registered customer.
// ID is assigned by the store at registration and never changes afterwards.
// Active starts true and can only be cleared (there is no reactivation).
type ClientRecord struct {
	ID     int    `json:"id" dynamodbav:"id" yaml:"id"`
	Name   string `json:"name" dynamodbav:"name" yaml:"name"`
	Email  string `json:"email" dynamodbav:"email" yaml:"email"`
	Phone  string `json:"phone" dynamodbav:"phone" yaml:"phone"`
	Active bool   `json:"active" dynamodbav:"active" yaml:"active"`
}

// StatusText is the label shown in the status column.
func (r ClientRecord) StatusText() string {
	if r.Active {
		return "Active"
	}
	return "Inactive"
}

// ClientFields carries the raw values of a registration or update form.
// An empty string means the field was not provided.
type ClientFields struct {
	Name  string `json:"name,omitempty" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email"`
	Phone string `json:"phone,omitempty" yaml:"phone"`
}

const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// Empty reports whether no field was provided.
func (f ClientFields) Empty() bool {
	return f.Name == "" && f.Email == "" && f.Phone == ""
}

// Missing returns the names of the fields left empty, in form order.
func (f ClientFields) Missing() []string {
	var out []string
	if f.Name == "" {
		out = append(out, FieldName)
	}
	if f.Email == "" {
		out = append(out, FieldEmail)
	}
	if f.Phone == "" {
		out = append(out, FieldPhone)
	}
	return out
}

// Require is the form level "field is required" check used before registration.
// The stores themselves accept any strings.
func (f ClientFields) Require() error {
	if missing := f.Missing(); len(missing) > 0 {
		return Err(ErrMissingFields, nil, "missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Apply overwrites the record fields for which a non-empty value was provided.
// ID and Active are left untouched.
func (f ClientFields) Apply(rec ClientRecord) ClientRecord {
	if f.Name != "" {
		rec.Name = f.Name
	}
	if f.Email != "" {
		rec.Email = f.Email
	}
	if f.Phone != "" {
		rec.Phone = f.Phone
	}
	return rec
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f ClientFields) Trimmed() ClientFields {
	return ClientFields{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: strings.TrimSpace(f.Phone),
	}
}

// ParseID parses a client id as typed into a form.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Err(ErrInvalidID, err, "")
	}
	if id <= 0 {
		return 0, Err(ErrInvalidID, nil, "id must be positive, got %d", id)
	}
	return id, nil
}

// NewRecord builds the record a store appends on registration.
func NewRecord(id int, f ClientFields) ClientRecord {
	return ClientRecord{
		ID:     id,
		Name:   f.Name,
		Email:  f.Email,
		Phone:  f.Phone,
		Active: true,
	}
}

func (r ClientRecord) String() string {
	return fmt.Sprintf("#%d %s <%s> %s (%s)", r.ID, r.Name, r.Email, r.Phone, r.StatusText())
}
