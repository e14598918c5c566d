package booking

import "strings"

// ValidationError reports missing or malformed input. Nothing was sent or stored.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

// NotificationError means the confirmation email failed. No appointment was stored.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return "send confirmation: " + e.Err.Error() }

func (e *NotificationError) Unwrap() error { return e.Err }

// PersistenceError means the email went out but the appointment was not stored.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "save appointment: " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }
