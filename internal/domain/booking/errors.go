package booking

import "fmt"

// MissingFieldError reports a required config key that is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("value not provided for property: %s", e.Field)
}

// InvalidFieldError reports a present config value that fails its rule.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid value for property: %s", e.Field)
	}
	return fmt.Sprintf("invalid value for property: %s: %s", e.Field, e.Reason)
}

// MalformedPassengerError reports a passenger record that cannot be used,
// identified by its 1-based index in the config.
type MalformedPassengerError struct {
	Index  int
	Reason string
}

func (e *MalformedPassengerError) Error() string {
	return fmt.Sprintf("passenger%d: %s", e.Index, e.Reason)
}
