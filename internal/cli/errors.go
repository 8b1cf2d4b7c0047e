package cli

import "github.com/alexanderramin/clientdesk/internal/service"

// actionError is returned by commands when a use case fails. Its message is
// the user-facing alert; the cause stays reachable through errors.Is/As.
type actionError struct {
	action string
	err    error
}

func alertError(action string, err error) error {
	if err == nil {
		return nil
	}
	return &actionError{action: action, err: err}
}

func (e *actionError) Error() string { return service.Alert(e.action, e.err) }
func (e *actionError) Unwrap() error { return e.err }
