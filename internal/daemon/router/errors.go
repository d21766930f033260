package router

import (
	"errors"
	"fmt"
)

var (
	// ErrTrayUnavailable is returned when no tray host is ready to take a menu.
	ErrTrayUnavailable = errors.New("tray unavailable")

	// ErrWindowNotFound is returned when the main window isn't connected.
	ErrWindowNotFound = errors.New("main window not found")
)

// OSIntegrationError reports a failure at the tray or window layer.
type OSIntegrationError struct {
	Op  string // "install_menu", "get_window", "show", "emit"
	Err error
}

func (e *OSIntegrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OSIntegrationError) Unwrap() error {
	return e.Err
}

func osError(op string, err error) error {
	var existing *OSIntegrationError
	if errors.As(err, &existing) {
		return err
	}
	return &OSIntegrationError{Op: op, Err: err}
}
