package enrollment

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidState indicates a required data view is structurally absent.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnsupportedState indicates a value outside a closed enumeration was read from the store.
	ErrUnsupportedState = errors.New("unsupported state")
	// ErrInvalidArgument indicates caller input validation failure.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidStateError tags an error as a missing data view.
func InvalidStateError(msg string) error {
	return errors.Join(ErrInvalidState, errors.New(strings.TrimSpace(msg)))
}

// UnsupportedStateError tags an error as an unsupported stored value.
func UnsupportedStateError(msg string) error {
	return errors.Join(ErrUnsupportedState, errors.New(strings.TrimSpace(msg)))
}

// InvalidArgumentError tags an error as invalid caller input.
func InvalidArgumentError(msg string) error {
	return errors.Join(ErrInvalidArgument, errors.New(strings.TrimSpace(msg)))
}
