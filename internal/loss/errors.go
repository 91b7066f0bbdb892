package loss

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownLoss   = errors.New("no loss registered under this name")
	ErrDuplicateLoss = errors.New("loss name already registered")
	ErrMissingName   = errors.New("config has no \"name\" key")
	ErrMissingParam  = errors.New("missing required parameter")
	ErrBadParam      = errors.New("parameter has invalid type")
)

// ConfigError describes why a loss could not be built from configuration.
type ConfigError struct {
	Loss  string // Registry name of the loss being built, if known
	Param string // Parameter involved, if any
	Err   error  // Underlying sentinel error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Loss != "" && e.Param != "":
		return fmt.Sprintf("loss %q: parameter %q: %v", e.Loss, e.Param, e.Err)
	case e.Param != "":
		return fmt.Sprintf("parameter %q: %v", e.Param, e.Err)
	case e.Loss != "":
		return fmt.Sprintf("loss %q: %v", e.Loss, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
