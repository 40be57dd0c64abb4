package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DaoError is returned by the data access layer. The flags drive the
// HTTP status the handlers answer with.
type DaoError struct {
	Err           error
	Message       string
	NotFound      bool
	BadValidation bool
	Conflict      bool
}

func (e *DaoError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%v: %v", e.Message, e.Err.Error())
}

func (e *DaoError) Unwrap() error {
	return e.Err
}

func (e *DaoError) Wrap(err error) {
	e.Err = err
}

// ErrConfigIncomplete matches any ConfigIncompleteError through errors.Is.
var ErrConfigIncomplete = errors.New("configuration incomplete")

// ConfigIncompleteError names the configuration keys an operation needs but
// could not find.
type ConfigIncompleteError struct {
	Missing []string
}

func (e *ConfigIncompleteError) Error() string {
	if len(e.Missing) == 0 {
		return ErrConfigIncomplete.Error()
	}
	return fmt.Sprintf("%s: missing %s", ErrConfigIncomplete.Error(), strings.Join(e.Missing, ", "))
}

func (e *ConfigIncompleteError) Is(target error) bool {
	return target == ErrConfigIncomplete
}

// NewConfigIncompleteError returns nil when nothing is missing.
func NewConfigIncompleteError(missing ...string) error {
	if len(missing) == 0 {
		return nil
	}
	return &ConfigIncompleteError{Missing: missing}
}
