package utils

import (
	"errors"
	"fmt"
)

var ErrPanic = errors.New("got panic")

// RecoverWithError must be deferred directly. It turns a panic into an error wrapping ErrPanic.
func RecoverWithError(err *error) {
	if rv := recover(); rv != nil {
		*err = fmt.Errorf("%w: %v", ErrPanic, rv)
	}
}
