package calc

import (
	"errors"
	"strconv"
)

// Sentinel input errors. Their messages are shown to the user verbatim.
var (
	ErrInvalidNumber     = errors.New("Invalid input. Please enter a number.")           //nolint:revive,stylecheck // user-facing text
	ErrInvalidInteger    = errors.New("Invalid input. Please enter a positive integer.") //nolint:revive,stylecheck // user-facing text
	ErrInvalidExpression = errors.New("Error: Invalid expression")                       //nolint:revive,stylecheck // user-facing text
	ErrTooLarge          = errors.New("Invalid input. n is too large.")                  //nolint:revive,stylecheck // user-facing text
)

// TooLargeError reports a prime-counting input above the configured cap.
type TooLargeError struct {
	Max int
}

func (e TooLargeError) Error() string {
	return "Invalid input. n must be at most " + strconv.Itoa(e.Max) + "."
}

// Is lets errors.Is match ErrTooLarge.
func (e TooLargeError) Is(target error) bool {
	return target == ErrTooLarge
}
