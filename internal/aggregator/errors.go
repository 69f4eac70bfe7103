package aggregator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error codes reported to callers.
const (
	CodeMissingPlayerReference = "MissingPlayerReference"
	CodeUnknown                = "Unknown"
)

// ErrUnknown marks a processing failure that is not a dangling reference.
var ErrUnknown = errors.New("an unknown error happened")

// MissingPlayerReferenceError is returned when a report references a player
// UUID absent from its players list.
type MissingPlayerReferenceError struct {
	UUID uuid.UUID
}

func (e *MissingPlayerReferenceError) Error() string {
	return fmt.Sprintf("no player with this UUID can be found in the players list: %s", e.UUID)
}

// Code returns CodeMissingPlayerReference.
func (e *MissingPlayerReferenceError) Code() string { return CodeMissingPlayerReference }

// ErrorCode maps any processing error to its code. Errors that are not a
// MissingPlayerReferenceError are reported as CodeUnknown.
func ErrorCode(err error) string {
	var missing *MissingPlayerReferenceError
	if errors.As(err, &missing) {
		return CodeMissingPlayerReference
	}
	return CodeUnknown
}
