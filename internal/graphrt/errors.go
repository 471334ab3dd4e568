package graphrt

import (
	"fmt"

	"kindkernel/internal/diag"
)

// Error is a thrown runtime error, carrying the diagnostic code so a
// front end can render it alongside checker and equality errors.
type Error struct {
	Code    diag.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

func rtOOB(defID uint32) error {
	return &Error{Code: diag.RtGraphOOB, Message: fmt.Sprintf("reference to unknown definition id %d", defID)}
}

func rtDivByZero() error {
	return &Error{Code: diag.RedDivisionByZero, Message: "division or modulo by zero"}
}
