package internet

import (
	"fmt"

	"kindkernel/internal/diag"
)

// Error is a thrown net-reduction error, mirroring graphrt.Error so a
// front end renders both runtimes' failures the same way.
type Error struct {
	Code    diag.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

func rtOOB(addr uint32) error {
	return &Error{Code: diag.RtNetOOB, Message: fmt.Sprintf("reference to unknown node %d", addr)}
}

func rtDivByZero() error {
	return &Error{Code: diag.RedDivisionByZero, Message: "division or modulo by zero"}
}

func rtNoRedex() error {
	return &Error{Code: diag.RtNetNoRedex, Message: "no principal active pair reachable from root"}
}
