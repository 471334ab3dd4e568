package reduce

import (
	"fmt"

	"kindkernel/internal/diag"
)

// Error reports a failure raised while reducing, carrying the diagnostic
// code so a caller can build a proper diag.Diagnostic without the
// reducer depending on source.Span (reduction runs on terms, not source
// positions).
type Error struct {
	Code    diag.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

func errUnknownOp(name string) error {
	return &Error{Code: diag.RedUnknownPrimitive, Message: "unknown primitive operator: " + name}
}

func errDivByZero() error {
	return &Error{Code: diag.RedDivisionByZero, Message: "division by zero"}
}
