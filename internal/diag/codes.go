package diag

import "fmt"

// Code is a compact numeric diagnostic identifier. Ranges are banded by
// component so that the textual ID (see ID) reveals which phase raised it
// without needing the description table.
type Code uint16

const (
	UnknownCode Code = 0

	// Type checker errors, raised by internal/check.
	ChkUnboundVariable       Code = 1000
	ChkErasedUseInRelevant   Code = 1001
	ChkErasureMismatch       Code = 1002
	ChkNonFunctionApplied    Code = 1003
	ChkLambdaNeedsAnnotation Code = 1004
	ChkNonTypeInForall       Code = 1005
	ChkIfCondNotNumeric      Code = 1006
	ChkNewOfNonSelf          Code = 1007
	ChkUseOfNonSelf          Code = 1008
	ChkUnknownReference      Code = 1009
	ChkTypeMismatch          Code = 1010
	ChkRecursiveReference    Code = 1011

	// Reducer / equality errors, raised by internal/reduce and internal/equality.
	RedUnknownPrimitive Code = 2000
	RedDivisionByZero   Code = 2001

	// Hole diagnostics (reported, never thrown), raised by internal/check.
	HolUnsolved Code = 3000
	HolConflict Code = 3001

	// Linearity / recursion advisories, raised by internal/lin.
	LinNotAffine      Code = 4000
	LinNonTerminating Code = 4001

	// Runtime errors from the two reduction machines.
	RtGraphOOB   Code = 5000
	RtNetOOB     Code = 5001
	RtNetNoRedex Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:              "unknown error",
	ChkUnboundVariable:       "unbound variable",
	ChkErasedUseInRelevant:   "erased variable used in a relevant (non-erased) position",
	ChkErasureMismatch:       "mismatched erasure on application",
	ChkNonFunctionApplied:    "application of a non-function value",
	ChkLambdaNeedsAnnotation: "lambda requires an explicit domain annotation",
	ChkNonTypeInForall:       "non-Type expression used in forall position",
	ChkIfCondNotNumeric:      "if-condition is not a machine word",
	ChkNewOfNonSelf:          "new applied to a non-self type",
	ChkUseOfNonSelf:          "use applied to a non-self value",
	ChkUnknownReference:      "reference to an unknown top-level definition",
	ChkTypeMismatch:          "inferred type does not match the expected type",
	ChkRecursiveReference:    "reference recurses through itself while being checked",
	RedUnknownPrimitive:      "unknown primitive numeric operator",
	RedDivisionByZero:        "division by zero in numeric reduction",
	HolUnsolved:              "hole left unsolved",
	HolConflict:              "hole has conflicting assignments",
	LinNotAffine:             "bound variable used more than once",
	LinNonTerminating:        "reference recurs within its own expansion",
	RtGraphOOB:               "graph runtime memory access out of bounds",
	RtNetOOB:                 "interaction-net arena access out of bounds",
	RtNetNoRedex:             "interaction-net scheduler found no matching rewrite rule",
}

// ID renders a stable textual identifier such as "CHK1000" or "HOL3000".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CHK%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RED%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("HOL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LIN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("RT%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
