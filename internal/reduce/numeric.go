package reduce

import "kindkernel/internal/term"

// ApplyOp computes a primitive operator over two machine words with
// unsigned 32-bit semantics. Division and modulo by zero are reported
// through ok=false rather than panicking, since the reducer has no
// exception mechanism of its own.
func ApplyOp(op term.Op, x, y uint32) (result uint32, ok bool) {
	switch op {
	case term.OpAdd:
		return x + y, true
	case term.OpSub:
		return x - y, true
	case term.OpMul:
		return x * y, true
	case term.OpDiv:
		if y == 0 {
			return 0, false
		}
		return uint32(float64(x) / float64(y)), true
	case term.OpMod:
		if y == 0 {
			return 0, false
		}
		return x % y, true
	case term.OpPow:
		return ipow(x, y), true
	case term.OpAnd:
		return x & y, true
	case term.OpOr:
		return x | y, true
	case term.OpXor:
		return x ^ y, true
	case term.OpNot:
		return ^y, true
	case term.OpShr:
		return x >> (y & 31), true
	case term.OpShl:
		return x << (y & 31), true
	case term.OpGt:
		return boolWord(x > y), true
	case term.OpLt:
		return boolWord(x < y), true
	case term.OpEq:
		return boolWord(x == y), true
	}
	return 0, false
}

func ipow(base, exp uint32) uint32 {
	result := uint32(1)
	for range exp {
		result *= base
	}
	return result
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
