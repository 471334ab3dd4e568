package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Render produces a compact, human-readable rendering of t for
// diagnostics and logs. It is not a parser-round-trippable surface
// syntax; it exists only so a Diagnostic can carry a Term string without
// the kernel depending on an external pretty-printer.
func Render(t *Term) string {
	var b strings.Builder
	render(&b, t, 0)
	return b.String()
}

func render(b *strings.Builder, t *Term, depth uint32) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case Var:
		b.WriteString("#")
		b.WriteString(strconv.FormatUint(uint64(t.Index), 10))
	case Typ:
		b.WriteString("Type")
	case Num:
		b.WriteString("Num")
	case Val:
		b.WriteString(strconv.FormatUint(uint64(t.Numb), 10))
	case All:
		fmt.Fprintf(b, "(%s%s:", erasedMark(t.Erased), binderName(t.Name, depth))
		render(b, t.Bind, depth)
		b.WriteString(") -> ")
		render(b, t.Body, depth+1)
	case Lam:
		fmt.Fprintf(b, "\\%s%s", erasedMark(t.Erased), binderName(t.Name, depth))
		if t.Bind != nil {
			b.WriteString(":")
			render(b, t.Bind, depth)
		}
		b.WriteString(". ")
		render(b, t.Body, depth+1)
	case App:
		render(b, t.Func, depth)
		b.WriteString(erasedMark(t.Erased))
		b.WriteString("(")
		render(b, t.Argm, depth)
		b.WriteString(")")
	case Slf:
		fmt.Fprintf(b, "${%s} ", binderName(t.Name, depth))
		render(b, t.Body, depth+1)
	case New:
		b.WriteString("new(")
		render(b, t.Type, depth)
		b.WriteString(")(")
		render(b, t.Expr, depth)
		b.WriteString(")")
	case Use:
		b.WriteString("use(")
		render(b, t.Expr, depth)
		b.WriteString(")")
	case Op1:
		render(b, t.Num0, depth)
		b.WriteString(" " + t.OpCode.String() + " ")
		render(b, t.Num1, depth)
	case Op2:
		render(b, t.Num0, depth)
		b.WriteString(" " + t.OpCode.String() + " ")
		render(b, t.Num1, depth)
	case Ite:
		b.WriteString("if ")
		render(b, t.Cond, depth)
		b.WriteString(" then ")
		render(b, t.Ift, depth)
		b.WriteString(" else ")
		render(b, t.Iff, depth)
	case Ann:
		render(b, t.Expr, depth)
		b.WriteString(" :: ")
		render(b, t.Type, depth)
	case Log:
		b.WriteString("log(")
		render(b, t.Msge, depth)
		b.WriteString(")(")
		render(b, t.Expr, depth)
		b.WriteString(")")
	case Hol:
		b.WriteString("?" + t.HoleName)
	case Ref:
		b.WriteString(t.RefName)
		if t.Erased {
			b.WriteString("~")
		}
	default:
		b.WriteString("<?>")
	}
}

func erasedMark(erased bool) string {
	if erased {
		return ";"
	}
	return ""
}

func binderName(name string, depth uint32) string {
	if name != "" {
		return name
	}
	return "x" + strconv.FormatUint(uint64(depth), 10)
}
