package term

import "hash/fnv"

// Hash computes (and caches) a structural hash stable under
// alpha-equivalence: Var/Typ/Num/Val/Hol hash from their immediate
// content; compound forms fold in their children's hashes and the erased
// flag but never a binder's cosmetic Name, so that renaming a bound
// variable never changes the hash.
func Hash(t *Term) uint64 {
	if t == nil {
		return fnvSeed
	}
	if t.hashValid {
		return t.hash
	}
	h := computeHash(t)
	t.hash = h
	t.hashValid = true
	return h
}

const fnvSeed = 14695981039346656037 // FNV-1a 64-bit offset basis

func mix(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= 1099511628211 // FNV-1a 64-bit prime
	return h
}

func mixUint32(h uint64, v uint32) uint64 {
	h = mix(h, byte(v))
	h = mix(h, byte(v>>8))
	h = mix(h, byte(v>>16))
	h = mix(h, byte(v>>24))
	return h
}

func mixUint64(h uint64, v uint64) uint64 {
	for i := range 8 {
		h = mix(h, byte(v>>(8*i)))
	}
	return h
}

func mixBool(h uint64, b bool) uint64 {
	if b {
		return mix(h, 1)
	}
	return mix(h, 0)
}

func mixString(h uint64, s string) uint64 {
	f := fnv.New64a()
	_, _ = f.Write([]byte(s))
	return mixUint64(h, f.Sum64())
}

func computeHash(t *Term) uint64 {
	h := mix(fnvSeed, byte(t.Kind))
	switch t.Kind {
	case Var:
		return mixUint32(h, t.Index)
	case Typ, Num:
		return h
	case All:
		h = mixUint64(h, Hash(t.Bind))
		h = mixUint64(h, Hash(t.Body))
		return mixBool(h, t.Erased)
	case Lam:
		h = mixUint64(h, Hash(t.Bind))
		h = mixUint64(h, Hash(t.Body))
		return mixBool(h, t.Erased)
	case App:
		h = mixUint64(h, Hash(t.Func))
		h = mixUint64(h, Hash(t.Argm))
		return mixBool(h, t.Erased)
	case Slf:
		return mixUint64(h, Hash(t.Body))
	case New:
		h = mixUint64(h, Hash(t.Type))
		return mixUint64(h, Hash(t.Expr))
	case Use:
		return mixUint64(h, Hash(t.Expr))
	case Val:
		return mixUint32(h, t.Numb)
	case Op1:
		h = mix(h, byte(t.OpCode))
		h = mixUint64(h, Hash(t.Num0))
		return mixUint64(h, Hash(t.Num1))
	case Op2:
		h = mix(h, byte(t.OpCode))
		h = mixUint64(h, Hash(t.Num0))
		return mixUint64(h, Hash(t.Num1))
	case Ite:
		h = mixUint64(h, Hash(t.Cond))
		h = mixUint64(h, Hash(t.Ift))
		return mixUint64(h, Hash(t.Iff))
	case Ann:
		h = mixUint64(h, Hash(t.Type))
		return mixUint64(h, Hash(t.Expr))
	case Log:
		h = mixUint64(h, Hash(t.Msge))
		return mixUint64(h, Hash(t.Expr))
	case Hol:
		return mixString(h, t.HoleName)
	case Ref:
		h = mixString(h, t.RefName)
		return mixBool(h, t.Erased)
	}
	return h
}
