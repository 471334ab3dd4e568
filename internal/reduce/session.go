package reduce

import (
	"kindkernel/internal/diag"
	"kindkernel/internal/term"
)

// Session bundles everything the reducer needs that is not purely
// functional: the definition table, the hole store, a log sink, and a
// per-session cache of erased reference bodies. It is passed explicitly
// rather than held in a package-level global.
type Session struct {
	Defs    map[string]*term.Term
	Holes   HoleStore
	LogSink diag.LogSink
	Opts    Options

	// eraseMemo caches erase(Defs[name]) keyed by (name, erased) so that
	// recursive references don't re-erase their own body on every
	// unfolding. Scoped to this session: two sessions never share a
	// cache entry.
	eraseMemo map[eraseKey]*term.Term
}

// withOpts returns a shallow copy of s using different Options; the
// erase memo, Defs and Holes are shared (same underlying maps), only the
// reduction-class gating changes.
func (s *Session) withOpts(opts Options) *Session {
	clone := *s
	clone.Opts = opts
	return &clone
}

type eraseKey struct {
	name   string
	erased bool
}

// NewSession constructs a Session over a definition table.
func NewSession(defs map[string]*term.Term, holes HoleStore, sink diag.LogSink) *Session {
	return &Session{
		Defs:      defs,
		Holes:     holes,
		LogSink:   sink,
		eraseMemo: make(map[eraseKey]*term.Term),
	}
}

func (s *Session) erasedDef(name string, erased bool) (*term.Term, bool) {
	body, ok := s.Defs[name]
	if !ok {
		return nil, false
	}
	if !erased {
		return body, true
	}
	key := eraseKey{name: name, erased: true}
	if cached, ok := s.eraseMemo[key]; ok {
		return cached, true
	}
	erasedBody := Erase(body)
	s.eraseMemo[key] = erasedBody
	return erasedBody, true
}

func (s *Session) log(depth uint32, message, termStr string) {
	if s == nil || s.LogSink == nil {
		return
	}
	s.LogSink.Log(diag.LogRecord{
		Depth:   int(depth),
		Message: message,
		Term:    termStr,
	})
}
