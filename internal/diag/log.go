package diag

// LogRecord is a single structured reduction-time or check-time log entry
// produced by a Log term during reduction or checking.
type LogRecord struct {
	Depth   int    // binder depth at the point the Log term was reduced
	Message string // rendering of the normalized message term
	Term    string // rendering of the term the message annotates, if any
}

// LogSink receives LogRecords from the reducer and the type checker. A nil
// LogSink is valid and silently discards records.
type LogSink interface {
	Log(rec LogRecord)
}

// SliceSink is a LogSink that accumulates records in memory, useful for
// tests.
type SliceSink struct {
	Records []LogRecord
}

func (s *SliceSink) Log(rec LogRecord) {
	if s == nil {
		return
	}
	s.Records = append(s.Records, rec)
}
