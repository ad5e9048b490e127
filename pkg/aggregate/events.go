package aggregate

// EventKind enumerates the things the engine reports while it runs.
type EventKind int

const (
	PatternScanned  EventKind = iota // inclusion pattern evaluated; Count = new files
	PatternExcluded                  // exclusion pattern evaluated; Count = files removed
	PatternSkipped                   // pattern unusable; Err says why
	FileIgnored                      // match dropped by ignore rules or because it is the output file
	FileSkipped                      // matched file could not be read as text; Err says why
	NoPatterns                       // empty pattern list, sentinel written
	NoMatches                        // nothing matched, sentinel written
	OutputWritten                    // document written; Count = sections, Bytes = size
)

func (k EventKind) String() string {
	switch k {
	case PatternScanned:
		return "pattern-scanned"
	case PatternExcluded:
		return "pattern-excluded"
	case PatternSkipped:
		return "pattern-skipped"
	case FileIgnored:
		return "file-ignored"
	case FileSkipped:
		return "file-skipped"
	case NoPatterns:
		return "no-patterns"
	case NoMatches:
		return "no-matches"
	case OutputWritten:
		return "output-written"
	default:
		return "unknown"
	}
}

// Event is a single observation from the engine.
type Event struct {
	Kind    EventKind
	Pattern string
	Path    string
	Count   int
	Bytes   int
	Err     error
}

// Reporter receives engine events. The engine calls Report from one
// goroutine at a time, so implementations need no locking.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

// Report calls f(e).
func (f ReporterFunc) Report(e Event) { f(e) }

type nopReporter struct{}

func (nopReporter) Report(Event) {}
