package aggregate

import "errors"

var (
	// ErrWriteOutput wraps failures to write the rendered document.
	ErrWriteOutput = errors.New("failed to write output")

	// ErrNotText marks files skipped because they are binary or not valid UTF-8.
	ErrNotText = errors.New("file is not valid text")

	// ErrTooLarge marks files skipped because they exceed the size limit.
	ErrTooLarge = errors.New("file exceeds size limit")

	// ErrInvalidPattern marks patterns that are not valid globs.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrPatternOutsideRoot marks patterns that would escape the working directory.
	ErrPatternOutsideRoot = errors.New("pattern escapes the working directory")
)

// Status describes how a document was produced.
type Status int

const (
	StatusOK         Status = iota // one section per readable file
	StatusNoPatterns               // pattern list was empty
	StatusNoMatches                // no file matched any pattern
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoPatterns:
		return "no-patterns"
	case StatusNoMatches:
		return "no-matches"
	default:
		return "unknown"
	}
}

// SkippedFile is a matched file left out of the document.
type SkippedFile struct {
	Path string
	Err  error
}

// Document is the rendered output of one run.
type Document struct {
	Content []byte
	Files   []string // rendered files, in output order
	Skipped []SkippedFile
	Status  Status
}

// PathMatcher decides whether a slash-separated relative path is ignored.
type PathMatcher interface {
	MatchesPath(path string) bool
}
