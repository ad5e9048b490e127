package aggregate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aicontext/pkg/config"
	"aicontext/pkg/ignore"
)

// Engine turns a resolved configuration into a rendered document.
type Engine struct {
	workDir  string
	fsys     fs.FS
	now      func() time.Time
	reporter Reporter
	matcher  PathMatcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS replaces the filesystem patterns are resolved against. It must be
// rooted at the working directory. Defaults to os.DirFS(workDir).
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) { e.fsys = fsys }
}

// WithClock sets the time source for the header timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithReporter sets the event sink. Defaults to discarding events.
func WithReporter(r Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithIgnore sets a matcher applied in addition to the ignore files the
// engine loads from the working directory.
func WithIgnore(m PathMatcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// New returns an Engine scanning workDir.
func New(workDir string, opts ...Option) (*Engine, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	e := &Engine{
		workDir:  abs,
		now:      time.Now,
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fsys == nil {
		e.fsys = os.DirFS(abs)
	}
	if e.reporter == nil {
		e.reporter = nopReporter{}
	}
	return e, nil
}

// Generate builds the document for cfg and writes it to cfg.OutputFilePath,
// replacing any existing file. Only a failure to produce or write the
// document is returned as an error; unreadable files are reported and skipped.
func (e *Engine) Generate(cfg config.Resolved) (Document, error) {
	doc, err := e.Build(cfg)
	if err != nil {
		return Document{}, err
	}

	if err := writeOutput(cfg.OutputFilePath, doc.Content); err != nil {
		return doc, fmt.Errorf("%w: %s: %v", ErrWriteOutput, cfg.OutputFilePath, err)
	}

	e.report(Event{Kind: OutputWritten, Path: cfg.OutputFilePath, Count: len(doc.Files), Bytes: len(doc.Content)})
	return doc, nil
}

// Build resolves patterns, reads matched files and renders the document
// without writing it.
func (e *Engine) Build(cfg config.Resolved) (Document, error) {
	var b strings.Builder
	renderHeader(&b, e.now(), e.relative(cfg.ConfigFilePath))

	if len(cfg.Patterns) == 0 {
		e.report(Event{Kind: NoPatterns})
		b.WriteString(NoPatternsSentinel)
		return Document{Content: []byte(b.String()), Status: StatusNoPatterns}, nil
	}

	matcher, err := e.ignoreMatcher(cfg.Gitignore)
	if err != nil {
		return Document{}, err
	}

	files, err := e.resolve(cfg.Patterns, matcher, e.relative(cfg.OutputFilePath))
	if err != nil {
		return Document{}, err
	}

	if len(files) == 0 {
		e.report(Event{Kind: NoMatches})
		b.WriteString(NoMatchesSentinel)
		return Document{Content: []byte(b.String()), Status: StatusNoMatches}, nil
	}

	doc := Document{Status: StatusOK}
	results := e.readFiles(files, cfg.Workers, cfg.MaxFileSizeKB)
	sections := make([]section, 0, len(files))
	for i, res := range results {
		if res.err != nil {
			doc.Skipped = append(doc.Skipped, SkippedFile{Path: files[i], Err: res.err})
			e.report(Event{Kind: FileSkipped, Path: files[i], Err: res.err})
			continue
		}
		sections = append(sections, section{path: files[i], content: res.content})
		doc.Files = append(doc.Files, files[i])
	}

	if cfg.Tree && len(doc.Files) > 0 {
		renderTree(&b, doc.Files)
	}
	for _, s := range sections {
		renderSection(&b, s)
	}

	doc.Content = []byte(b.String())
	return doc, nil
}

// ignoreMatcher combines the ignore files found in the working directory with
// any matcher supplied through WithIgnore.
func (e *Engine) ignoreMatcher(gitignore bool) (PathMatcher, error) {
	names := []string{ignore.ContextIgnoreFile}
	if gitignore {
		names = append([]string{ignore.GitIgnoreFile}, names...)
	}

	loaded, err := ignore.Load(e.fsys, nil, names...)
	if err != nil {
		return nil, err
	}

	switch {
	case e.matcher == nil:
		return loaded, nil
	case loaded.Len() == 0:
		return e.matcher, nil
	default:
		return anyMatcher{loaded, e.matcher}, nil
	}
}

// anyMatcher ignores a path when any of its matchers does.
type anyMatcher []PathMatcher

func (m anyMatcher) MatchesPath(path string) bool {
	for _, matcher := range m {
		if matcher.MatchesPath(path) {
			return true
		}
	}
	return false
}

// relative renders p relative to the working directory with forward slashes,
// falling back to p itself when it lies outside or on another volume.
func (e *Engine) relative(p string) string {
	if p == "" {
		return ""
	}
	rel, err := filepath.Rel(e.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func (e *Engine) report(ev Event) {
	e.reporter.Report(ev)
}

// writeOutput creates the parent directory and overwrites path with data.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
