// Package ignore implements gitignore-style path filtering for files matched
// by ai-context patterns.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// Well-known ignore file names.
const (
	ContextIgnoreFile = ".aicontextignore"
	GitIgnoreFile     = ".gitignore"
)

// Pattern is a single compiled ignore rule.
type Pattern struct {
	Rule   gitignore.Pattern
	Negate bool   // Rule started with '!'.
	Line   string // Original line.
	LineNo int    // 1-based line number in its source.
	Source string // File the rule came from.
}

// Matcher is an ordered collection of ignore rules. The last matching rule wins.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger disables debug output.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load compiles the named ignore files found at the root of fsys, in order.
// Files that do not exist are skipped.
func Load(fsys fs.FS, logger *zap.Logger, names ...string) (*Matcher, error) {
	m := New(logger)
	for _, name := range names {
		if err := m.CompileFile(fsys, name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Len reports the number of compiled rules.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// CompileFile reads an ignore file from fsys and adds its rules. A missing
// file is not an error.
func (m *Matcher) CompileFile(fsys fs.FS, path string) error {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist", zap.String("filePath", path))
			return nil
		}
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	before := len(m.patterns)
	m.compile(path, lines)
	m.logger.Debug("Compiled ignore file",
		zap.String("filePath", path),
		zap.Int("patternCount", len(m.patterns)-before))
	return nil
}

func (m *Matcher) compile(source string, lines []string) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || trimmed == "!" || trimmed == "/" {
			continue
		}
		m.patterns = append(m.patterns, &Pattern{
			Rule:   gitignore.ParsePattern(trimmed, nil),
			Negate: strings.HasPrefix(trimmed, "!"),
			Line:   line,
			LineNo: i + 1,
			Source: source,
		})
	}
}

// MatchesPath reports whether the slash-separated relative file path is
// ignored.
func (m *Matcher) MatchesPath(path string) bool {
	matched, _ := m.MatchesPathWithPattern(path)
	return matched
}

// MatchesPathWithPattern is MatchesPath that also returns the deciding rule.
func (m *Matcher) MatchesPathWithPattern(path string) (bool, *Pattern) {
	if m == nil || len(m.patterns) == 0 {
		return false, nil
	}
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	parts := strings.Split(path, "/")

	for i := len(m.patterns) - 1; i >= 0; i-- {
		switch m.patterns[i].Rule.Match(parts, false) {
		case gitignore.Exclude:
			return true, m.patterns[i]
		case gitignore.Include:
			return false, m.patterns[i]
		}
	}
	return false, nil
}
