package ignore

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMatchesPath(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		path    string
		ignored bool
	}{
		{name: "basename at any depth", lines: []string{"*.log"}, path: "a/b/debug.log", ignored: true},
		{name: "basename no match", lines: []string{"*.log"}, path: "a/b/debug.txt", ignored: false},
		{name: "directory name ignores contents", lines: []string{"node_modules"}, path: "web/node_modules/x/index.js", ignored: true},
		{name: "dir-only rule ignores contents", lines: []string{"build/"}, path: "build/out.js", ignored: true},
		{name: "dir-only rule skips same-named file", lines: []string{"build/"}, path: "build", ignored: false},
		{name: "leading slash anchors", lines: []string{"/vendor"}, path: "vendor/x.go", ignored: true},
		{name: "leading slash not nested", lines: []string{"/vendor"}, path: "pkg/vendor/x.go", ignored: false},
		{name: "interior slash anchors", lines: []string{"docs/*.md"}, path: "sub/docs/a.md", ignored: false},
		{name: "interior slash matches root", lines: []string{"docs/*.md"}, path: "docs/a.md", ignored: true},
		{name: "double star middle", lines: []string{"a/**/z.txt"}, path: "a/b/c/z.txt", ignored: true},
		{name: "double star middle zero dirs", lines: []string{"a/**/z.txt"}, path: "a/z.txt", ignored: true},
		{name: "question mark", lines: []string{"file?.go"}, path: "file1.go", ignored: true},
		{name: "question mark not slash", lines: []string{"a?b"}, path: "a/b", ignored: false},
		{name: "dot is literal", lines: []string{"*.go"}, path: "xgo", ignored: false},
		{name: "negation re-includes", lines: []string{"*.log", "!keep.log"}, path: "keep.log", ignored: false},
		{name: "last rule wins", lines: []string{"!keep.log", "*.log"}, path: "keep.log", ignored: true},
		{name: "comments and blanks", lines: []string{"# *.go", "", "   "}, path: "main.go", ignored: false},
		{name: "escaped hash", lines: []string{`\#notes`}, path: "#notes", ignored: true},
		{name: "character class", lines: []string{"*.[tm]d"}, path: "docs/x.md", ignored: true},
		{name: "character class no match", lines: []string{"*.[tm]d"}, path: "x.c", ignored: false},
		{name: "character range", lines: []string{"log[0-9].txt"}, path: "log7.txt", ignored: true},
		{name: "bare negation skipped", lines: []string{"!"}, path: "x", ignored: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			m.compile("", tt.lines)
			assert.Equal(t, tt.ignored, m.MatchesPath(tt.path))
		})
	}
}

func TestMatchesPathWithPatternReportsRule(t *testing.T) {
	m := New(nil)
	m.compile("", []string{"*.tmp", "!important.tmp"})

	matched, rule := m.MatchesPathWithPattern("important.tmp")
	assert.False(t, matched)
	require.NotNil(t, rule)
	assert.Equal(t, "!important.tmp", rule.Line)
	assert.Equal(t, 2, rule.LineNo)

	matched, rule = m.MatchesPathWithPattern("scratch.tmp")
	assert.True(t, matched)
	require.NotNil(t, rule)
	assert.Equal(t, 1, rule.LineNo)

	matched, rule = m.MatchesPathWithPattern("other.go")
	assert.False(t, matched)
	assert.Nil(t, rule)
}

func TestNilMatcherMatchesNothing(t *testing.T) {
	var m *Matcher
	assert.False(t, m.MatchesPath("anything"))
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, GitIgnoreFile), []byte("dist/\n*.min.js\r\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ContextIgnoreFile), []byte("# local\n!keep.min.js\n"), 0644))

	m, err := Load(os.DirFS(root), nil, GitIgnoreFile, ContextIgnoreFile, ".missingignore")
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	assert.True(t, m.MatchesPath("dist/app.js"))
	assert.True(t, m.MatchesPath("web/app.min.js"))
	assert.False(t, m.MatchesPath("keep.min.js"))
	assert.False(t, m.MatchesPath("src/app.js"))

	matched, rule := m.MatchesPathWithPattern("dist/app.js")
	assert.True(t, matched)
	assert.Equal(t, GitIgnoreFile, rule.Source)
}

func TestLoadLogsEachFile(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fsys := fstest.MapFS{
		ContextIgnoreFile: &fstest.MapFile{Data: []byte("*.[tm]d\n# docs\n")},
	}

	m, err := Load(fsys, zap.New(core), GitIgnoreFile, ContextIgnoreFile)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Ignore file does not exist", entries[0].Message)
	assert.Equal(t, "Compiled ignore file", entries[1].Message)
	assert.EqualValues(t, 1, entries[1].ContextMap()["patternCount"])
}
