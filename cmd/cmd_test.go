package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aicontext/pkg/aggregate"
	"aicontext/pkg/config"
	"aicontext/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupProject creates a working directory with two text files and a config.
func setupProject(t *testing.T, configBody string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "one.txt"), "hello")
	writeFile(t, filepath.Join(dir, "a", "two.txt"), "world")
	writeFile(t, filepath.Join(dir, config.DefaultFileName), configBody)
	return dir
}

func runRoot(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	prev, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateUsesConfigOutput(t *testing.T) {
	dir := setupProject(t, "patterns: [\"a/*.txt\"]\noutput: from-config.md\n")

	doc, err := generate(dir, generateOptions{ConfigPath: config.DefaultFileName}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, aggregate.StatusOK, doc.Status)
	assert.Equal(t, []string{"a/one.txt", "a/two.txt"}, doc.Files)

	written, err := os.ReadFile(filepath.Join(dir, "from-config.md"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "<!-- Config file: ai-context.yaml -->\n")
	assert.Contains(t, string(written), "path: a/one.txt\n```txt\nhello\n```\n\npath: a/two.txt\n```txt\nworld\n```\n\n")
}

func TestGenerateMissingConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := generate(dir, generateOptions{ConfigPath: "missing.yaml"}, zap.NewNop())
	require.ErrorIs(t, err, config.ErrNotFound)
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultOutput))
}

func TestGenerateInvalidConfig(t *testing.T) {
	dir := setupProject(t, "output: x.md\n")
	_, err := generate(dir, generateOptions{ConfigPath: config.DefaultFileName}, zap.NewNop())
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestRootOutputFlagWinsOverConfig(t *testing.T) {
	dir := setupProject(t, "patterns: [\"a/*.txt\"]\noutput: from-config.md\n")

	_, err := runRoot(t, dir, "--output", "from-cli.md")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from-cli.md"))
	assert.NoFileExists(t, filepath.Join(dir, "from-config.md"))
}

func TestRootOutputFlagEqualToDefaultStillWins(t *testing.T) {
	dir := setupProject(t, "patterns: [\"a/*.txt\"]\noutput: from-config.md\n")

	_, err := runRoot(t, dir, "-o", config.DefaultOutput)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.DefaultOutput))
	assert.NoFileExists(t, filepath.Join(dir, "from-config.md"))
}

func TestRootFallsBackToDefaultOutput(t *testing.T) {
	dir := setupProject(t, "patterns: [\"a/*.txt\"]\n")

	_, err := runRoot(t, dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.DefaultOutput))
}

func TestRootCustomConfigPathAndTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(dir, "conf", "ctx.hcl"), `patterns = ["src/*.go"]`+"\n")

	_, err := runRoot(t, dir, "--config", filepath.Join("conf", "ctx.hcl"), "--tree")
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, config.DefaultOutput))
	require.NoError(t, err)
	assert.Contains(t, string(written), "<!-- Config file: conf/ctx.hcl -->\n")
	assert.Contains(t, string(written), "└── src/\n    └── main.go\n")
	assert.Contains(t, string(written), "path: src/main.go\n```go\npackage main\n```\n\n")
}

func TestRootNoMatchesSucceeds(t *testing.T) {
	dir := setupProject(t, "patterns: [\"**/*.rs\"]\n")

	_, err := runRoot(t, dir)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, config.DefaultOutput))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(written), aggregate.NoMatchesSentinel))
}

func TestRootRejectsEmptyOutput(t *testing.T) {
	dir := setupProject(t, "patterns: [\"a/*.txt\"]\n")

	_, err := runRoot(t, dir, "--output=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output must not be empty")
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	dir := setupProject(t, "patterns: [\"a/*.txt\"]\n")

	_, err := runRoot(t, dir, "a/one.txt")
	require.Error(t, err)
}

func TestInitWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+config.DefaultFileName)

	written, err := os.ReadFile(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, config.Template, string(written))

	_, err = runRoot(t, dir, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runRoot(t, dir, "init", "--force")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, dir, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)

	out, err = runRoot(t, dir, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Get().String()+"\n", out)
}
