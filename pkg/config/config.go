// Package config loads the user's ai-context configuration file and merges it
// with command-line flags into the resolved configuration consumed by the
// aggregation engine.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFileName is the config file looked up when --config is not given.
	DefaultFileName = "ai-context.yaml"

	// DefaultOutput is the output path used when neither the CLI nor the
	// config file names one.
	DefaultOutput = "ai-context.md"
)

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrInvalid is returned when the config file cannot be decoded or fails validation.
	ErrInvalid = errors.New("invalid config")
)

// Template is the starter configuration written by `ai-context init`.
const Template = `# ai-context configuration
#
# Patterns are evaluated in order against the directory ai-context is run from.
# A leading "!" removes previously matched files (or whole directories, such
# as "!vendor/"). Hidden files are only matched by patterns that name them,
# for example ".github/**/*.yml". Braces are literal characters.
patterns:
  - "**/*.go"
  - "go.mod"
  - "!**/*_test.go"

# Output file, relative to the working directory. --output takes precedence.
output: ai-context.md

# Render a tree of the included files below the header.
# tree: false

# Also honour the .gitignore in the working directory.
# gitignore: false

# Concurrent file readers (0 means one per CPU).
# workers: 0

# Skip files larger than this many KB (0 disables the limit).
# maxFileSizeKB: 0
`

// File models the user-authored configuration file. Pointer fields are nil
// when the key is absent, so flag precedence can tell "unset" from "zero".
type File struct {
	Patterns      []string `yaml:"patterns"`
	Output        string   `yaml:"output,omitempty"`
	Tree          *bool    `yaml:"tree,omitempty"`
	Gitignore     *bool    `yaml:"gitignore,omitempty"`
	Workers       *int     `yaml:"workers,omitempty"`
	MaxFileSizeKB *int     `yaml:"maxFileSizeKB,omitempty"`
}

// hclFile is the decoding target for .hcl configs.
type hclFile struct {
	Patterns      []string `hcl:"patterns"`
	Output        *string  `hcl:"output,optional"`
	Tree          *bool    `hcl:"tree,optional"`
	Gitignore     *bool    `hcl:"gitignore,optional"`
	Workers       *int     `hcl:"workers,optional"`
	MaxFileSizeKB *int     `hcl:"max_file_size_kb,optional"`
}

// Load reads and validates the config file at path. Files ending in .hcl are
// decoded as HCL; anything else as YAML (which also accepts JSON).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var f *File
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		f, err = decodeHCL(path, data)
	} else {
		f, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return f, nil
}

func decodeYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config file is empty")
		}
		return nil, err
	}
	return &f, nil
}

func decodeHCL(path string, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	hf, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(hf.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}

	f := &File{
		Patterns:      parsed.Patterns,
		Tree:          parsed.Tree,
		Gitignore:     parsed.Gitignore,
		Workers:       parsed.Workers,
		MaxFileSizeKB: parsed.MaxFileSizeKB,
	}
	// gohcl already enforces presence of the attribute; an empty list may
	// decode to nil.
	if f.Patterns == nil {
		f.Patterns = []string{}
	}
	if parsed.Output != nil {
		f.Output = *parsed.Output
	}
	return f, nil
}

// Validate checks the shape of a decoded config file.
func (f *File) Validate() error {
	if f.Patterns == nil {
		return errors.New(`missing required key "patterns"`)
	}
	for i, p := range f.Patterns {
		glob := strings.TrimPrefix(p, "!")
		if strings.TrimSpace(glob) == "" {
			return fmt.Errorf("pattern %d is empty", i+1)
		}
		if !doublestar.ValidatePattern(LiteralBraces(filepath.ToSlash(glob))) {
			return fmt.Errorf("pattern %d (%q) is not a valid glob", i+1, p)
		}
	}
	if f.Workers != nil && *f.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", *f.Workers)
	}
	if f.MaxFileSizeKB != nil && *f.MaxFileSizeKB < 0 {
		return fmt.Errorf("maxFileSizeKB must not be negative, got %d", *f.MaxFileSizeKB)
	}
	return nil
}

// LiteralBraces escapes every unescaped '{' and '}' in a slash-separated
// glob so doublestar treats them as plain characters. Patterns do not
// support brace expansion.
func LiteralBraces(glob string) string {
	if !strings.ContainsAny(glob, "{}") {
		return glob
	}
	var b strings.Builder
	b.Grow(len(glob) + 4)
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '\\':
			b.WriteByte(c)
			if i+1 < len(glob) {
				i++
				b.WriteByte(glob[i])
			}
		case '{', '}':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
