package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
)

// Source identifies which layer supplied a setting.
type Source string

const (
	SourceCLI     Source = "cli"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// Choice is a resolved setting together with the layer it came from.
type Choice[T any] struct {
	Value  T
	Source Source
}

// Choose applies the precedence CLI > config file > default. Presence is
// decided by the set flags, never by comparing values, since a user may
// explicitly pass a value equal to the default.
func Choose[T any](cli T, cliSet bool, file T, fileSet bool, def T) Choice[T] {
	switch {
	case cliSet:
		return Choice[T]{Value: cli, Source: SourceCLI}
	case fileSet:
		return Choice[T]{Value: file, Source: SourceConfig}
	default:
		return Choice[T]{Value: def, Source: SourceDefault}
	}
}

// ResolveOutputPath picks the active output path. An empty config value
// counts as unset.
func ResolveOutputPath(cliValue string, cliSet bool, fileValue, defaultValue string) Choice[string] {
	return Choose(cliValue, cliSet, fileValue, fileValue != "", defaultValue)
}

// Flags carries command-line values and whether each was explicitly given.
type Flags struct {
	Output           string
	OutputSet        bool
	Tree             bool
	TreeSet          bool
	Gitignore        bool
	GitignoreSet     bool
	Workers          int
	WorkersSet       bool
	MaxFileSizeKB    int
	MaxFileSizeKBSet bool
}

// Resolved is the merged configuration for a single run.
type Resolved struct {
	Patterns       []string
	OutputFilePath string // absolute
	ConfigFilePath string // absolute
	OutputSource   Source
	Tree           bool
	Gitignore      bool
	Workers        int
	MaxFileSizeKB  int
}

// Resolve merges flags and the loaded file. Relative output paths are
// resolved against workDir, which is also the scan root for patterns.
func Resolve(workDir, configPath string, file *File, flags Flags) (Resolved, error) {
	if file == nil {
		file = &File{}
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to resolve config path: %w", err)
	}

	output := ResolveOutputPath(flags.Output, flags.OutputSet, file.Output, DefaultOutput)
	outPath := output.Value
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(workDir, outPath)
	}
	outPath, err = filepath.Abs(outPath)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to resolve output path: %w", err)
	}

	tree := Choose(flags.Tree, flags.TreeSet, lo.FromPtr(file.Tree), file.Tree != nil, false)
	gitignore := Choose(flags.Gitignore, flags.GitignoreSet, lo.FromPtr(file.Gitignore), file.Gitignore != nil, false)
	workers := Choose(flags.Workers, flags.WorkersSet, lo.FromPtr(file.Workers), file.Workers != nil, 0)
	maxSize := Choose(flags.MaxFileSizeKB, flags.MaxFileSizeKBSet, lo.FromPtr(file.MaxFileSizeKB), file.MaxFileSizeKB != nil, 0)

	return Resolved{
		Patterns:       slices.Clone(file.Patterns),
		OutputFilePath: outPath,
		ConfigFilePath: absConfig,
		OutputSource:   output.Source,
		Tree:           tree.Value,
		Gitignore:      gitignore.Value,
		Workers:        workers.Value,
		MaxFileSizeKB:  maxSize.Value,
	}, nil
}
