package aggregate

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"aicontext/pkg/config"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// Pattern is a parsed config pattern.
type Pattern struct {
	Raw     string // as written in the config
	Glob    string // normalised, without the '!' prefix
	Exclude bool
	// Dot is set when the glob names a dot-prefixed segment itself. Only
	// then may an inclusion match hidden files and directories.
	Dot bool
}

// ParsePattern normalises a config pattern into a glob rooted at the working
// directory. Leading "./" segments are dropped; absolute patterns and
// patterns starting with ".." are rejected. Braces are literal characters.
// An exclusion may end in "/" to name a directory.
func ParsePattern(raw string) (Pattern, error) {
	p := Pattern{Raw: raw}
	glob := raw
	if strings.HasPrefix(glob, "!") {
		p.Exclude = true
		glob = glob[1:]
	}

	glob = filepath.ToSlash(glob)
	for strings.HasPrefix(glob, "./") {
		glob = strings.TrimLeft(glob[2:], "/")
	}
	if glob == "" || glob == "." {
		return p, fmt.Errorf("%w: %q is empty", ErrInvalidPattern, raw)
	}
	if path.IsAbs(glob) || filepath.IsAbs(glob) || glob == ".." || strings.HasPrefix(glob, "../") {
		return p, fmt.Errorf("%w: %q", ErrPatternOutsideRoot, raw)
	}
	if p.Exclude {
		glob = strings.TrimRight(glob, "/")
		if glob == "" || glob == "." {
			return p, fmt.Errorf("%w: %q is empty", ErrInvalidPattern, raw)
		}
	}
	glob = config.LiteralBraces(glob)
	if !doublestar.ValidatePattern(glob) {
		return p, fmt.Errorf("%w: %q", ErrInvalidPattern, raw)
	}

	p.Glob = glob
	p.Dot = strings.HasPrefix(glob, ".") || strings.Contains(glob, "/.")
	return p, nil
}

// hidden reports whether any segment of rel starts with a dot.
func hidden(rel string) bool {
	return strings.HasPrefix(rel, ".") || strings.Contains(rel, "/.")
}

// Excludes reports whether an exclusion pattern removes rel, either by
// matching it directly or by matching one of its parent directories.
func (p Pattern) Excludes(rel string) bool {
	for candidate := rel; candidate != "." && candidate != "/"; candidate = path.Dir(candidate) {
		if doublestar.MatchUnvalidated(p.Glob, candidate) {
			return true
		}
	}
	return false
}

// resolve evaluates patterns in order against the engine's filesystem and
// returns the sorted, de-duplicated set of matched files. skip holds the
// relative output path so a previous run's document is never re-ingested.
func (e *Engine) resolve(raw []string, ig PathMatcher, skip string) ([]string, error) {
	matched := make(map[string]struct{})

	for _, r := range raw {
		p, err := ParsePattern(r)
		if err != nil {
			e.report(Event{Kind: PatternSkipped, Pattern: r, Err: err})
			continue
		}

		if p.Exclude {
			removed := 0
			for rel := range matched {
				if p.Excludes(rel) {
					delete(matched, rel)
					removed++
				}
			}
			e.report(Event{Kind: PatternExcluded, Pattern: r, Count: removed})
			continue
		}

		added := 0
		err = doublestar.GlobWalk(e.fsys, p.Glob, func(rel string, _ fs.DirEntry) error {
			if !p.Dot && hidden(rel) {
				return nil
			}
			if rel == skip || (ig != nil && ig.MatchesPath(rel)) {
				e.report(Event{Kind: FileIgnored, Pattern: r, Path: rel})
				return nil
			}
			if _, ok := matched[rel]; !ok {
				matched[rel] = struct{}{}
				added++
			}
			return nil
		}, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern %q: %w", r, err)
		}
		e.report(Event{Kind: PatternScanned, Pattern: r, Count: added})
	}

	files := lo.Keys(matched)
	sort.Strings(files)
	return files, nil
}
