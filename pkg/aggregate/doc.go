// Package aggregate resolves an ordered list of include/exclude glob patterns
// against a working directory and renders the matched files into a single
// Markdown document.
//
// Patterns are evaluated in order. An inclusion pattern adds every file it
// matches; an exclusion pattern (leading "!") removes every file collected so
// far that it matches, directly or through one of its parent directories.
// Later inclusions may add removed files back. Patterns are always rooted at
// the working directory, never at the config file's directory.
//
// Braces are literal characters. Hidden files and directories are only
// matched by patterns that spell out the leading dot.
//
// The engine reports progress and per-file problems through a Reporter and
// never logs or exits on its own.
package aggregate
