package aggregate

import (
	"fmt"
	"path"
	"strings"
	"time"

	"aicontext/pkg/version"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Sentinel lines written instead of file sections.
const (
	NoPatternsSentinel = "<!-- No patterns provided in the configuration. -->\n"
	NoMatchesSentinel  = "<!-- No files matched the provided patterns. -->\n"
)

// section is one readable file ready to render.
type section struct {
	path    string
	content string
}

// renderHeader writes the comment block that opens every document.
func renderHeader(b *strings.Builder, generated time.Time, configPath string) {
	fmt.Fprintf(b, "<!-- Context generated by %s on %s -->\n", version.AppName, generated.UTC().Format(TimestampLayout))
	fmt.Fprintf(b, "<!-- Config file: %s -->\n\n", configPath)
}

// renderSection writes the path annotation and fenced block for one file.
func renderSection(b *strings.Builder, s section) {
	body := strings.TrimSpace(s.content)
	fence := fenceFor(body)
	fmt.Fprintf(b, "path: %s\n", s.path)
	fmt.Fprintf(b, "%s%s\n%s\n%s\n\n", fence, LanguageTag(s.path), body, fence)
}

// LanguageTag returns the lowercased text after the last '.' of the base
// name, or "" when there is none.
func LanguageTag(rel string) string {
	base := path.Base(rel)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// fenceFor returns a backtick fence longer than any backtick run in body, with
// a minimum of three, so embedded fences cannot close the block early.
func fenceFor(body string) string {
	longest, run := 0, 0
	for i := 0; i < len(body); i++ {
		if body[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
