// Package markup renders the small markdown subset returned by the
// explanation model into HTML.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldPattern      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*([^*\n]+?)\*`)
	underlinePattern = regexp.MustCompile(`__(.+?)__`)
)

// Render escapes text and converts **bold**, *italic*, __underline__ and line
// breaks. Markers do not span lines.
func Render(text string) string {
	if text == "" {
		return ""
	}

	out := html.EscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = underlinePattern.ReplaceAllString(out, "<u>$1</u>")
	return strings.ReplaceAll(out, "\n", "<br />")
}
