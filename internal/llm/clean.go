package llm

import (
	"regexp"
	"strings"
)

// Models decorate completions with markdown even when asked not to. Clean
// strips the common artifacts so the UI renders plain text.
var (
	reCodeFence = regexp.MustCompile("(?s)```.*?```")
	reBold      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalic    = regexp.MustCompile(`\*([^*]+)\*`)
	reUnderBold = regexp.MustCompile(`__([^_]+)__`)
	reUnder     = regexp.MustCompile(`_([^_]+)_`)
	reHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	reLink      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reInline    = regexp.MustCompile("`([^`]+)`")
	reSpaces    = regexp.MustCompile(`\s+`)
)

// Clean removes markdown decoration and collapses whitespace.
func Clean(text string) string {
	if text == "" {
		return text
	}
	text = reCodeFence.ReplaceAllString(text, "")
	text = reBold.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reUnderBold.ReplaceAllString(text, "$1")
	text = reUnder.ReplaceAllString(text, "$1")
	text = reHeading.ReplaceAllString(text, "")
	text = reLink.ReplaceAllString(text, "$1")
	text = reInline.ReplaceAllString(text, "$1")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
