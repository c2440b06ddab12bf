package domain

import (
	"regexp"
	"strings"
)

// Directive is a single structured instruction embedded in model output,
// asking the bot to send a direct message to a third party. It lives for
// one response and is discarded after execution.
type Directive struct {
	Target  string
	Payload string
}

// Wire format: [DM:<target>:<payload>], target excludes ':', payload runs to
// the first ']'. The strip pattern swallows surrounding whitespace so
// removing inline markup leaves single spaces behind, not gaps.
var (
	directivePattern = regexp.MustCompile(`\[DM:([^:\]]+):([^\]]+)\]`)
	directiveStrip   = regexp.MustCompile(`\s*\[DM:[^:\]]+:[^\]]+\]\s*`)
)

// ExtractDirective scans model output for an embedded DM directive. Only the
// first occurrence is honored, but every occurrence is stripped from the
// returned text so stray markup never reaches the user. Without a match the
// text comes back untouched.
func ExtractDirective(text string) (*Directive, string) {
	match := directivePattern.FindStringSubmatch(text)
	if match == nil {
		return nil, text
	}

	cleaned := strings.TrimSpace(directiveStrip.ReplaceAllString(text, " "))

	return &Directive{
		Target:  strings.TrimSpace(match[1]),
		Payload: strings.TrimSpace(match[2]),
	}, cleaned
}
