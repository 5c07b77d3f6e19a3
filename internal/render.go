package internal

import (
	"regexp"
	"strings"
)

var (
	headingMarker  = regexp.MustCompile(`(?m)^#+\s*`)
	bulletMarker   = regexp.MustCompile(`(?m)^\s*[*-]\s*`)
	numberedMarker = regexp.MustCompile(`(?m)^\s*\d+\.\s*`)
	emphasis       = regexp.MustCompile(`\*(.*?)\*`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// EscapeHTML escapes user text for display
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// CleanAssistantText strips markdown markers from an assistant reply
func CleanAssistantText(text string) string {
	text = headingMarker.ReplaceAllString(text, "")
	text = bulletMarker.ReplaceAllString(text, "")
	text = numberedMarker.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "$1")
	return strings.ReplaceAll(text, "*", "")
}

// RenderAssistantHTML renders a cleaned, escaped assistant reply as an HTML fragment
func RenderAssistantHTML(text string) string {
	body := EscapeHTML(CleanAssistantText(text))
	body = strings.ReplaceAll(body, "\n", "<br>")
	return `<div class="ai-response">` + body + `</div>`
}

// RenderUserHTML renders an escaped user message as an HTML fragment
func RenderUserHTML(text string) string {
	return `<div class="user-message">` + strings.ReplaceAll(EscapeHTML(text), "\n", "<br>") + `</div>`
}
