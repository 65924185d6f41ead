package utils

import "regexp"

var (
	linkRegex    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	headingRegex = regexp.MustCompile(`(?m)^#+\s*(.+)$`)
	boldRegex    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// ConvertMarkdownToSlack rewrites common model-emitted markdown into Slack
// mrkdwn: [text](url) links become <url|text>, headings become bold lines,
// and **bold** becomes *bold*.
func ConvertMarkdownToSlack(message string) string {
	// Links first, so their brackets don't collide with other rules
	result := linkRegex.ReplaceAllString(message, "<$2|$1>")

	// Headings become bold lines; embedded bold markers are stripped since
	// the whole line is already bold
	result = headingRegex.ReplaceAllStringFunc(result, func(match string) string {
		content := headingRegex.ReplaceAllString(match, "$1")
		content = boldRegex.ReplaceAllString(content, "$1")
		return "*" + content + "*"
	})

	return boldRegex.ReplaceAllString(result, "*$1*")
}
