package validation

import (
	"regexp"
	"strings"
)

var (
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
	strippedCharsRegex = regexp.MustCompile("[<>\"'`]")

	// Injection patterns checked against the concatenation of all free-text
	// fields of a submission. One hit rejects the whole submission.
	suspiciousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<\s*script`),
		regexp.MustCompile(`(?i)javascript\s*:`),
		regexp.MustCompile(`(?i)\bon\w+\s*=`),
		regexp.MustCompile(`(?i)data\s*:\s*text/html`),
		regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop|union|exec|alter|create)\s`),
		regexp.MustCompile(`--|/\*|\*/|;|\|\||&&`),
	}
)

// Sanitize trims, collapses whitespace runs to a single space and strips
// angle brackets, quotes and backticks. Idempotent.
func Sanitize(text string) string {
	cleaned := strippedCharsRegex.ReplaceAllString(text, "")
	cleaned = whitespaceRunRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// IsSuspicious reports whether text matches any known injection pattern.
func IsSuspicious(text string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
