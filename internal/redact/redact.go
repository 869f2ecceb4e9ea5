// Package redact scrubs credentials, tokens, file paths and SQL from strings
// before they are logged or returned to clients.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; earlier replacements hide their matches from later rules.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		replacement: RedactedStackPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|redis)://[^@\s]+@`),
		replacement: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`),
		replacement: "Bearer " + RedactedTokenPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]{3,}['"]?`),
		replacement: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)[\w-]*(?:api[_-]?key|secret|token)\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}['"]?`),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(?:SELECT\s.+?\sFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b[^;\n]*`),
		replacement: RedactedSQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmailPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: RedactedPathPlaceholder,
	},
}

// String redacts sensitive fragments from s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// Error redacts the text of err. A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Attr returns a slog attribute named "error" carrying the redacted error text.
func Attr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
