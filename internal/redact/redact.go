// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. In a banking context the main concerns are
// account numbers, connection strings, raw SQL fragments, and bearer tokens
// leaking into error messages.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedAccountPlaceholder    = "[REDACTED_ACCOUNT]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedTokenPlaceholder      = "[REDACTED_JWT]"
)

// Precompiled regex patterns
var (
	// Account numbers: 10+ digit runs, the shape of our allocator's output
	accountNumberRegex = regexp.MustCompile(`\b\d{10,}\b`)

	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)

	// Credentials and secrets in key=value form
	secretRegex = regexp.MustCompile(`(?i)(password|passwd|secret|token|key)([=:\s]['"]?)[^'"&\s]{3,}`)

	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)(?:[\s\w,*()='"$]+)?`,
	)

	patternPlaceholders = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{jwtTokenRegex, RedactedTokenPlaceholder},
		{dbConnRegex, RedactedCredentialPlaceholder},
		{secretRegex, RedactedCredentialPlaceholder},
		{sqlRegex, RedactedSQLPlaceholder},
		{accountNumberRegex, RedactedAccountPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patternPlaceholders {
		result = p.pattern.ReplaceAllString(result, p.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
