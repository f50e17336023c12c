// Package redact scrubs sensitive information from strings before they are
// logged. Error text that crosses the orchestration boundary can carry
// connection strings, API keys, bearer tokens, or SQL fragments from deeper
// layers; everything logged about a failure goes through this package first.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

// Precompiled patterns, ordered roughly by how damaging a leak would be.
var (
	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|db|database)://[^@\s]+@`)

	// API keys, tokens and generic secrets in key=value or key: value form
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Bearer tokens in the standard three-part base64url JWT format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Filesystem paths that would reveal deployment layout
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// SQL statements leaking through driver errors
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$]+)?`,
	)

	// Host:port pairs from dial errors
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)
)

var patternPlaceholders = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	{dbConnRegex, RedactedCredentialPlaceholder},
	{apiKeyRegex, RedactedKeyPlaceholder},
	{jwtTokenRegex, "[REDACTED_JWT]"},
	{unixPathRegex, RedactedPathPlaceholder},
	{sqlRegex, "[REDACTED_SQL]"},
	{hostPortRegex, "[REDACTED_HOST]"},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pp := range patternPlaceholders {
		result = pp.pattern.ReplaceAllString(result, pp.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
