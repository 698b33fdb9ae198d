// Package services holds pure domain logic shared across adapters and
// orchestrators: pattern sets, redaction helpers, id generation, reports.
package services

import (
	"regexp"
	"strings"
)

// RedactionToken is the fixed placeholder substituted for removed
// identity data.
const RedactionToken = "[REMOVED]"

// EmailRegex is the deliberately loose address matcher applied to values
// regardless of key names.
var EmailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// telemetry id key-name patterns, matched case-insensitively.
var telemetryPatternSources = []string{
	`device[_-]?id`,
	`machine[_-]?id`,
	`telemetry[_-]?id`,
	`client[_-]?id`,
	`unique[_-]?id`,
	`installation[_-]?id`,
	`session[_-]?id`,
	`user[_-]?id`,
	`guid`,
	`uuid`,
}

// account-data key-name patterns.
var accountPatternSources = []string{
	`email`,
	`username`,
	`user[_-]?name`,
	`login`,
	`account`,
	`profile`,
	`identity`,
}

// Pattern is one compiled key-name matcher, keeping its source string as
// the tag recorded on matches.
type Pattern struct {
	Source string
	Re     *regexp.Regexp
}

func compilePatterns(sources []string) []Pattern {
	out := make([]Pattern, 0, len(sources))
	for _, s := range sources {
		out = append(out, Pattern{Source: s, Re: regexp.MustCompile(`(?i)` + s)})
	}
	return out
}

var (
	telemetryPatterns = compilePatterns(telemetryPatternSources)
	accountPatterns   = compilePatterns(accountPatternSources)
)

// TelemetryPatterns returns the telemetry id key-name pattern set.
func TelemetryPatterns() []Pattern { return telemetryPatterns }

// AccountPatterns returns the account-data key-name pattern set.
func AccountPatterns() []Pattern { return accountPatterns }

// MatchKey returns the tag of the first pattern the key matches.
func MatchKey(patterns []Pattern, key string) (string, bool) {
	for _, p := range patterns {
		if p.Re.MatchString(key) {
			return p.Source, true
		}
	}
	return "", false
}

// IsEmail reports whether the whole value is an email address.
func IsEmail(value string) bool {
	m := EmailRegex.FindStringIndex(value)
	return m != nil && m[0] == 0
}

// RedactWholeWord replaces standalone occurrences of word with the
// redaction token, leaving larger tokens that merely contain it intact.
func RedactWholeWord(content, word string) string {
	if word == "" {
		return content
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.ReplaceAllString(content, RedactionToken)
}

// RedactLiteral replaces every literal occurrence of value with the
// redaction token.
func RedactLiteral(content, value string) string {
	if value == "" {
		return content
	}
	return strings.ReplaceAll(content, value, RedactionToken)
}

// LocalPart returns the part of an email address before the '@'.
func LocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return ""
}
