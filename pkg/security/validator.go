package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxSearchQueryLength defines the maximum allowed length for search queries
	MaxSearchQueryLength = 100
)

var (
	// ErrEmptyQuery is returned when a required search query is blank
	ErrEmptyQuery = errors.New("search query is required")
	// ErrQueryTooLong is returned when a search query exceeds MaxSearchQueryLength
	ErrQueryTooLong = errors.New("search query too long")
	// ErrInvalidQuery is returned when a search query contains unsafe input
	ErrInvalidQuery = errors.New("search query contains invalid characters")
	// ErrUnknownField is returned when a search targets a field that is not searchable
	ErrUnknownField = errors.New("search field is not searchable")
)

// SearchableFields lists the user fields a search may target.
var SearchableFields = []string{"name", "email"}

// dangerousPatterns contains regex patterns that indicate injection attempts
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)\b(or|and)\s+['"].*['"]\s*=\s*['"].*['"]`),
	regexp.MustCompile(`(--|/\*|\*/)`),
	regexp.MustCompile(`(?i)\b(waitfor|benchmark|sleep)\b`),
	regexp.MustCompile(`(?i)(<script|</script|javascript:|vbscript:|onload=|onerror=)`),
}

// ValidateSearchQuery trims and checks a required search query.
func ValidateSearchQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	if len([]rune(query)) > MaxSearchQueryLength {
		return "", ErrQueryTooLong
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(query) {
			return "", ErrInvalidQuery
		}
	}

	for _, char := range query {
		if !isValidSearchChar(char) {
			return "", ErrInvalidQuery
		}
	}

	return query, nil
}

// ParseSearchFields splits a comma-separated field list. An empty list means all
// searchable fields.
func ParseSearchFields(fields string) ([]string, error) {
	if strings.TrimSpace(fields) == "" {
		return append([]string(nil), SearchableFields...), nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(fields, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if !isSearchableField(f) {
			return nil, ErrUnknownField
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

func isSearchableField(f string) bool {
	for _, s := range SearchableFields {
		if s == f {
			return true
		}
	}
	return false
}

// isValidSearchChar checks if a character is safe for search queries
func isValidSearchChar(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' ||
		char == '@' || char == '+' || char == '\''
}
