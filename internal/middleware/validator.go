package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization utilities

// MaxIdeaLength bounds a single idea in runes.
const MaxIdeaLength = 2000

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateIdeaLength rejects ideas longer than MaxIdeaLength runes.
// Blank ideas are left to the pipeline, which owns that rule.
func ValidateIdeaLength(idea string) error {
	if n := utf8.RuneCountInString(idea); n > MaxIdeaLength {
		return fmt.Errorf("idea too long: %d characters (max %d)", n, MaxIdeaLength)
	}
	return nil
}

// ValidateLimit validates history limit; 0 means everything
func ValidateLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > 1000 {
		return 1000 // max limit
	}
	return limit
}
