package utils

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Industry names are words, spaces, ampersands and hyphens.
	validIndustryPattern = regexp.MustCompile(`^[\p{L}0-9 &,.'-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const maxIndustryLength = 100

// ValidateIndustryName checks the shape of an industry name or slug. Whether
// it names a known industry is decided by the dashboard, not here.
func ValidateIndustryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("industry is required")
	}

	if len(name) > maxIndustryLength {
		return errors.New("industry too long (max 100 characters)")
	}

	if dangerousPattern.MatchString(name) || !validIndustryPattern.MatchString(name) {
		return errors.New("industry contains invalid characters")
	}

	return nil
}

// ParseSensitivity parses a slider value. Any finite or infinite number is
// accepted, since range checks clamp rather than reject.
func ParseSensitivity(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("sensitivity is required")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, errors.New("sensitivity must be a number")
	}

	if math.IsNaN(v) {
		return 0, errors.New("sensitivity must be a number")
	}

	return v, nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// FieldErrors collects validation messages per request field.
type FieldErrors map[string][]string

// Add records a message for field.
func (f FieldErrors) Add(field string, err error) {
	if err == nil {
		return
	}
	f[field] = append(f[field], err.Error())
}

// Empty reports whether no errors were recorded.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}
