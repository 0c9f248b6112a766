package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func lowerFirst(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToLower(r)) + value[size:]
}

// trimmed returns the trimmed value of an optional string. A nil pointer stays nil.
func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}

// optionalID normalises an optional foreign key: nil and blank both mean "no reference".
func optionalID(value *string) *string {
	value = trimmed(value)
	if value == nil || *value == "" {
		return nil
	}
	return value
}
