package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

const (
	keySeparator = ":"
	// FilterActive scopes list pages and items to active rows.
	FilterActive = "active"
	// FilterAll scopes list pages to every non-deleted row.
	FilterAll = "all"

	hashedLen = 17
)

// BuildKey returns {namespace}:{filter}:page:{page}:limit:{limit}[:{extra}:{value}]*.
// Extras are emitted in ascending name order and empty values are skipped, so logically equal
// queries share one key.
func BuildKey(namespace, filter string, page, limit int, extras map[string]string) string {
	var b strings.Builder
	b.WriteString(segment(namespace))
	b.WriteString(keySeparator)
	b.WriteString(segment(filter))
	b.WriteString(":page:")
	b.WriteString(strconv.Itoa(page))
	b.WriteString(":limit:")
	b.WriteString(strconv.Itoa(limit))

	if len(extras) > 0 {
		names := make([]string, 0, len(extras))
		for name, value := range extras {
			if value == "" {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			b.WriteString(keySeparator)
			b.WriteString(segment(name))
			b.WriteString(keySeparator)
			b.WriteString(segment(extras[name]))
		}
	}
	return b.String()
}

// ItemKey returns the key caching a single row: {namespace}:active:{id}.
func ItemKey(namespace, id string) string {
	return segment(namespace) + keySeparator + FilterActive + keySeparator + segment(id)
}

// NamespacePattern matches every key of namespace, list pages and items alike.
func NamespacePattern(namespace string) string {
	return segment(namespace) + keySeparator + "*"
}

// segment returns value unchanged unless it could split a key, act as a glob or pass for an
// already hashed segment, in which case it is replaced by "x" followed by its 64-bit xxhash
// in hex.
func segment(value string) string {
	if !needsHashing(value) {
		return value
	}
	return fmt.Sprintf("x%016x", xxhash.Sum64String(value))
}

func needsHashing(value string) bool {
	if strings.ContainsAny(value, ":*?[]\\/") || looksHashed(value) {
		return true
	}
	return strings.IndexFunc(value, unicode.IsSpace) >= 0
}

func looksHashed(value string) bool {
	if len(value) != hashedLen || value[0] != 'x' {
		return false
	}
	for _, r := range value[1:] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
