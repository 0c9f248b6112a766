package cache

import (
	"path"
	"strings"
)

const likeEscape = "!"

// Match reports whether key matches the glob pattern. Keys never contain '/', so path.Match
// gives Redis glob semantics here.
func Match(pattern, key string) bool {
	ok, err := path.Match(pattern, key)
	return err == nil && ok
}

// likePrefix converts the literal head of a glob into a SQL LIKE prefix expression using '!' as
// the escape character. exact is true when the pattern has no glob meta-characters at all.
func likePrefix(pattern string) (like string, exact bool) {
	idx := strings.IndexAny(pattern, "*?[\\")
	if idx == -1 {
		return pattern, true
	}

	replacer := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return replacer.Replace(pattern[:idx]) + "%", false
}
