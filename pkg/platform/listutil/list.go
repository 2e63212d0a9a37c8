// Package listutil normalizes list-valued settings such as broker addresses
// and CORS origins.
package listutil

import "strings"

// Normalize splits comma-separated entries, trims each value and drops
// blanks and repeats. First occurrence wins.
//
//	Normalize([]string{"a:9092, b:9092", "a:9092", " "}) // ["a:9092" "b:9092"]
func Normalize(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
