package tags

import "strings"

// Normalize canonicalizes raw tag input for storage and lookup.
// Entries are trimmed and lower-cased, blanks are dropped and duplicates
// collapse onto their first occurrence, so display order is preserved.
// The result is never nil.
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}

// SplitCSV parses a comma-separated tag filter such as "Dev, tools".
func SplitCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	return Normalize(strings.Split(csv, ","))
}
