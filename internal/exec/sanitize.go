package exec

import "strings"

// Sanitize normalizes raw engine output for display: trims surrounding
// whitespace, turns escaped newline sequences into literal newlines,
// and strips one layer of surrounding quotes if present.
func Sanitize(output string) string {
	s := strings.TrimSpace(output)
	s = strings.ReplaceAll(s, `\n`, "\n")

	if len(s) >= 2 {
		if (strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) ||
			(strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")) {
			s = s[1 : len(s)-1]
		}
	}
	return s
}
