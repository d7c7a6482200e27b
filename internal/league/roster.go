package league

import "strings"

// ParseRoster splits a comma-separated list of team names.
// Names are trimmed and empty entries are dropped.
func ParseRoster(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
