package league

import "strings"

// HistoryEntry is a match as shown in the league-wide history list.
type HistoryEntry struct {
	Match
	Team1Name string `json:"team1_name"`
	Team2Name string `json:"team2_name"`
}

// TeamName resolves a team ID against teams, falling back to DeletedTeamPlaceholder.
func TeamName(teams []Team, teamID string) string {
	for _, t := range teams {
		if t.ID == teamID {
			return t.Name
		}
	}
	return DeletedTeamPlaceholder
}

// SearchMatches keeps the matches whose team names or memo contain term.
// A deleted team has no name to match, so the placeholder is never searched.
// An empty term keeps every match. Input order is preserved.
func SearchMatches(matches []Match, teams []Team, term string) []HistoryEntry {
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	display := func(name string) string {
		if name == "" {
			return DeletedTeamPlaceholder
		}
		return name
	}

	entries := make([]HistoryEntry, 0, len(matches))
	for _, m := range matches {
		name1, name2 := names[m.Team1ID], names[m.Team2ID]
		if term != "" &&
			!(name1 != "" && strings.Contains(name1, term)) &&
			!(name2 != "" && strings.Contains(name2, term)) &&
			!strings.Contains(m.Memo, term) {
			continue
		}
		entries = append(entries, HistoryEntry{
			Match:     m,
			Team1Name: display(name1),
			Team2Name: display(name2),
		})
	}
	return entries
}
