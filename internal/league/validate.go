package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTeamRequired  = errors.New("both teams are required")
	ErrSameTeam      = errors.New("select two different teams")
	ErrInvalidDate   = errors.New("match date must be YYYY-MM-DD")
	ErrUnknownTeam   = errors.New("team does not belong to this league")
	ErrEmptyRoster   = errors.New("roster must contain at least one team name")
	ErrInvalidLeague = errors.New("unknown league type")
)

// MatchInput is the user-supplied part of a match.
type MatchInput struct {
	Date    string   `json:"match_date"`
	Team1ID string   `json:"team1_id"`
	Team2ID string   `json:"team2_id"`
	Score1  float64  `json:"score1"`
	Score2  float64  `json:"score2"`
	Memo    string   `json:"strategy_memo"`
	Bonus1  []string `json:"bonus_details1"`
	Bonus2  []string `json:"bonus_details2"`
}

// ValidateMatch checks in against the owner's teams and returns a normalized copy.
// An empty date becomes today's date in now's location.
func ValidateMatch(in MatchInput, teams []Team, leagueType LeagueType, now time.Time) (MatchInput, error) {
	in.Team1ID = strings.TrimSpace(in.Team1ID)
	in.Team2ID = strings.TrimSpace(in.Team2ID)
	in.Date = strings.TrimSpace(in.Date)

	if leagueType.OrDefault() == LeagueTypeMission && in.Team2ID == "" {
		in.Team2ID = in.Team1ID
	}
	if in.Team1ID == "" || in.Team2ID == "" {
		return in, ErrTeamRequired
	}
	if leagueType.OrDefault() != LeagueTypeMission && in.Team1ID == in.Team2ID {
		return in, ErrSameTeam
	}

	if in.Date == "" {
		in.Date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return in, ErrInvalidDate
	}

	known := make(map[string]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}
	for _, id := range []string{in.Team1ID, in.Team2ID} {
		if !known[id] {
			return in, fmt.Errorf("%w: %s", ErrUnknownTeam, id)
		}
	}

	in.Memo = strings.TrimSpace(in.Memo)
	in.Bonus1 = NormalizeBonus(in.Bonus1)
	in.Bonus2 = NormalizeBonus(in.Bonus2)
	if in.Team1ID == in.Team2ID {
		in.Score2 = 0
		in.Bonus2 = []string{}
	}
	return in, nil
}

// NormalizeBonus trims labels and drops empties and duplicates, keeping first occurrences.
func NormalizeBonus(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
