package league

import (
	"math"
	"sort"
	"strconv"
)

type teamTally struct {
	Standing
	best  float64
	total float64
}

// ComputeStandings derives the leaderboard for teams from matches under the given league type.
// Every team is listed, including teams without matches. The result depends only on its inputs,
// so it is recomputed on every read instead of being stored.
func ComputeStandings(teams []Team, matches []Match, leagueType LeagueType, unit string) []Standing {
	leagueType = leagueType.OrDefault()

	names := make(map[string]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}

	tallies := make([]*teamTally, 0, len(teams))
	for _, team := range teams {
		tally := &teamTally{
			Standing: Standing{
				TeamID:   team.ID,
				TeamName: team.Name,
				Unit:     unit,
				History:  []MatchDetail{},
			},
			best: initialBest(leagueType),
		}

		for _, m := range matches {
			if m.Team1ID != team.ID && m.Team2ID != team.ID {
				continue
			}
			tally.add(m, team.ID, names, leagueType)
		}

		tally.RankingValue = tally.rankingValue(leagueType)
		tally.Display = displayValue(leagueType, tally.RankingValue)
		sort.SliceStable(tally.History, func(i, j int) bool {
			return tally.History[i].Date > tally.History[j].Date
		})
		tallies = append(tallies, tally)
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if a.RankingValue != b.RankingValue {
			if leagueType == LeagueTypeTime {
				return a.RankingValue < b.RankingValue
			}
			return a.RankingValue > b.RankingValue
		}
		if leagueType == LeagueTypePoints {
			return a.Wins > b.Wins
		}
		return false
	})

	standings := make([]Standing, 0, len(tallies))
	for i, tally := range tallies {
		tally.Rank = i + 1
		standings = append(standings, tally.Standing)
	}
	return standings
}

func initialBest(leagueType LeagueType) float64 {
	if leagueType == LeagueTypeTime {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

func (t *teamTally) add(m Match, teamID string, names map[string]string, leagueType LeagueType) {
	isTeam1 := m.Team1ID == teamID
	myScore, opScore, opponentID, bonus := m.Score2, m.Score1, m.Team1ID, m.Bonus2
	if isTeam1 {
		myScore, opScore, opponentID, bonus = m.Score1, m.Score2, m.Team2ID, m.Bonus1
	}

	t.GamesPlayed++
	t.BonusTotal += len(bonus)
	t.total += myScore

	switch leagueType {
	case LeagueTypeTime:
		if myScore > 0 && myScore < t.best {
			t.best = myScore
		}
	case LeagueTypeTimeHigh, LeagueTypeCount:
		if myScore > t.best {
			t.best = myScore
		}
	}

	var result Result
	if leagueType == LeagueTypePoints {
		switch {
		case myScore > opScore:
			t.Wins++
			result = ResultWin
		case myScore == opScore:
			t.Draws++
			result = ResultDraw
		default:
			t.Losses++
			result = ResultLoss
		}
	} else if myScore > 0 {
		result = ResultRecorded
	} else {
		result = ResultLoss
	}

	opponent, ok := names[opponentID]
	if !ok {
		opponent = OpponentPlaceholder
	}

	t.History = append(t.History, MatchDetail{
		MatchID:  m.ID,
		Date:     m.Date,
		Opponent: opponent,
		MyScore:  myScore,
		OpScore:  opScore,
		Result:   result,
		Memo:     m.Memo,
	})
}

func (t *teamTally) rankingValue(leagueType LeagueType) float64 {
	switch leagueType {
	case LeagueTypeTime:
		if math.IsInf(t.best, 1) {
			return NoRecordLow
		}
		return t.best
	case LeagueTypeTimeHigh, LeagueTypeCount:
		if math.IsInf(t.best, -1) {
			return NoRecordHigh
		}
		return t.best
	case LeagueTypeMission:
		return t.total
	default:
		return float64(t.Wins*3+t.Draws*2+t.Losses) + float64(t.BonusTotal)
	}
}

func displayValue(leagueType LeagueType, value float64) string {
	switch leagueType {
	case LeagueTypeTime, LeagueTypeTimeHigh, LeagueTypeCount:
		if value == NoRecordLow || value == NoRecordHigh {
			return NoRecordDisplay
		}
	}
	return FormatValue(value)
}

// FormatValue renders a score without trailing zeros.
func FormatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FindStanding returns the standing of the given team.
func FindStanding(standings []Standing, teamID string) (Standing, bool) {
	for _, s := range standings {
		if s.TeamID == teamID {
			return s, true
		}
	}
	return Standing{}, false
}

// IndicatorLabel names the ranking column for a league type.
func IndicatorLabel(leagueType LeagueType) string {
	switch leagueType {
	case LeagueTypePoints:
		return "Points"
	case LeagueTypeTime:
		return "Best time (lower)"
	case LeagueTypeTimeHigh:
		return "Best record (higher)"
	case LeagueTypeCount:
		return "Best record"
	case LeagueTypeMission:
		return "Successes"
	default:
		return "Record"
	}
}
