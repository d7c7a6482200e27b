package league

import "time"

// LeagueType selects how a recorded value turns into a ranking value.
type LeagueType string

const (
	// LeagueTypePoints awards 3/2/1 points for a win/draw/loss plus bonus items.
	LeagueTypePoints LeagueType = "points"
	// LeagueTypeTime ranks by the lowest positive recorded time.
	LeagueTypeTime LeagueType = "time"
	// LeagueTypeTimeHigh ranks by the highest recorded value.
	LeagueTypeTimeHigh LeagueType = "time_high"
	// LeagueTypeCount ranks by the highest recorded count.
	LeagueTypeCount LeagueType = "count"
	// LeagueTypeMission ranks by the number of successful attempts.
	LeagueTypeMission LeagueType = "mission"
)

const (
	// NoRecordLow is the ranking value of a team without a record in a time league.
	NoRecordLow = 999999
	// NoRecordHigh is the ranking value of a team without a record in a time_high or count league.
	NoRecordHigh = -1

	// OpponentPlaceholder replaces the opponent name when its team record is gone.
	OpponentPlaceholder = "Opponent"
	// DeletedTeamPlaceholder replaces a team name in the match history when its team record is gone.
	DeletedTeamPlaceholder = "Deleted"
	// NoRecordDisplay is shown instead of a sentinel ranking value.
	NoRecordDisplay = "-"

	// DateLayout is the layout of match dates.
	DateLayout = "2006-01-02"
)

// Valid reports whether t is one of the known league types.
func (t LeagueType) Valid() bool {
	switch t {
	case LeagueTypePoints, LeagueTypeTime, LeagueTypeTimeHigh, LeagueTypeCount, LeagueTypeMission:
		return true
	}
	return false
}

// OrDefault returns t, or LeagueTypePoints when t is unknown.
func (t LeagueType) OrDefault() LeagueType {
	if t.Valid() {
		return t
	}
	return LeagueTypePoints
}

// Team is a participant in an owner's league.
type Team struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Members   string    `json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Match is one recorded game or attempt.
type Match struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"match_date"`
	Team1ID   string    `json:"team1_id"`
	Team2ID   string    `json:"team2_id"`
	Score1    float64   `json:"score1"`
	Score2    float64   `json:"score2"`
	Memo      string    `json:"strategy_memo"`
	Bonus1    []string  `json:"bonus_details1"`
	Bonus2    []string  `json:"bonus_details2"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds the per-owner league configuration.
type Settings struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Notice      string     `json:"notice"`
	AccessCode  string     `json:"access_code"`
	BonusItems  []string   `json:"bonus_config"`
	LeagueType  LeagueType `json:"league_type"`
	Unit        string     `json:"league_unit"`
}

// Result tags a single match from one team's point of view.
type Result string

const (
	ResultWin      Result = "W"
	ResultDraw     Result = "D"
	ResultLoss     Result = "L"
	ResultRecorded Result = "P"
)

// MatchDetail is one entry of a team's match history.
type MatchDetail struct {
	MatchID  string  `json:"id"`
	Date     string  `json:"date"`
	Opponent string  `json:"opponent"`
	MyScore  float64 `json:"my_score"`
	OpScore  float64 `json:"op_score"`
	Result   Result  `json:"result"`
	Memo     string  `json:"memo"`
}

// Standing is one row of the computed leaderboard.
type Standing struct {
	Rank         int           `json:"rank"`
	TeamID       string        `json:"team_id"`
	TeamName     string        `json:"team_name"`
	RankingValue float64       `json:"ranking_value"`
	Display      string        `json:"display_value"`
	Unit         string        `json:"unit"`
	GamesPlayed  int           `json:"total_games"`
	Wins         int           `json:"wins"`
	Draws        int           `json:"draws"`
	Losses       int           `json:"losses"`
	BonusTotal   int           `json:"bonus_total"`
	History      []MatchDetail `json:"history"`
}

// DefaultSettings returns the settings a new owner starts with.
func DefaultSettings(ownerID string) Settings {
	return Settings{
		OwnerID:     ownerID,
		Title:       "Our Class Sports League",
		Description: "Play fair and have fun!",
		Notice:      "Welcome! Edit these details in the admin settings.",
		AccessCode:  "1234",
		BonusItems:  []string{"Manners", "Fair play"},
		LeagueType:  LeagueTypePoints,
		Unit:        "pts",
	}
}
