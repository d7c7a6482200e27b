package classroom

import (
	"errors"
	"time"

	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/processor"
	"github.com/mauv0809/class-league/internal/store"
)

var (
	ErrUnauthenticated    = errors.New("sign in or open a shared link first")
	ErrForbidden          = errors.New("not allowed in this view")
	ErrAccessCodeMismatch = errors.New("access code does not match")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTeamNotFound       = errors.New("team not found")
)

// Usage counter keys.
const (
	UsageMatchesRecorded = "matches_recorded"
	UsageMatchesDeleted  = "matches_deleted"
	UsageRosterReplaced  = "rosters_replaced"
	UsageExports         = "exports"
)

// Snapshot is one consistent read of an owner's league.
type Snapshot struct {
	Settings league.Settings
	Teams    []league.Team
	Matches  []league.Match
}

// LeagueView is what a viewer sees after every load or mutation.
type LeagueView struct {
	Settings       league.Settings   `json:"settings"`
	Teams          []league.Team     `json:"teams"`
	Matches        []league.Match    `json:"matches"`
	Standings      []league.Standing `json:"standings"`
	IndicatorLabel string            `json:"indicator_label"`
	Viewer         access.Viewer     `json:"viewer"`
}

// SettingsInput is the editable part of the settings.
type SettingsInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Notice      string            `json:"notice"`
	AccessCode  string            `json:"access_code"`
	BonusItems  []string          `json:"bonus_config"`
	LeagueType  league.LeagueType `json:"league_type"`
	Unit        string            `json:"league_unit"`
}

// Export is a rendered spreadsheet download.
type Export struct {
	FileName string
	Data     []byte
}

// ShareLinks are the two shareable URLs of a league.
type ShareLinks struct {
	Full     string `json:"full"`
	ReadOnly string `json:"read_only"`
}

type service struct {
	store     store.LeagueStore
	processor *processor.Processor
	metrics   metrics.Metrics
	usage     metrics.UsageStore
	now       func() time.Time
}
