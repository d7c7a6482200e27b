package classroom

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/export"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/notifier"
	"github.com/mauv0809/class-league/internal/processor"
	"github.com/mauv0809/class-league/internal/pubsub"
	"github.com/mauv0809/class-league/internal/store"
	"golang.org/x/sync/errgroup"
)

// New creates a new classroom Service.
func New(store store.LeagueStore, processor *processor.Processor, metrics metrics.Metrics, usage metrics.UsageStore) Service {
	return &service{
		store:     store,
		processor: processor,
		metrics:   metrics,
		usage:     usage,
		now:       time.Now,
	}
}

// Snapshot reads settings, teams and matches of an owner concurrently.
// An owner without a settings row gets the default settings.
func (s *service) Snapshot(ctx context.Context, ownerID string) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		settings, err := s.settings(gctx, ownerID)
		if err != nil {
			return err
		}
		snap.Settings = *settings
		return nil
	})
	g.Go(func() error {
		teams, err := s.store.GetTeams(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to fetch teams: %w", err)
		}
		snap.Teams = teams
		return nil
	})
	g.Go(func() error {
		matches, err := s.store.GetMatches(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to fetch matches: %w", err)
		}
		snap.Matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug("Fetched league snapshot", "owner", ownerID, "teams", len(snap.Teams), "matches", len(snap.Matches))
	return snap, nil
}

func (s *service) League(ctx context.Context, viewer access.Viewer) (*LeagueView, error) {
	if err := requireView(viewer); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}

	settings := snap.Settings
	if !viewer.CanAdmin() {
		settings.AccessCode = ""
	}
	return &LeagueView{
		Settings:       settings,
		Teams:          snap.Teams,
		Matches:        snap.Matches,
		Standings:      s.computeStandings(snap),
		IndicatorLabel: league.IndicatorLabel(snap.Settings.LeagueType.OrDefault()),
		Viewer:         viewer,
	}, nil
}

func (s *service) Standings(ctx context.Context, viewer access.Viewer) ([]league.Standing, error) {
	if err := requireView(viewer); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}
	return s.computeStandings(snap), nil
}

func (s *service) TeamHistory(ctx context.Context, viewer access.Viewer, teamID string) (*league.Standing, error) {
	standings, err := s.Standings(ctx, viewer)
	if err != nil {
		return nil, err
	}
	standing, ok := league.FindStanding(standings, teamID)
	if !ok {
		return nil, ErrTeamNotFound
	}
	return &standing, nil
}

func (s *service) SearchHistory(ctx context.Context, viewer access.Viewer, term string) ([]league.HistoryEntry, error) {
	if err := requireView(viewer); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}
	return league.SearchMatches(snap.Matches, snap.Teams, term), nil
}

func (s *service) RecordMatch(ctx context.Context, viewer access.Viewer, in league.MatchInput, dryRun bool) (*league.Match, error) {
	if err := requireRecord(viewer); err != nil {
		return nil, err
	}
	settings, teams, err := s.roster(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}
	in, err = league.ValidateMatch(in, teams, settings.LeagueType, s.now())
	if err != nil {
		return nil, err
	}

	match := &league.Match{OwnerID: viewer.OwnerID}
	applyInput(match, in)
	if err := s.store.InsertMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	log.Info("Recorded match", "owner", viewer.OwnerID, "match", match.ID, "role", viewer.Role)
	s.metrics.IncMatchesRecorded()
	s.usage.Increment(UsageMatchesRecorded)

	s.processor.MatchRecorded(*settings, notifier.MatchResult{
		Match:     *match,
		Team1Name: league.TeamName(teams, match.Team1ID),
		Team2Name: league.TeamName(teams, match.Team2ID),
	}, dryRun)
	return match, nil
}

func (s *service) EditMatch(ctx context.Context, viewer access.Viewer, matchID string, in league.MatchInput, dryRun bool) (*league.Match, error) {
	if err := requireRecord(viewer); err != nil {
		return nil, err
	}
	match, err := s.store.GetMatch(ctx, viewer.OwnerID, matchID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match: %w", err)
	}
	settings, teams, err := s.roster(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}
	in, err = league.ValidateMatch(in, teams, settings.LeagueType, s.now())
	if err != nil {
		return nil, err
	}

	applyInput(match, in)
	if err := s.store.UpdateMatch(ctx, match); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	log.Info("Updated match", "owner", viewer.OwnerID, "match", match.ID)

	summary := processor.Summary(settings.LeagueType, notifier.MatchResult{
		Match:     *match,
		Team1Name: league.TeamName(teams, match.Team1ID),
		Team2Name: league.TeamName(teams, match.Team2ID),
	})
	s.processor.Publish(pubsub.EventMatchUpdated, viewer.OwnerID, match.ID, summary, dryRun)
	return match, nil
}

// DeleteMatch removes a match. The access code is required from every role.
func (s *service) DeleteMatch(ctx context.Context, viewer access.Viewer, matchID, accessCode string, dryRun bool) error {
	if err := requireRecord(viewer); err != nil {
		return err
	}
	settings, err := s.settings(ctx, viewer.OwnerID)
	if err != nil {
		return err
	}
	if err := s.checkCode(settings, accessCode); err != nil {
		return err
	}

	if err := s.store.DeleteMatch(ctx, viewer.OwnerID, matchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match: %w", err)
	}
	log.Info("Deleted match", "owner", viewer.OwnerID, "match", matchID)
	s.metrics.IncMatchesDeleted()
	s.usage.Increment(UsageMatchesDeleted)
	s.processor.Publish(pubsub.EventMatchDeleted, viewer.OwnerID, matchID, "", dryRun)
	return nil
}

// Unlock checks the access code for the guest gate and the admin gate.
// Owners are always unlocked. Read-only viewers can never unlock.
func (s *service) Unlock(ctx context.Context, viewer access.Viewer, accessCode string) error {
	if viewer.OwnerID == "" {
		return ErrUnauthenticated
	}
	if viewer.CanAdmin() {
		return nil
	}
	if viewer.ReadOnly() {
		return ErrForbidden
	}
	settings, err := s.settings(ctx, viewer.OwnerID)
	if err != nil {
		return err
	}
	return s.checkCode(settings, accessCode)
}

func (s *service) SaveSettings(ctx context.Context, viewer access.Viewer, accessCode string, in SettingsInput, dryRun bool) (*league.Settings, error) {
	settings, err := s.authorizeAdmin(ctx, viewer, accessCode)
	if err != nil {
		return nil, err
	}
	if in.LeagueType == "" {
		in.LeagueType = settings.LeagueType
	}
	if !in.LeagueType.Valid() {
		return nil, fmt.Errorf("%w: %s", league.ErrInvalidLeague, in.LeagueType)
	}

	settings.Title = strings.TrimSpace(in.Title)
	settings.Description = strings.TrimSpace(in.Description)
	settings.Notice = strings.TrimSpace(in.Notice)
	if code := strings.TrimSpace(in.AccessCode); code != "" {
		settings.AccessCode = code
	}
	if in.BonusItems != nil {
		settings.BonusItems = league.NormalizeBonus(in.BonusItems)
	}
	settings.LeagueType = in.LeagueType
	settings.Unit = strings.TrimSpace(in.Unit)

	if err := s.store.SaveSettings(ctx, *settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	log.Info("Saved settings", "owner", viewer.OwnerID, "league_type", settings.LeagueType)
	s.processor.Publish(pubsub.EventSettingsUpdated, viewer.OwnerID, "", settings.Title, dryRun)
	return settings, nil
}

func (s *service) SaveBonusItems(ctx context.Context, viewer access.Viewer, accessCode string, items []string, dryRun bool) (*league.Settings, error) {
	settings, err := s.authorizeAdmin(ctx, viewer, accessCode)
	if err != nil {
		return nil, err
	}
	settings.BonusItems = league.NormalizeBonus(items)
	if err := s.store.SaveSettings(ctx, *settings); err != nil {
		return nil, fmt.Errorf("failed to save bonus items: %w", err)
	}
	log.Info("Saved bonus items", "owner", viewer.OwnerID, "count", len(settings.BonusItems))
	s.processor.Publish(pubsub.EventSettingsUpdated, viewer.OwnerID, "", strings.Join(settings.BonusItems, ", "), dryRun)
	return settings, nil
}

// ReplaceRoster deletes every team of the owner and inserts the parsed names.
// Matches keep their team IDs and show placeholders afterwards.
func (s *service) ReplaceRoster(ctx context.Context, viewer access.Viewer, accessCode, raw string, dryRun bool) ([]league.Team, error) {
	if _, err := s.authorizeAdmin(ctx, viewer, accessCode); err != nil {
		return nil, err
	}
	names := league.ParseRoster(raw)
	if len(names) == 0 {
		return nil, league.ErrEmptyRoster
	}
	teams, err := s.store.ReplaceTeams(ctx, viewer.OwnerID, names)
	if err != nil {
		return nil, fmt.Errorf("failed to replace teams: %w", err)
	}
	log.Info("Replaced roster", "owner", viewer.OwnerID, "teams", len(teams))
	s.usage.Increment(UsageRosterReplaced)
	s.processor.Publish(pubsub.EventRosterReplaced, viewer.OwnerID, "", strings.Join(names, ", "), dryRun)
	return teams, nil
}

func (s *service) Export(ctx context.Context, viewer access.Viewer, accessCode string) (*Export, error) {
	if _, err := s.authorizeAdmin(ctx, viewer, accessCode); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}
	data, err := export.Workbook(snap.Settings, s.computeStandings(snap), snap.Matches, snap.Teams)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	s.usage.Increment(UsageExports)
	return &Export{
		FileName: export.FileName(snap.Settings.Title, s.now()),
		Data:     data,
	}, nil
}

func (s *service) AnnounceStandings(ctx context.Context, viewer access.Viewer, accessCode string, dryRun bool) error {
	if _, err := s.authorizeAdmin(ctx, viewer, accessCode); err != nil {
		return err
	}
	snap, err := s.Snapshot(ctx, viewer.OwnerID)
	if err != nil {
		return err
	}
	return s.processor.AnnounceStandings(snap.Settings, s.computeStandings(snap), dryRun)
}

// ShareLink returns the guest links for an owner's league.
func ShareLink(baseURL, ownerID string) ShareLinks {
	full := strings.TrimRight(baseURL, "/") + "/?ref=" + url.QueryEscape(ownerID)
	return ShareLinks{
		Full:     full,
		ReadOnly: full + "&view=1",
	}
}

func (s *service) computeStandings(snap *Snapshot) []league.Standing {
	start := time.Now()
	standings := league.ComputeStandings(snap.Teams, snap.Matches, snap.Settings.LeagueType, snap.Settings.Unit)
	s.metrics.ObserveStandingsDuration(time.Since(start).Seconds())
	return standings
}

func (s *service) settings(ctx context.Context, ownerID string) (*league.Settings, error) {
	settings, err := s.store.GetSettings(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := league.DefaultSettings(ownerID)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

func (s *service) roster(ctx context.Context, ownerID string) (*league.Settings, []league.Team, error) {
	settings, err := s.settings(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	teams, err := s.store.GetTeams(ctx, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	return settings, teams, nil
}

// authorizeAdmin admits owners directly and guests that present the access code.
func (s *service) authorizeAdmin(ctx context.Context, viewer access.Viewer, accessCode string) (*league.Settings, error) {
	if viewer.OwnerID == "" {
		return nil, ErrUnauthenticated
	}
	if !viewer.CanRecord() {
		return nil, ErrForbidden
	}
	settings, err := s.settings(ctx, viewer.OwnerID)
	if err != nil {
		return nil, err
	}
	if viewer.CanAdmin() {
		return settings, nil
	}
	if err := s.checkCode(settings, accessCode); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *service) checkCode(settings *league.Settings, accessCode string) error {
	if accessCode != settings.AccessCode {
		s.metrics.IncAccessCodeRejected()
		log.Warn("Access code rejected", "owner", settings.OwnerID)
		return ErrAccessCodeMismatch
	}
	return nil
}

func requireView(viewer access.Viewer) error {
	if viewer.OwnerID == "" {
		return ErrUnauthenticated
	}
	if !viewer.CanView() {
		return ErrForbidden
	}
	return nil
}

func requireRecord(viewer access.Viewer) error {
	if viewer.OwnerID == "" {
		return ErrUnauthenticated
	}
	if !viewer.CanRecord() {
		return ErrForbidden
	}
	return nil
}

func applyInput(match *league.Match, in league.MatchInput) {
	match.Date = in.Date
	match.Team1ID = in.Team1ID
	match.Team2ID = in.Team2ID
	match.Score1 = in.Score1
	match.Score2 = in.Score2
	match.Memo = in.Memo
	match.Bonus1 = in.Bonus1
	match.Bonus2 = in.Bonus2
}
