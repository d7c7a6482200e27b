package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/notifier"
	"github.com/mauv0809/class-league/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, async bool) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		async:    async,
		now:      time.Now,
	}
}

// Publish sends a league event and reports whether it was handed to the broker.
// Failures are logged and swallowed.
func (p *Processor) Publish(eventType pubsub.EventType, ownerID, matchID, summary string, dryRun bool) bool {
	event := pubsub.LeagueEvent{
		Type:    eventType,
		OwnerID: ownerID,
		MatchID: matchID,
		Summary: summary,
		At:      p.now().Unix(),
	}
	if dryRun {
		log.Info("[Dry Run] Would publish league event", "type", eventType, "owner", ownerID, "match", matchID)
		return false
	}
	if err := p.pubsub.SendMessage(eventType, event); err != nil {
		log.Error("Failed to publish league event", "error", err, "type", eventType, "owner", ownerID)
		return false
	}
	p.metrics.IncEventsPublished()
	return true
}

// MatchRecorded announces a newly recorded match. In async mode the announcement
// is left to the event consumer, unless the event could not be published.
func (p *Processor) MatchRecorded(settings league.Settings, result notifier.MatchResult, dryRun bool) {
	published := p.Publish(pubsub.EventMatchRecorded, settings.OwnerID, result.Match.ID, Summary(settings.LeagueType, result), dryRun)
	if p.async && published {
		log.Debug("Result notification deferred to event consumer", "match", result.Match.ID)
		return
	}
	if p.async && !dryRun {
		log.Warn("Event not published, announcing result inline", "match", result.Match.ID)
	}
	if err := p.notifier.SendResultNotification(settings, result, dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "match", result.Match.ID)
	}
}

// HandleMatchRecorded sends the result notification for a consumed match-recorded event.
func (p *Processor) HandleMatchRecorded(ctx context.Context, event pubsub.LeagueEvent, dryRun bool) error {
	if event.Type != pubsub.EventMatchRecorded {
		log.Debug("Ignoring league event", "type", event.Type, "owner", event.OwnerID)
		return nil
	}
	log.Info("Handling recorded match", "owner", event.OwnerID, "match", event.MatchID)

	match, err := p.store.GetMatch(ctx, event.OwnerID, event.MatchID)
	if err != nil {
		return fmt.Errorf("failed to load match %s: %w", event.MatchID, err)
	}
	settings, err := p.store.GetSettings(ctx, event.OwnerID)
	if err != nil {
		log.Warn("Settings not found for event, using defaults", "owner", event.OwnerID, "error", err)
		defaults := league.DefaultSettings(event.OwnerID)
		settings = &defaults
	}
	teams, err := p.store.GetTeams(ctx, event.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	result := notifier.MatchResult{
		Match:     *match,
		Team1Name: league.TeamName(teams, match.Team1ID),
		Team2Name: league.TeamName(teams, match.Team2ID),
	}
	if err := p.notifier.SendResultNotification(*settings, result, dryRun); err != nil {
		return fmt.Errorf("failed to send result notification: %w", err)
	}
	return nil
}

// AnnounceStandings posts the current leaderboard.
func (p *Processor) AnnounceStandings(settings league.Settings, standings []league.Standing, dryRun bool) error {
	if err := p.notifier.SendStandings(settings, standings, dryRun); err != nil {
		return fmt.Errorf("failed to send standings: %w", err)
	}
	return nil
}

// Summary renders a one-line description of a match.
func Summary(leagueType league.LeagueType, result notifier.MatchResult) string {
	m := result.Match
	if leagueType.OrDefault() == league.LeagueTypeMission || m.Team1ID == m.Team2ID {
		return fmt.Sprintf("%s: %s", result.Team1Name, league.FormatValue(m.Score1))
	}
	return fmt.Sprintf("%s %s : %s %s", result.Team1Name, league.FormatValue(m.Score1), league.FormatValue(m.Score2), result.Team2Name)
}
