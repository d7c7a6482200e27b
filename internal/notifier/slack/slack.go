package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(settings league.Settings, result notifier.MatchResult, dryRun bool) error {
	msg := s.formatResultNotification(settings, result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(settings league.Settings, standings []league.Standing, dryRun bool) error {
	msg := s.formatStandings(settings, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse renders the leaderboard as a slash command response.
func (s *Notifier) FormatStandingsResponse(settings league.Settings, standings []league.Standing) (any, error) {
	msg := s.formatStandings(settings, standings)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg, nil
}

// formatResultNotification creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatResultNotification(settings league.Settings, result notifier.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)
	m := result.Match
	leagueType := settings.LeagueType.OrDefault()

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏅 %s: new result", leagueTitle(settings)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var resultText string
	if leagueType == league.LeagueTypeMission || m.Team1ID == m.Team2ID {
		outcome := "not yet"
		if m.Score1 > 0 {
			outcome = "success"
		}
		resultText = fmt.Sprintf("%s: %s", result.Team1Name, outcome)
	} else {
		resultText = fmt.Sprintf("%s %s : %s %s",
			result.Team1Name, withUnit(m.Score1, settings.Unit, leagueType),
			withUnit(m.Score2, settings.Unit, leagueType), result.Team2Name)
		if leagueType == league.LeagueTypePoints {
			switch {
			case m.Score1 > m.Score2:
				resultText += fmt.Sprintf("\n%s won! 🏆", result.Team1Name)
			case m.Score2 > m.Score1:
				resultText += fmt.Sprintf("\n%s won! 🏆", result.Team2Name)
			default:
				resultText += "\nDraw 🤝"
			}
		}
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	var bonusFields []*slack.TextBlockObject
	if len(m.Bonus1) > 0 {
		bonusFields = append(bonusFields, slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s bonus:\n%s", result.Team1Name, strings.Join(m.Bonus1, ", ")), true, false))
	}
	if len(m.Bonus2) > 0 && m.Team1ID != m.Team2ID {
		bonusFields = append(bonusFields, slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s bonus:\n%s", result.Team2Name, strings.Join(m.Bonus2, ", ")), true, false))
	}
	if len(bonusFields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, bonusFields, nil))
	}

	contextText := m.Date
	if m.Memo != "" {
		contextText += " · " + m.Memo
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the league leaderboard.
func (s *Notifier) formatStandings(settings league.Settings, standings []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s 🏆", leagueTitle(settings)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No teams yet. Add a roster to get started!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	leagueType := settings.LeagueType.OrDefault()
	label := league.IndicatorLabel(leagueType)
	for _, st := range standings {
		var medal string
		switch st.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		value := st.Display
		if value != league.NoRecordDisplay && st.Unit != "" {
			value += " " + st.Unit
		}
		teamText := fmt.Sprintf("%d. %s %s\n> %s: %s | Games: %d", st.Rank, medal, st.TeamName, label, value, st.GamesPlayed)
		if leagueType == league.LeagueTypePoints {
			teamText += fmt.Sprintf(" | W/D/L: %d/%d/%d | Bonus: %d", st.Wins, st.Draws, st.Losses, st.BonusTotal)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", teamText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func leagueTitle(settings league.Settings) string {
	if settings.Title == "" {
		return "Class league"
	}
	return settings.Title
}

func withUnit(value float64, unit string, leagueType league.LeagueType) string {
	formatted := league.FormatValue(value)
	if leagueType == league.LeagueTypePoints || unit == "" {
		return formatted
	}
	return formatted + unit
}
