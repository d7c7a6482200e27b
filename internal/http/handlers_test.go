package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/account"
	"github.com/mauv0809/class-league/internal/classroom"
	"github.com/mauv0809/class-league/internal/config"
	"github.com/mauv0809/class-league/internal/database"
	"github.com/mauv0809/class-league/internal/email"
	"github.com/mauv0809/class-league/internal/export"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/notifier"
	"github.com/mauv0809/class-league/internal/processor"
	"github.com/mauv0809/class-league/internal/pubsub"
	"github.com/mauv0809/class-league/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

type testServer struct {
	*Server
	notif  *notifier.Mock
	pubsub *pubsub.MockPubSubClient
}

// setupTestServer initializes a new server with a test database and mock side channels.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.InitDB(database.DriverSQLite, ":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	leagueStore := store.New(db)
	cfg := config.Config{
		BaseURL:       "https://league.example.com",
		SessionSecret: "0123456789abcdef",
		Slack:         config.SlackConfig{SigningSecret: testSlackSigningSecret},
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	usage := metrics.NewUsageStore(db)
	notif := notifier.NewMock()
	ps := pubsub.NewMock()
	proc := processor.New(leagueStore, notif, metricsSvc, ps, false)
	leagues := classroom.New(leagueStore, proc, metricsSvc, usage)
	accounts := account.New(db, leagueStore, email.NewMock())
	guestPasses := access.NewGuestPasses(cfg.SessionSecret, cfg.SecureCookies)

	server := NewServer(leagues, accounts, proc, notif, metricsHandler, usage, guestPasses, cfg, ps)
	return &testServer{Server: server, notif: notif, pubsub: ps}
}

func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(s http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) classroom.LeagueView {
	t.Helper()
	var view classroom.LeagueView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view), rr.Body.String())
	return view
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}

// signUpOwner creates an account and returns its session cookie and owner ID.
func signUpOwner(t *testing.T, s *testServer, username string) (*http.Cookie, string) {
	t.Helper()
	rr := serve(s, newRequest(t, http.MethodPost, "/api/auth/signup", credentialsRequest{Username: username, Password: "secret1"}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var acc account.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &acc))
	session := findCookie(rr, SessionCookieName)
	require.NotNil(t, session)
	return session, acc.ID
}

// seedRoster replaces the owner's roster and returns the new teams.
func seedRoster(t *testing.T, s *testServer, session *http.Cookie, roster string) []league.Team {
	t.Helper()
	req := newRequest(t, http.MethodPut, "/api/league/teams", rosterRequest{Roster: roster})
	req.AddCookie(session)
	rr := serve(s, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decodeView(t, rr).Teams
}

func TestHealthCheckHandler(t *testing.T) {
	s := setupTestServer(t)

	rr := serve(s, newRequest(t, http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestStatsHandler(t *testing.T) {
	s := setupTestServer(t)
	session, _ := signUpOwner(t, s, "lee")
	seedRoster(t, s, session, "Tigers, Eagles")

	rr := serve(s, newRequest(t, http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var counters map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counters))
	assert.Equal(t, 1, counters[classroom.UsageRosterReplaced])
	assert.Zero(t, counters[classroom.UsageMatchesRecorded])
}

func TestOwnerFlow(t *testing.T) {
	s := setupTestServer(t)
	session, ownerID := signUpOwner(t, s, "kim")

	t.Run("league requires a session", func(t *testing.T) {
		rr := serve(s, newRequest(t, http.MethodGet, "/api/league", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.True(t, strings.HasPrefix(decodeError(t, rr), "load league failed: "))
	})

	t.Run("owner sees defaults", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/api/league", nil)
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeView(t, rr)
		assert.Equal(t, access.RoleOwner, view.Viewer.Role)
		assert.Equal(t, ownerID, view.Viewer.OwnerID)
		assert.Equal(t, "1234", view.Settings.AccessCode)
		assert.Equal(t, "Points", view.IndicatorLabel)
	})

	teams := seedRoster(t, s, session, "Tigers, Eagles")
	require.Len(t, teams, 2)

	t.Run("record match returns fresh standings", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/api/league/matches", league.MatchInput{
			Date: "2024-03-01", Team1ID: teams[0].ID, Team2ID: teams[1].ID, Score1: 3, Score2: 1, Bonus1: []string{"Manners"},
		})
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		view := decodeView(t, rr)
		require.Len(t, view.Matches, 1)
		require.Len(t, view.Standings, 2)
		assert.Equal(t, "Tigers", view.Standings[0].TeamName)
		assert.Equal(t, "4", view.Standings[0].Display)
		assert.Equal(t, 1, s.notif.ResultNotifications())
	})

	t.Run("validation failure names the operation", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/api/league/matches", league.MatchInput{Team1ID: teams[0].ID, Team2ID: teams[0].ID})
		req.AddCookie(session)
		rr := serve(s, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "record match failed: select two different teams", decodeError(t, rr))
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, "/api/league/matches", strings.NewReader("{"))
		require.NoError(t, err)
		req.AddCookie(session)
		rr := serve(s, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("team history and search", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/api/league/teams/"+teams[1].ID+"/history", nil)
		req.AddCookie(session)
		rr := serve(s, req)
		require.Equal(t, http.StatusOK, rr.Code)
		var standing league.Standing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standing))
		require.Len(t, standing.History, 1)
		assert.Equal(t, "Tigers", standing.History[0].Opponent)
		assert.Equal(t, league.ResultLoss, standing.History[0].Result)

		req = newRequest(t, http.MethodGet, "/api/league/teams/missing/history", nil)
		req.AddCookie(session)
		assert.Equal(t, http.StatusNotFound, serve(s, req).Code)

		req = newRequest(t, http.MethodGet, "/api/league/matches?q=Eagles", nil)
		req.AddCookie(session)
		rr = serve(s, req)
		require.Equal(t, http.StatusOK, rr.Code)
		var entries []league.HistoryEntry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Len(t, entries, 1)
	})

	t.Run("share links", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/api/league/share", nil)
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var links classroom.ShareLinks
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &links))
		assert.Equal(t, "https://league.example.com/?ref="+ownerID, links.Full)
		assert.Equal(t, "https://league.example.com/?ref="+ownerID+"&view=1", links.ReadOnly)
	})

	t.Run("settings update", func(t *testing.T) {
		req := newRequest(t, http.MethodPut, "/api/league/settings", classroom.SettingsInput{
			Title: "Relay race", LeagueType: league.LeagueTypeTime, Unit: "s",
		})
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		view := decodeView(t, rr)
		assert.Equal(t, "Relay race", view.Settings.Title)
		assert.Equal(t, "Best time (lower)", view.IndicatorLabel)

		req = newRequest(t, http.MethodPut, "/api/league/settings", classroom.SettingsInput{LeagueType: "golf"})
		req.AddCookie(session)
		assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)
	})

	t.Run("bonus items", func(t *testing.T) {
		req := newRequest(t, http.MethodPut, "/api/league/bonus-items", bonusItemsRequest{BonusItems: []string{"Cheering"}})
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"Cheering"}, decodeView(t, rr).Settings.BonusItems)
	})

	t.Run("export", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/api/league/export", nil)
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, export.ContentType, rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "Relay race_records_")
		assert.NotZero(t, rr.Body.Len())
	})

	t.Run("announce dry run", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/api/league/announce?dry_run=true", nil)
		req.AddCookie(session)
		rr := serve(s, req)

		require.Equal(t, http.StatusAccepted, rr.Code)
		require.Len(t, s.notif.SendStandingsCalls, 1)
		assert.True(t, s.notif.SendStandingsCalls[0].DryRun)
	})

	t.Run("stats", func(t *testing.T) {
		rr := serve(s, newRequest(t, http.MethodGet, "/api/stats", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var counters map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counters))
		assert.Equal(t, 1, counters[classroom.UsageMatchesRecorded])
		assert.Equal(t, 1, counters[classroom.UsageRosterReplaced])
		assert.Equal(t, 1, counters[classroom.UsageExports])
	})

	t.Run("sign out ends the session", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/api/auth/signout", nil)
		req.AddCookie(session)
		rr := serve(s, req)
		require.Equal(t, http.StatusNoContent, rr.Code)
		cleared := findCookie(rr, SessionCookieName)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)

		req = newRequest(t, http.MethodGet, "/api/league", nil)
		req.AddCookie(session)
		assert.Equal(t, http.StatusUnauthorized, serve(s, req).Code)
	})
}

func TestGuestFlow(t *testing.T) {
	s := setupTestServer(t)
	session, ownerID := signUpOwner(t, s, "kim")
	teams := seedRoster(t, s, session, "Tigers, Eagles")
	ref := "?ref=" + url.QueryEscape(ownerID)

	t.Run("gate blocks guests without a pass", func(t *testing.T) {
		rr := serve(s, newRequest(t, http.MethodGet, "/api/league"+ref, nil))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		rr := serve(s, newRequest(t, http.MethodPost, "/api/league/unlock"+ref, unlockRequest{AccessCode: "0000"}))
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "unlock failed: access code does not match", decodeError(t, rr))
		assert.Nil(t, findCookie(rr, access.CookieName(ownerID)))
	})

	rr := serve(s, newRequest(t, http.MethodPost, "/api/league/unlock"+ref, unlockRequest{AccessCode: "1234"}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	pass := findCookie(rr, access.CookieName(ownerID))
	require.NotNil(t, pass, "Unlock should set a guest pass")
	view := decodeView(t, rr)
	assert.Equal(t, access.RoleGuest, view.Viewer.Role)
	assert.Empty(t, view.Settings.AccessCode, "Guests must not see the access code")

	t.Run("guest records a match", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/api/league/matches"+ref, league.MatchInput{Team1ID: teams[0].ID, Team2ID: teams[1].ID, Score1: 2})
		req.AddCookie(pass)
		rr := serve(s, req)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	t.Run("guest admin needs the code", func(t *testing.T) {
		req := newRequest(t, http.MethodPut, "/api/league/teams"+ref, rosterRequest{Roster: "Owls"})
		req.AddCookie(pass)
		assert.Equal(t, http.StatusForbidden, serve(s, req).Code)

		req = newRequest(t, http.MethodPut, "/api/league/bonus-items"+ref, bonusItemsRequest{BonusItems: []string{"Effort"}})
		req.AddCookie(pass)
		req.Header.Set(accessCodeHeader, "1234")
		assert.Equal(t, http.StatusOK, serve(s, req).Code)
	})

	t.Run("guests cannot fetch share links", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/api/league/share"+ref, nil)
		req.AddCookie(pass)
		assert.Equal(t, http.StatusForbidden, serve(s, req).Code)
	})

	t.Run("delete requires the code", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/api/league"+ref, nil)
		req.AddCookie(pass)
		matches := decodeView(t, serve(s, req)).Matches
		require.Len(t, matches, 1)

		req = newRequest(t, http.MethodDelete, "/api/league/matches/"+matches[0].ID+ref, nil)
		req.AddCookie(pass)
		assert.Equal(t, http.StatusForbidden, serve(s, req).Code)

		req = newRequest(t, http.MethodDelete, "/api/league/matches/"+matches[0].ID+ref, nil)
		req.AddCookie(pass)
		req.Header.Set(accessCodeHeader, "1234")
		rr := serve(s, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decodeView(t, rr).Matches)

		req = newRequest(t, http.MethodDelete, "/api/league/matches/"+matches[0].ID+ref, nil)
		req.AddCookie(pass)
		req.Header.Set(accessCodeHeader, "1234")
		assert.Equal(t, http.StatusNotFound, serve(s, req).Code)
	})

	t.Run("sign out forgets the guest pass", func(t *testing.T) {
		rr := serve(s, newRequest(t, http.MethodPost, "/api/auth/signout"+ref, nil))
		require.Equal(t, http.StatusNoContent, rr.Code)
		cleared := findCookie(rr, access.CookieName(ownerID))
		require.NotNil(t, cleared)
		assert.Equal(t, -1, cleared.MaxAge)
	})
}

func TestReadOnlyViewer(t *testing.T) {
	s := setupTestServer(t)
	session, ownerID := signUpOwner(t, s, "kim")
	teams := seedRoster(t, s, session, "Tigers, Eagles")
	ref := "?ref=" + url.QueryEscape(ownerID) + "&view=1"

	rr := serve(s, newRequest(t, http.MethodGet, "/api/league/standings"+ref, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var standings []league.Standing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	assert.Len(t, standings, 2)

	rr = serve(s, newRequest(t, http.MethodPost, "/api/league/matches"+ref, league.MatchInput{Team1ID: teams[0].ID, Team2ID: teams[1].ID}))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = serve(s, newRequest(t, http.MethodPost, "/api/league/unlock"+ref, unlockRequest{AccessCode: "1234"}))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAuthHandlers(t *testing.T) {
	s := setupTestServer(t)
	signUpOwner(t, s, "kim")

	rr := serve(s, newRequest(t, http.MethodPost, "/api/auth/signup", credentialsRequest{Username: "kim", Password: "secret1"}))
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = serve(s, newRequest(t, http.MethodPost, "/api/auth/signin", credentialsRequest{Username: "kim", Password: "wrong"}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "sign in failed: invalid username or password", decodeError(t, rr))

	rr = serve(s, newRequest(t, http.MethodPost, "/api/auth/signin", credentialsRequest{Username: "Kim", Password: "secret1"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, findCookie(rr, SessionCookieName))

	rr = serve(s, newRequest(t, http.MethodPost, "/api/auth/reset", resetRequest{Username: "kim"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code, "Username accounts reset manually")

	rr = serve(s, newRequest(t, http.MethodPost, "/api/auth/verify", verifyRequest{Email: "kim@classleague.internal", Code: "000000", NewPassword: "another1"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchRecordedPushHandler(t *testing.T) {
	s := setupTestServer(t)
	session, ownerID := signUpOwner(t, s, "kim")
	teams := seedRoster(t, s, session, "Tigers, Eagles")

	req := newRequest(t, http.MethodPost, "/api/league/matches", league.MatchInput{Team1ID: teams[0].ID, Team2ID: teams[1].ID, Score1: 1})
	req.AddCookie(session)
	rr := serve(s, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	matchID := decodeView(t, rr).Matches[0].ID
	s.notif.Reset()

	event := pubsub.LeagueEvent{Type: pubsub.EventMatchRecorded, OwnerID: ownerID, MatchID: matchID}
	data, err := msgpack.Marshal(event)
	require.NoError(t, err)
	var push pushRequest
	push.Subscription = "projects/test/subscriptions/match-recorded"
	push.Message.Data = base64.StdEncoding.EncodeToString(data)

	rr = serve(s, newRequest(t, http.MethodPost, "/pubsub/match-recorded", push))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "OK", rr.Body.String())
	require.Len(t, s.notif.SendResultNotificationCalls, 1)
	assert.Equal(t, "Tigers", s.notif.SendResultNotificationCalls[0].Result.Team1Name)

	push.Message.Data = "%%%"
	rr = serve(s, newRequest(t, http.MethodPost, "/pubsub/match-recorded", push))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// createSlackCommandRequest creates an http.Request for a Slack slash command,
// including the signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req, err := http.NewRequest(http.MethodPost, targetURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(fmt.Sprintf("v0:%s:%s", timestamp, body)))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func TestStandingsCommandHandler(t *testing.T) {
	s := setupTestServer(t)
	session, ownerID := signUpOwner(t, s, "kim")
	seedRoster(t, s, session, "Tigers, Eagles")
	s.notif.FormatStandingsFunc = func(settings league.Settings, standings []league.Standing) (any, error) {
		text := fmt.Sprintf("%s: %d teams", settings.Title, len(standings))
		return slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, false, false), nil, nil)), nil
	}

	t.Run("valid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{"text": {ownerID}}, testSlackSigningSecret)
		rr := serve(s, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), "Our Class Sports League: 2 teams")
	})

	t.Run("invalid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{"text": {ownerID}}, "wrong-secret")
		assert.Equal(t, http.StatusUnauthorized, serve(s, req).Code)
	})

	t.Run("missing reference", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)
	})
}

func TestStoreFailureIsInternalError(t *testing.T) {
	s := setupTestServer(t)
	leagues := classroom.NewMock()
	leagues.LeagueFunc = func(ctx context.Context, viewer access.Viewer) (*classroom.LeagueView, error) {
		return nil, errors.New("database is locked")
	}
	s.League = leagues

	session, _ := signUpOwner(t, s, "kim")
	req := newRequest(t, http.MethodGet, "/api/league", nil)
	req.AddCookie(session)
	rr := serve(s, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "load league failed: database is locked", decodeError(t, rr))
	require.Len(t, leagues.Viewers, 1)
	assert.Equal(t, access.RoleOwner, leagues.Viewers[0].Role)
}
