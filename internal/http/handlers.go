package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/account"
	"github.com/mauv0809/class-league/internal/classroom"
	"github.com/mauv0809/class-league/internal/export"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/pubsub"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK!"))
	}
}

// StatsHandler returns the lifetime usage counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Usage.GetAll()
		if err != nil {
			s.respondWithError(w, "stats", err)
			return
		}
		s.render.JSON(w, http.StatusOK, counters)
	}
}

func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "sign up", err)
			return
		}
		acc, err := s.Accounts.SignUp(r.Context(), req.Username, req.Password)
		if err != nil {
			s.respondWithError(w, "sign up", err)
			return
		}
		session, err := s.Accounts.SignIn(r.Context(), req.Username, req.Password)
		if err != nil {
			s.respondWithError(w, "sign up", err)
			return
		}
		s.setSessionCookie(w, session)
		s.render.JSON(w, http.StatusCreated, acc)
	}
}

func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "sign in", err)
			return
		}
		session, err := s.Accounts.SignIn(r.Context(), req.Username, req.Password)
		if err != nil {
			s.respondWithError(w, "sign in", err)
			return
		}
		s.setSessionCookie(w, session)
		s.render.JSON(w, http.StatusOK, map[string]any{
			"account_id": session.AccountID,
			"expires_at": session.ExpiresAt,
		})
	}
}

// SignOutHandler ends the session and forgets the guest pass of 'ref', if given.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			if err := s.Accounts.SignOut(r.Context(), cookie.Value); err != nil {
				s.respondWithError(w, "sign out", err)
				return
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.Cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		if ref := r.URL.Query().Get("ref"); ref != "" {
			s.GuestPasses.ClearCookie(w, ref)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RequestResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "password reset", err)
			return
		}
		if err := s.Accounts.RequestPasswordReset(r.Context(), req.Username); err != nil {
			s.respondWithError(w, "password reset", err)
			return
		}
		s.render.JSON(w, http.StatusAccepted, map[string]string{"status": "code sent"})
	}
}

func (s *Server) VerifyOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "verify code", err)
			return
		}
		if err := s.Accounts.VerifyOTP(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
			s.respondWithError(w, "verify code", err)
			return
		}
		s.render.JSON(w, http.StatusOK, map[string]string{"status": "password updated"})
	}
}

func (s *Server) LeagueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		s.respondWithLeague(w, r, "load league", viewer, http.StatusOK)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.League.Standings(r.Context(), access.ViewerFromContext(r.Context()))
		if err != nil {
			s.respondWithError(w, "load standings", err)
			return
		}
		s.render.JSON(w, http.StatusOK, standings)
	}
}

func (s *Server) TeamHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")
		standing, err := s.League.TeamHistory(r.Context(), access.ViewerFromContext(r.Context()), teamID)
		if err != nil {
			s.respondWithError(w, "load team history", err)
			return
		}
		s.render.JSON(w, http.StatusOK, standing)
	}
}

func (s *Server) SearchMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.League.SearchHistory(r.Context(), access.ViewerFromContext(r.Context()), r.URL.Query().Get("q"))
		if err != nil {
			s.respondWithError(w, "search matches", err)
			return
		}
		s.render.JSON(w, http.StatusOK, entries)
	}
}

// UnlockHandler checks the access code and remembers a passed gate with a guest pass.
func (s *Server) UnlockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		var req unlockRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "unlock", err)
			return
		}
		if err := s.League.Unlock(r.Context(), viewer, req.AccessCode); err != nil {
			s.respondWithError(w, "unlock", err)
			return
		}
		if viewer.Role != access.RoleOwner {
			if err := s.GuestPasses.SetCookie(w, viewer.OwnerID); err != nil {
				s.respondWithError(w, "unlock", err)
				return
			}
			viewer.Role = access.RoleGuest
		}
		s.respondWithLeague(w, r, "unlock", viewer, http.StatusOK)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		var in league.MatchInput
		if err := decodeJSON(r, &in); err != nil {
			s.respondWithError(w, "record match", err)
			return
		}
		if _, err := s.League.RecordMatch(r.Context(), viewer, in, isDryRunFromContext(r)); err != nil {
			s.respondWithError(w, "record match", err)
			return
		}
		s.respondWithLeague(w, r, "record match", viewer, http.StatusCreated)
	}
}

func (s *Server) EditMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		var in league.MatchInput
		if err := decodeJSON(r, &in); err != nil {
			s.respondWithError(w, "edit match", err)
			return
		}
		matchID := chi.URLParam(r, "matchID")
		if _, err := s.League.EditMatch(r.Context(), viewer, matchID, in, isDryRunFromContext(r)); err != nil {
			s.respondWithError(w, "edit match", err)
			return
		}
		s.respondWithLeague(w, r, "edit match", viewer, http.StatusOK)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		matchID := chi.URLParam(r, "matchID")
		err := s.League.DeleteMatch(r.Context(), viewer, matchID, r.Header.Get(accessCodeHeader), isDryRunFromContext(r))
		if err != nil {
			s.respondWithError(w, "delete match", err)
			return
		}
		s.respondWithLeague(w, r, "delete match", viewer, http.StatusOK)
	}
}

func (s *Server) SaveSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		var in classroom.SettingsInput
		if err := decodeJSON(r, &in); err != nil {
			s.respondWithError(w, "save settings", err)
			return
		}
		if _, err := s.League.SaveSettings(r.Context(), viewer, r.Header.Get(accessCodeHeader), in, isDryRunFromContext(r)); err != nil {
			s.respondWithError(w, "save settings", err)
			return
		}
		s.respondWithLeague(w, r, "save settings", viewer, http.StatusOK)
	}
}

func (s *Server) SaveBonusItemsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		var req bonusItemsRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "save bonus items", err)
			return
		}
		if _, err := s.League.SaveBonusItems(r.Context(), viewer, r.Header.Get(accessCodeHeader), req.BonusItems, isDryRunFromContext(r)); err != nil {
			s.respondWithError(w, "save bonus items", err)
			return
		}
		s.respondWithLeague(w, r, "save bonus items", viewer, http.StatusOK)
	}
}

func (s *Server) ReplaceRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		var req rosterRequest
		if err := decodeJSON(r, &req); err != nil {
			s.respondWithError(w, "replace roster", err)
			return
		}
		if _, err := s.League.ReplaceRoster(r.Context(), viewer, r.Header.Get(accessCodeHeader), req.Roster, isDryRunFromContext(r)); err != nil {
			s.respondWithError(w, "replace roster", err)
			return
		}
		s.respondWithLeague(w, r, "replace roster", viewer, http.StatusOK)
	}
}

// ShareHandler returns the guest links of the signed-in owner's league.
func (s *Server) ShareHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		if !viewer.CanAdmin() {
			err := classroom.ErrForbidden
			if viewer.OwnerID == "" {
				err = classroom.ErrUnauthenticated
			}
			s.respondWithError(w, "share", err)
			return
		}
		s.render.JSON(w, http.StatusOK, classroom.ShareLink(s.Cfg.BaseURL, viewer.OwnerID))
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		out, err := s.League.Export(r.Context(), viewer, r.Header.Get(accessCodeHeader))
		if err != nil {
			s.respondWithError(w, "export", err)
			return
		}
		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName}))
		w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
		w.WriteHeader(http.StatusOK)
		w.Write(out.Data)
	}
}

// AnnounceHandler posts the current standings to the configured channel.
func (s *Server) AnnounceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := access.ViewerFromContext(r.Context())
		if err := s.League.AnnounceStandings(r.Context(), viewer, r.Header.Get(accessCodeHeader), isDryRunFromContext(r)); err != nil {
			s.respondWithError(w, "announce standings", err)
			return
		}
		s.render.JSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
	}
}

// MatchRecordedPushHandler consumes match-recorded events delivered by a Pub/Sub push subscription.
func (s *Server) MatchRecordedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match recorded message", "body", string(bodyBytes))

		var msg pushRequest
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.LeagueEvent
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		if err := s.Processor.HandleMatchRecorded(r.Context(), event, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle match recorded event", "error", err, "match", event.MatchID)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// StandingsCommandHandler answers the /standings Slack command. The command text is the league reference.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		ref := r.FormValue("text")
		if ref == "" {
			http.Error(w, "League reference is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received standings command", "ref", ref)

		viewer := access.Viewer{OwnerID: ref, Role: access.RoleViewer}
		view, err := s.League.League(r.Context(), viewer)
		if err != nil {
			http.Error(w, "Failed to load standings", http.StatusInternalServerError)
			log.Error("Failed to load league for command", "error", err, "ref", ref)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(view.Settings, view.Standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}
		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session *account.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.Cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	log.Debug("Session cookie set", "account", session.AccountID, "expires", session.ExpiresAt)
}
