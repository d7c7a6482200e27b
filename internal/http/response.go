package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/account"
	"github.com/mauv0809/class-league/internal/classroom"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/store"
	"github.com/slack-go/slack"
)

var errBadRequest = errors.New("malformed request body")

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, classroom.ErrUnauthenticated),
		errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrInvalidSession):
		return http.StatusUnauthorized
	case errors.Is(err, classroom.ErrForbidden),
		errors.Is(err, classroom.ErrAccessCodeMismatch):
		return http.StatusForbidden
	case errors.Is(err, classroom.ErrMatchNotFound),
		errors.Is(err, classroom.ErrTeamNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, league.ErrTeamRequired),
		errors.Is(err, league.ErrSameTeam),
		errors.Is(err, league.ErrInvalidDate),
		errors.Is(err, league.ErrUnknownTeam),
		errors.Is(err, league.ErrEmptyRoster),
		errors.Is(err, league.ErrInvalidLeague),
		errors.Is(err, account.ErrWeakPassword),
		errors.Is(err, account.ErrUsernameRequired),
		errors.Is(err, account.ErrInvalidCode),
		errors.Is(err, account.ErrManualResetRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes {"error": "<op> failed: <reason>"}.
func (s *Server) respondWithError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "op", op, "error", err)
	} else {
		log.Debug("Request rejected", "op", op, "status", status, "error", err)
	}
	s.render.JSON(w, status, errorResponse{Error: fmt.Sprintf("%s failed: %s", op, err)})
}

// respondWithLeague re-reads the league after a mutation and writes it.
func (s *Server) respondWithLeague(w http.ResponseWriter, r *http.Request, op string, viewer access.Viewer, status int) {
	view, err := s.League.League(r.Context(), viewer)
	if err != nil {
		s.respondWithError(w, op, err)
		return
	}
	s.render.JSON(w, status, view)
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
