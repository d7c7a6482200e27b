package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/access"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

// verboseLevel raises the global log level while at least one verbose request is in flight.
type verboseLevel struct {
	mu       sync.Mutex
	active   int
	previous log.Level
}

var verbose verboseLevel

func (v *verboseLevel) enter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.active == 0 {
		v.previous = log.GetLevel()
		log.SetLevel(log.DebugLevel)
	}
	v.active++
}

func (v *verboseLevel) exit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active--
	if v.active == 0 {
		log.SetLevel(v.previous)
	}
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "path", r.URL.Path)
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			verbose.enter()
			defer verbose.exit()
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// viewerMiddleware resolves who is asking from the session cookie, the shared-link
// parameters 'ref' and 'view', and the guest pass for ref.
func (s *Server) viewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var accountID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			acc, err := s.Accounts.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				log.Debug("Ignoring session cookie", "error", err)
			} else {
				accountID = acc.ID
			}
		}

		query := r.URL.Query()
		ref := query.Get("ref")
		readOnly := query.Get("view") == "1"
		hasPass := ref != "" && s.GuestPasses.HasPass(r, ref)

		viewer := access.Resolve(ref, readOnly, accountID, hasPass)
		log.Debug("Resolved viewer", "owner", viewer.OwnerID, "role", viewer.Role)
		next.ServeHTTP(w, r.WithContext(access.ContextWithViewer(r.Context(), viewer)))
	})
}

// slackVerificationMiddleware rejects requests without a valid Slack signature.
func (s *Server) slackVerificationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		verifier, err := slack.NewSecretsVerifier(r.Header, s.Cfg.Slack.SigningSecret)
		if err != nil {
			log.Warn("Slack request without valid signature headers", "error", err)
			http.Error(w, "Invalid Slack signature", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		if _, err := verifier.Write(body); err != nil {
			http.Error(w, "Failed to verify request", http.StatusInternalServerError)
			return
		}
		if err := verifier.Ensure(); err != nil {
			log.Warn("Slack signature mismatch", "error", err)
			http.Error(w, "Invalid Slack signature", http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
