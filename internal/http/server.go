package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/account"
	"github.com/mauv0809/class-league/internal/classroom"
	"github.com/mauv0809/class-league/internal/config"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/notifier"
	"github.com/mauv0809/class-league/internal/processor"
	"github.com/mauv0809/class-league/internal/pubsub"
	"github.com/unrolled/render"
)

func NewServer(league classroom.Service, accounts account.Service, processor *processor.Processor, notifier notifier.Notifier, metricsHandler http.Handler, usage metrics.UsageStore, guestPasses *access.GuestPasses, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		League:         league,
		Accounts:       accounts,
		Processor:      processor,
		Notifier:       notifier,
		MetricsHandler: metricsHandler,
		Usage:          usage,
		GuestPasses:    guestPasses,
		Cfg:            cfg,
		Router:         chi.NewRouter(),
		render:         render.New(render.Options{UnEscapeHTML: true}),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	r := s.Router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(paramsMiddleware)

	r.Handle("/metrics", s.MetricsHandler)
	r.Get("/health", s.HealthCheckHandler())
	r.Get("/api/stats", s.StatsHandler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", s.SignUpHandler())
		r.Post("/signin", s.SignInHandler())
		r.Post("/signout", s.SignOutHandler())
		r.Post("/reset", s.RequestResetHandler())
		r.Post("/verify", s.VerifyOTPHandler())
	})

	r.Route("/api/league", func(r chi.Router) {
		r.Use(s.viewerMiddleware)

		r.Get("/", s.LeagueHandler())
		r.Get("/standings", s.StandingsHandler())
		r.Get("/teams/{teamID}/history", s.TeamHistoryHandler())
		r.Post("/unlock", s.UnlockHandler())

		r.Get("/matches", s.SearchMatchesHandler())
		r.Post("/matches", s.RecordMatchHandler())
		r.Put("/matches/{matchID}", s.EditMatchHandler())
		r.Delete("/matches/{matchID}", s.DeleteMatchHandler())

		r.Put("/settings", s.SaveSettingsHandler())
		r.Put("/bonus-items", s.SaveBonusItemsHandler())
		r.Put("/teams", s.ReplaceRosterHandler())
		r.Get("/share", s.ShareHandler())
		r.Get("/export", s.ExportHandler())
		r.Post("/announce", s.AnnounceHandler())
	})

	// Pub/Sub push subscription for match-recorded events.
	r.Post("/pubsub/match-recorded", s.MatchRecordedPushHandler())

	if s.Cfg.Slack.SigningSecret != "" {
		r.Method(http.MethodPost, "/slack/command/standings", Chain(s.StandingsCommandHandler(), s.slackVerificationMiddleware))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
