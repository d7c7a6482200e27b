package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
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

// SessionCookieName holds the owner session token.
const SessionCookieName = "session"

// accessCodeHeader carries the access code for gated operations.
const accessCodeHeader = "X-Access-Code"

type Server struct {
	League         classroom.Service
	Accounts       account.Service
	Processor      *processor.Processor
	Notifier       notifier.Notifier
	MetricsHandler http.Handler
	Usage          metrics.UsageStore
	GuestPasses    *access.GuestPasses
	Cfg            config.Config
	Router         *chi.Mux
	render         *render.Render
	pubsub         pubsub.PubSubClient
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type resetRequest struct {
	Username string `json:"username"`
}

type verifyRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type unlockRequest struct {
	AccessCode string `json:"access_code"`
}

type bonusItemsRequest struct {
	BonusItems []string `json:"bonus_config"`
}

type rosterRequest struct {
	Roster string `json:"roster"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// pushRequest is the envelope of a Pub/Sub push delivery.
type pushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}
