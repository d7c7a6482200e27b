package processor

import (
	"time"

	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/pubsub"
)

// Processor fans league changes out to the optional side channels.
// When async is set, result notifications are sent by the push handler
// that consumes the published event instead of inline.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	async    bool
	now      func() time.Time
}
