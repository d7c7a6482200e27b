package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestVerboseLevelOverlappingRequests(t *testing.T) {
	original := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	t.Cleanup(func() { log.SetLevel(original) })

	var v verboseLevel
	v.enter()
	v.enter()
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	v.exit()
	assert.Equal(t, log.DebugLevel, log.GetLevel(), "Level stays raised while a verbose request is in flight")

	v.exit()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestParamsMiddleware(t *testing.T) {
	original := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	t.Cleanup(func() { log.SetLevel(original) })

	var levelInHandler log.Level
	var dryRun bool
	h := paramsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		levelInHandler = log.GetLevel()
		dryRun = isDryRunFromContext(r)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health?verbose=true&dry_run=true", nil))

	assert.Equal(t, log.DebugLevel, levelInHandler)
	assert.True(t, dryRun)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
