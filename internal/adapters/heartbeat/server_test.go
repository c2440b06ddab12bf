package heartbeat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthzReportsOKWithUptime(t *testing.T) {
	server := NewServer(":0", zerolog.Nop())

	rec := httptest.NewRecorder()
	server.handleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["uptime"])
}

func TestNewPingerAppliesDefaultInterval(t *testing.T) {
	pinger := NewPinger("http://example.invalid", 0, zerolog.Nop())
	assert.Equal(t, DefaultPingInterval, pinger.interval)
}
