package heartbeat

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultPingInterval = 10 * time.Minute

// Pinger keeps a free-tier host awake by requesting its own public URL on
// an interval. Failures are logged and retried on the next tick; the loop
// only ends with the process.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	log      zerolog.Logger
}

func NewPinger(url string, interval time.Duration, log zerolog.Logger) *Pinger {
	if interval <= 0 {
		interval = DefaultPingInterval
	}

	return &Pinger{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log.With().Str("component", "selfping").Logger(),
	}
}

func (p *Pinger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.log.Warn().Err(err).Msg("build self-ping request")
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Msg("self-ping failed")
		return
	}
	_ = resp.Body.Close()

	p.log.Debug().Int("status", resp.StatusCode).Msg("self-ping ok")
}
