// Package keepalive implements the self-ping scheduler that keeps a hosting
// platform from idling the process. It periodically calls the service's own
// /health endpoint over the network; failures are logged and ignored.
package keepalive

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
)

// pingTimeout bounds a single keep-alive request. A slow ping must never pile
// up behind the next scheduled one.
const pingTimeout = 10 * time.Second

// Pinger runs a fixed-period cron job that pings the service's health
// endpoint. It shares nothing with request handling beyond immutable
// configuration.
type Pinger struct {
	url      string
	interval time.Duration
	cron     *cron.Cron
	client   *http.Client
	logger   zerolog.Logger
}

// NewPinger creates a new instance of Pinger targeting the configured
// externally reachable base URL.
func NewPinger(cfg *config.Config, logger *zerolog.Logger) *Pinger {
	return &Pinger{
		url:      strings.TrimRight(cfg.KeepAlive.BaseURL, "/") + "/health",
		interval: cfg.KeepAlive.Interval,
		cron:     cron.New(),
		client:   &http.Client{Timeout: pingTimeout},
		logger:   logger.With().Str("component", "keepalive").Logger(),
	}
}

// Start schedules the repeating ping and returns immediately. It must be
// called at most once.
func (p *Pinger) Start() error {
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), p.ping); err != nil {
		return fmt.Errorf("keepalive: schedule ping: %w", err)
	}
	p.cron.Start()
	p.logger.Info().Str("url", p.url).Dur("interval", p.interval).Msg("keep-alive scheduler started")
	return nil
}

// Stop cancels the schedule and waits for an in-flight ping to finish.
func (p *Pinger) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info().Msg("keep-alive scheduler stopped")
}

// ping performs one health check. A failed ping never stops the schedule and
// never escalates.
func (p *Pinger) ping() {
	resp, err := p.client.Get(p.url)
	if err != nil {
		p.logger.Warn().Err(err).Msg("keep-alive ping failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn().Int("status", resp.StatusCode).Msg("keep-alive ping returned unexpected status")
		return
	}
	p.logger.Debug().Msg("keep-alive ping ok")
}
