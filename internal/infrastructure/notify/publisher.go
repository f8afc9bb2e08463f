package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/datafoot/standings-engine/internal/platform/logging"
	"github.com/datafoot/standings-engine/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	Retries        int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher posts refresh events to a configured webhook. It
// implements usecase.RefreshNotifier.
type WebhookPublisher struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client:         &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		retries:        max(cfg.Retries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type refreshedEvent struct {
	Event         string `json:"event"`
	CompetitionID string `json:"competition_id"`
	Pools         int    `json:"pools"`
	OccurredAt    string `json:"occurred_at"`
}

func (p *WebhookPublisher) StandingsRefreshed(ctx context.Context, competitionID string, pools int) error {
	if p.url == "" {
		return crerr.New("webhook url is required")
	}
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("webhook is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(refreshedEvent{
		Event:         "standings.refreshed",
		CompetitionID: competitionID,
		Pools:         pools,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal refresh event")
	}

	p.logger.InfoContext(ctx, "webhook publish request",
		"url", p.url, "curl_preview", buildCurlPreview(p.url, string(body), p.token != ""))

	err = p.post(body)
	p.recordCircuitResult(err)
	if err != nil {
		return fmt.Errorf("publish refresh event competition=%s: %w", competitionID, err)
	}
	return nil
}

func (p *WebhookPublisher) post(body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()

		req.SetRequestURI(p.url)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		if p.token != "" {
			req.Header.Set("Authorization", "Bearer "+p.token)
		}
		req.SetBody(body)

		err := p.client.DoTimeout(req, resp, p.timeout)
		status := resp.StatusCode()
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errWebhookTransient, err)
		case status/100 == 2:
			return nil
		case status == http.StatusTooManyRequests || status >= 500:
			lastErr = fmt.Errorf("%w: webhook status=%d", errWebhookTransient, status)
		default:
			return fmt.Errorf("webhook status=%d", status)
		}

		if attempt < p.retries {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("webhook request failed")
	}
	return lastErr
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil || !crerr.Is(err, errWebhookTransient) {
		p.breaker.RecordSuccess()
		return
	}
	p.breaker.RecordFailure()
}

func buildCurlPreview(url, body string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(url))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	if withToken {
		appendPart("-H")
		appendPart(shellQuote("Authorization: Bearer ***"))
	}
	appendPart("-d")
	appendPart(shellQuote(truncateForLog(body, 4096)))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
