package resultsfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/penalty"
	"github.com/datafoot/standings-engine/internal/platform/logging"
	"github.com/datafoot/standings-engine/internal/platform/resilience"
	"github.com/datafoot/standings-engine/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const defaultTimeout = 20 * time.Second

var errFeedTransient = crerr.New("results feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls official results and sanctions from the federation feed.
// It implements usecase.ResultsProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type feedMatch struct {
	ID           string `json:"id"`
	Pool         string `json:"pool"`
	Matchday     int    `json:"matchday"`
	Date         string `json:"date"`
	HomeTeamID   string `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamID   string `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name"`
	HomeGoals    *int   `json:"home_goals"`
	AwayGoals    *int   `json:"away_goals"`
	Status       string `json:"status"`
}

type feedPenalty struct {
	TeamID        string `json:"team_id"`
	Points        int    `json:"points"`
	EffectiveDate string `json:"effective_date"`
	Reason        string `json:"reason"`
}

type matchesEnvelope struct {
	Data []feedMatch `json:"data"`
}

type penaltiesEnvelope struct {
	Data []feedPenalty `json:"data"`
}

// FetchCompetitionSnapshot pulls a competition's schedule and sanction list
// in parallel.
func (c *Client) FetchCompetitionSnapshot(ctx context.Context, competitionID string) (usecase.CompetitionSnapshot, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return usecase.CompetitionSnapshot{}, fmt.Errorf("competition id is required")
	}

	var snapshot usecase.CompetitionSnapshot

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		matches, err := c.fetchMatches(ctx, competitionID)
		if err != nil {
			return fmt.Errorf("fetch matches competition=%s: %w", competitionID, err)
		}
		snapshot.Matches = matches
		return nil
	})
	p.Go(func(ctx context.Context) error {
		penalties, err := c.fetchPenalties(ctx, competitionID)
		if err != nil {
			return fmt.Errorf("fetch penalties competition=%s: %w", competitionID, err)
		}
		snapshot.Penalties = penalties
		return nil
	})
	if err := p.Wait(); err != nil {
		return usecase.CompetitionSnapshot{}, err
	}

	return snapshot, nil
}

func (c *Client) fetchMatches(ctx context.Context, competitionID string) ([]match.Match, error) {
	var envelope matchesEnvelope
	path := "/competitions/" + url.PathEscape(competitionID) + "/matches"
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if item.ID == "" {
			continue
		}
		date, err := parseFeedDate(item.Date)
		if err != nil {
			c.logger.WarnContext(ctx, "results feed match has unparseable date, skipping",
				"match_id", item.ID, "date", item.Date)
			continue
		}
		out = append(out, match.Match{
			ID:            item.ID,
			CompetitionID: competitionID,
			Pool:          item.Pool,
			Matchday:      item.Matchday,
			Date:          date,
			HomeTeamID:    item.HomeTeamID,
			HomeTeamName:  item.HomeTeamName,
			AwayTeamID:    item.AwayTeamID,
			AwayTeamName:  item.AwayTeamName,
			HomeGoals:     item.HomeGoals,
			AwayGoals:     item.AwayGoals,
			Status:        match.NormalizeStatus(item.Status),
		})
	}

	return out, nil
}

func (c *Client) fetchPenalties(ctx context.Context, competitionID string) ([]penalty.Penalty, error) {
	var envelope penaltiesEnvelope
	path := "/competitions/" + url.PathEscape(competitionID) + "/penalties"
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}

	out := make([]penalty.Penalty, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if item.TeamID == "" {
			continue
		}
		date, err := parseFeedDate(item.EffectiveDate)
		if err != nil {
			c.logger.WarnContext(ctx, "results feed penalty has unparseable date, skipping",
				"team_id", item.TeamID, "date", item.EffectiveDate)
			continue
		}
		out = append(out, penalty.Penalty{
			TeamID:        item.TeamID,
			CompetitionID: competitionID,
			Points:        item.Points,
			EffectiveDate: date,
			Reason:        item.Reason,
		})
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: results feed base url is not configured", usecase.ErrDependencyUnavailable)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "results feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: results feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errFeedTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "results feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// parseFeedDate accepts the feed's two historical date shapes.
func parseFeedDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", value)
}
