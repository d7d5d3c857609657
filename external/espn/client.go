package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/resilience"
	"github.com/riskibarqy/draft-assistant-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL   = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultTimeout   = 15 * time.Second

	FilterHeader = "X-Fantasy-Filter"

	maxBodyBytes = 16 << 20
)

const (
	endpointLeague        = "league"
	endpointPlayerPool    = "player_pool"
	endpointSeasonPlayers = "season_players"
	endpointRaw           = "raw"
)

const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

// Recorder receives per-request upstream measurements.
type Recorder interface {
	ObserveUpstream(endpoint, outcome string, duration time.Duration)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	UserAgent      string
	Logger         *logging.Logger
	Metrics        Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	logger         *logging.Logger
	metrics        Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
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
		httpClient.Timeout = DefaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("upstream circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        resilience.NewCircuitBreaker("espn", breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchLeague reads the league document with the requested views.
func (c *Client) FetchLeague(ctx context.Context, lc league.Context, views ...string) (league.Snapshot, error) {
	ctx, span := startSpan(ctx, "espn.Client.FetchLeague")
	defer span.End()

	query := url.Values{}
	if len(views) > 0 {
		query.Set("view", strings.Join(views, ","))
	}

	raw, err := c.fetch(ctx, endpointLeague, leaguePath(lc), lc, query, nil)
	if err != nil {
		return league.Snapshot{}, err
	}

	var payload leagueDTO
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return league.Snapshot{}, crerr.Wrapf(err, "decode league payload league_id=%d", lc.LeagueID)
	}

	return mapLeague(payload, lc), nil
}

// FetchPlayerPool reads the league-scoped player pool, which carries the
// per-league availability and ownership fields.
func (c *Client) FetchPlayerPool(ctx context.Context, lc league.Context, limit int) ([]player.RawRecord, error) {
	ctx, span := startSpan(ctx, "espn.Client.FetchPlayerPool")
	defer span.End()

	filter, err := buildPlayerFilter(limit, true)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("view", "kona_player_info")
	query.Set("scoringPeriodId", "0")

	raw, err := c.fetch(ctx, endpointPlayerPool, leaguePath(lc), lc, query, http.Header{FilterHeader: []string{filter}})
	if err != nil {
		return nil, err
	}

	var payload playerPoolDTO
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrapf(err, "decode player pool league_id=%d", lc.LeagueID)
	}

	return toRawRecords(payload.Players), nil
}

// FetchSeasonPlayers reads the season-wide player list, a bare array of
// player objects without league context.
func (c *Client) FetchSeasonPlayers(ctx context.Context, lc league.Context, limit int) ([]player.RawRecord, error) {
	ctx, span := startSpan(ctx, "espn.Client.FetchSeasonPlayers")
	defer span.End()

	filter, err := buildPlayerFilter(limit, false)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("view", "players_wl")
	query.Set("scoringPeriodId", "0")

	path := fmt.Sprintf("/seasons/%d/players", lc.SeasonID)
	raw, err := c.fetch(ctx, endpointSeasonPlayers, path, lc, query, http.Header{FilterHeader: []string{filter}})
	if err != nil {
		return nil, err
	}

	var payload []playerEntryDTO
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrapf(err, "decode season players season_id=%d", lc.SeasonID)
	}

	return toRawRecords(payload), nil
}

// Fetch performs a raw GET against the upstream API and returns the body.
func (c *Client) Fetch(ctx context.Context, path string, lc league.Context, query url.Values, headers http.Header) ([]byte, error) {
	return c.fetch(ctx, endpointRaw, path, lc, query, headers)
}

func leaguePath(lc league.Context) string {
	return fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", lc.SeasonID, lc.LeagueID)
}

func (c *Client) fetch(ctx context.Context, endpoint, path string, lc league.Context, query url.Values, headers http.Header) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	started := time.Now()
	cookie := lc.Credential.Cookie()
	key := flightKey(fullURL, cookie, headers)

	// The shared request outlives any single caller; each waiter still honors its own ctx.
	ch := c.flight.DoChan(key, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.httpClient.Timeout)
		defer cancel()

		if !c.circuitEnabled {
			return c.executeRequest(runCtx, fullURL, path, cookie, headers)
		}
		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(runCtx, fullURL, path, cookie, headers)
			return reqErr
		}, isCircuitFailure)
		return raw, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		c.observe(endpoint, outcomeError, started)
		return nil, transportError(path, ctx.Err())
	}

	if errors.Is(res.Err, resilience.ErrCircuitOpen) {
		c.observe(endpoint, outcomeRejected, started)
		c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "endpoint", endpoint, "breaker", c.breaker.Name(), "state", c.breaker.State())
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "espn circuit %s", c.breaker.State())
	}
	if res.Err != nil {
		c.observe(endpoint, outcomeError, started)
		c.logger.WarnContext(ctx, "espn request failed",
			"endpoint", endpoint,
			"path", path,
			"private", cookie != "",
			"shared", res.Shared,
			"error", res.Err,
		)
		return nil, res.Err
	}
	c.observe(endpoint, outcomeSuccess, started)

	raw, ok := res.Val.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", res.Val)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, path, cookie string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(path, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, transportError(path, crerr.Wrap(err, "read response body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &usecase.UpstreamError{
			Status: resp.StatusCode,
			Path:   path,
			Body:   abbreviateBody(buf.B),
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func (c *Client) observe(endpoint, outcome string, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveUpstream(endpoint, outcome, time.Since(started))
}

func transportError(path string, err error) error {
	if isTimeout(err) {
		return &usecase.UpstreamError{Status: http.StatusGatewayTimeout, Path: path, Timeout: true, Err: err}
	}
	return &usecase.UpstreamError{Path: path, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isCircuitFailure counts only failures that say something about upstream
// health. Client errors and caller cancellation are not counted.
func isCircuitFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var upstream *usecase.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Timeout || upstream.Status == 0 || upstream.Status >= 500 || upstream.Status == http.StatusTooManyRequests
	}
	return true
}

func flightKey(fullURL, cookie string, headers http.Header) string {
	var b strings.Builder
	b.WriteString(fullURL)
	b.WriteString("|")
	b.WriteString(strconv.Itoa(len(cookie)))
	b.WriteString(":")
	b.WriteString(cookie)
	if filter := headers.Get(FilterHeader); filter != "" {
		b.WriteString("|")
		b.WriteString(filter)
	}
	return b.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
