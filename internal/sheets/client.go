package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/circuitbreaker"
	"github.com/akeren/sunday-signup/pkg/constants"
	"github.com/akeren/sunday-signup/pkg/retry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 1 << 20

type Config struct {
	ScriptURL  string
	SubmitMode SubmitMode
	Timeout    time.Duration
	Retry      *retry.Config
	Breaker    *circuitbreaker.Config
	// Tracing wraps the transport with otelhttp.
	Tracing bool
}

// Client talks to the spreadsheet-backed script endpoint. Reads are retried
// with backoff; submissions are sent once because a replayed POST appends a
// duplicate row. Every call passes through a circuit breaker.
type Client struct {
	httpClient *http.Client
	scriptURL  string
	mode       SubmitMode
	retry      retry.Policy
	breaker    circuitbreaker.CircuitBreaker
	logger     *log.Logger
}

func NewClient(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.NewLoggerWithJSONOutput()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultUpstreamTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Tracing {
		transport = otelhttp.NewTransport(transport)
	}

	retryCfg := retry.DefaultConfig()
	if cfg.Retry != nil {
		copied := *cfg.Retry
		retryCfg = &copied
	}
	if retryCfg.Retryable == nil {
		retryCfg.Retryable = isTransient
	}
	if retryCfg.OnRetry == nil {
		retryCfg.OnRetry = func(attempt int, err error, wait time.Duration) {
			logger.Warn("Retrying spreadsheet endpoint read", "attempt", attempt, "wait", wait, "error", err)
		}
	}

	mode := cfg.SubmitMode
	if mode == "" {
		mode = SubmitModeOpaque
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		scriptURL:  strings.TrimSpace(cfg.ScriptURL),
		mode:       mode,
		retry:      retry.NewBackoff(retryCfg),
		breaker:    circuitbreaker.NewCircuitBreaker(breakerConfig(cfg.Breaker, logger)),
		logger:     logger,
	}
}

// Configured reports whether a script URL is set. Without one the client runs
// in test mode.
func (c *Client) Configured() bool {
	return c.scriptURL != ""
}

func (c *Client) BreakerState() circuitbreaker.CircuitState {
	return c.breaker.State()
}

// UpcomingGames fetches the date cards for action (getNext3Sundays or getNextGame).
func (c *Client) UpcomingGames(ctx context.Context, action string) ([]Game, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if action == "" {
		action = ActionNext3Sundays
	}

	ctx, span := startSpan(ctx, "sheets.upcoming_games", attribute.String("sheets.action", action))
	defer span.End()

	var games []Game
	err := c.guardedRead(ctx, url.Values{"action": {action}}, func(body []byte) error {
		decoded, err := decodeGames(body)
		if err != nil {
			return err
		}
		games = decoded
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("upcoming games: %w", err)
	}

	span.SetAttributes(attribute.Int("sheets.games", len(games)))
	return games, nil
}

// LookupPhone asks the sheet whether digits belong to a returning player.
func (c *Client) LookupPhone(ctx context.Context, digits string) (*LookupResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, span := startSpan(ctx, "sheets.lookup_phone")
	defer span.End()

	var result LookupResult
	err := c.guardedRead(ctx, url.Values{"action": {ActionLookupPhone}, "phone": {digits}}, func(body []byte) error {
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("decode lookup response: %w", err)
		}
		if result.Error != "" && !result.Found {
			return &RemoteError{Message: result.Error}
		}
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("lookup phone: %w", err)
	}

	if !result.Found {
		result.Player = nil
	}

	span.SetAttributes(attribute.Bool("sheets.found", result.Found))
	return &result, nil
}

// Submit appends record to the sheet. In opaque mode any HTTP response counts
// as success; in JSON mode the body must report success.
func (c *Client) Submit(ctx context.Context, record Record) (*SubmitResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, c.logger)

	if !c.Configured() {
		logger.Warn("Spreadsheet script URL not configured; accepting submission in test mode", "reference", record.Reference)
		return &SubmitResult{Success: true, Message: TestModeMessage, TestMode: true}, nil
	}

	ctx, span := startSpan(ctx, "sheets.submit", attribute.String("sheets.submit_mode", string(c.mode)))
	defer span.End()

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var result *SubmitResult
	err = c.breaker.Call(func() error {
		res, submitErr := c.post(ctx, payload)
		if submitErr != nil {
			return submitErr
		}
		result = res
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("submit: %w", err)
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, payload []byte) (*SubmitResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if c.mode == SubmitModeOpaque {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &SubmitResult{Success: true}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var decoded struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode submit response: %w", err)
	}

	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = decoded.Message
		}
		return nil, &RemoteError{Message: msg}
	}

	return &SubmitResult{Success: true, Message: decoded.Message}, nil
}

func (c *Client) guardedRead(ctx context.Context, query url.Values, decode func([]byte) error) error {
	return c.breaker.Call(func() error {
		return c.retry.Do(ctx, func(ctx context.Context) error {
			body, err := c.get(ctx, query)
			if err != nil {
				return err
			}
			return decode(body)
		})
	})
}

func (c *Client) get(ctx context.Context, query url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.scriptURL)
	if err != nil {
		return nil, fmt.Errorf("parse script url: %w", err)
	}

	q := endpoint.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func decodeGames(body []byte) ([]Game, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var games []Game
		if err := json.Unmarshal(trimmed, &games); err != nil {
			return nil, fmt.Errorf("decode games: %w", err)
		}
		return games, nil
	}

	var wrapped struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
		Games   []Game `json:"games"`
		Data    []Game `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	if wrapped.Success != nil && !*wrapped.Success {
		return nil, &RemoteError{Message: wrapped.Error}
	}

	if len(wrapped.Games) > 0 {
		return wrapped.Games, nil
	}
	return wrapped.Data, nil
}

func breakerConfig(base *circuitbreaker.Config, logger *log.Logger) *circuitbreaker.Config {
	cfg := circuitbreaker.DefaultConfig()
	if base != nil {
		copied := *base
		cfg = &copied
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = endpointFailure
	}
	if cfg.OnStateChange == nil {
		cfg.OnStateChange = func(from, to circuitbreaker.CircuitState) {
			logger.Warn("Spreadsheet endpoint circuit changed state", "from", from.String(), "to", to.String())
		}
	}
	return cfg
}

// endpointFailure reports whether err says the endpoint is unhealthy. A
// rejection in the response body or a caller going away does not.
func endpointFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var remote *RemoteError
	return !errors.As(err, &remote)
}

// isTransient retries server errors, throttling and network timeouts.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("sunday-signup/sheets").Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
