package gateway

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
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	restPrefix      = "/rest/v1/"
	defaultMaxTries = 4
)

// RESTGateway talks to a PostgREST endpoint of the hosted platform.
type RESTGateway struct {
	baseURL  string
	key      string
	client   *http.Client
	tokens   TokenSource
	timeout  time.Duration
	maxTries uint
}

// RESTOption configures a RESTGateway.
type RESTOption func(*RESTGateway)

// WithTimeout bounds every call, retries included.
func WithTimeout(d time.Duration) RESTOption {
	return func(g *RESTGateway) {
		g.timeout = d
	}
}

// WithMaxTries sets how many attempts a read gets before giving up.
func WithMaxTries(n uint) RESTOption {
	return func(g *RESTGateway) {
		g.maxTries = n
	}
}

// NewRESTGateway creates a gateway for the project at baseURL, authenticated with the
// project key and the session token supplied by tokens.
func NewRESTGateway(baseURL, key string, client *http.Client, tokens TokenSource, opts ...RESTOption) *RESTGateway {
	g := &RESTGateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		key:      key,
		client:   client,
		tokens:   tokens,
		maxTries: defaultMaxTries,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Select implements Gateway. Reads are retried on transient failures.
func (g *RESTGateway) Select(ctx context.Context, table string, q Query) (json.RawMessage, error) {
	params, err := encodeQuery(q)
	if err != nil {
		return nil, err
	}
	return g.withRetry(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return g.do(ctx, http.MethodGet, table, params, nil, "")
	})
}

// Insert implements Gateway.
func (g *RESTGateway) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	return g.do(ctx, http.MethodPost, table, nil, record, "return=representation")
}

// Update implements Gateway.
func (g *RESTGateway) Update(ctx context.Context, table string, patch any, filters ...Filter) (json.RawMessage, error) {
	params, err := encodeWriteFilters(filters)
	if err != nil {
		return nil, err
	}
	ctx, cancel := g.bound(ctx)
	defer cancel()
	return g.do(ctx, http.MethodPatch, table, params, patch, "return=representation")
}

// Delete implements Gateway.
func (g *RESTGateway) Delete(ctx context.Context, table string, filters ...Filter) error {
	params, err := encodeWriteFilters(filters)
	if err != nil {
		return err
	}
	ctx, cancel := g.bound(ctx)
	defer cancel()
	_, err = g.do(ctx, http.MethodDelete, table, params, nil, "return=minimal")
	return err
}

// Call implements Gateway. Procedures are treated as reads and retried.
func (g *RESTGateway) Call(ctx context.Context, procedure string, args any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}
	return g.withRetry(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return g.do(ctx, http.MethodPost, "rpc/"+procedure, nil, args, "")
	})
}

// Close implements Gateway.
func (g *RESTGateway) Close() {
	g.client.CloseIdleConnections()
}

func (g *RESTGateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// withRetry retries transient failures (network errors, 429 and 5xx) with
// exponential backoff while respecting context cancellation.
func (g *RESTGateway) withRetry(ctx context.Context, call func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond

	opts := []backoff.RetryOption{
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(g.maxTries),
	}
	if g.timeout > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(g.timeout))
	}

	return backoff.Retry(ctx, func() (json.RawMessage, error) {
		body, err := call(ctx)
		if err != nil && !retryable(ctx, err) {
			return nil, backoff.Permanent(err)
		}
		return body, err
	}, opts...)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, ErrNoSession) {
		return false
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		switch gwErr.Status {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (g *RESTGateway) do(ctx context.Context, method, resource string, params url.Values, body any, prefer string) (json.RawMessage, error) {
	token, err := g.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := g.baseURL + restPrefix + resource
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode %s body: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("apikey", g.key)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, resource, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read %s response: %w", resource, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeError(resp.StatusCode, data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("[]"), nil
	}
	return json.RawMessage(data), nil
}

func decodeError(status int, body []byte) *Error {
	gwErr := &Error{Status: status}
	if err := json.Unmarshal(body, gwErr); err != nil || gwErr.Message == "" {
		gwErr.Message = strings.TrimSpace(string(body))
	}
	if gwErr.Message == "" {
		gwErr.Message = http.StatusText(status)
	}
	return gwErr
}

func encodeQuery(q Query) (url.Values, error) {
	if err := validateFilters(q.Filters); err != nil {
		return nil, err
	}
	if err := validateFilters(q.AnyOf); err != nil {
		return nil, err
	}

	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	}
	for _, f := range q.Filters {
		params.Add(f.Column, string(f.Op)+"."+formatValue(f.Value))
	}
	if len(q.AnyOf) > 0 {
		parts := make([]string, 0, len(q.AnyOf))
		for _, f := range q.AnyOf {
			parts = append(parts, f.Column+"."+string(f.Op)+"."+quoteValue(formatValue(f.Value)))
		}
		params.Set("or", "("+strings.Join(parts, ",")+")")
	}
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			parts = append(parts, o.Column+"."+dir)
		}
		params.Set("order", strings.Join(parts, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params, nil
}

func encodeWriteFilters(filters []Filter) (url.Values, error) {
	if len(filters) == 0 {
		return nil, ErrUnfilteredWrite
	}
	return encodeQuery(Query{Filters: filters})
}

func formatValue(v any) string {
	switch val := scalar(v).(type) {
	case nil:
		return "null"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// quoteValue protects PostgREST reserved characters inside an or=() group.
func quoteValue(s string) string {
	if !strings.ContainsAny(s, `,().:"\`) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
