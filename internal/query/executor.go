package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Amund211/brawltools/internal/constants"
)

const DefaultTimeout = 5000 * time.Millisecond

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	}
	return "unknown"
}

type Result struct {
	Outcome    Outcome
	StatusCode int
	// Body is nil for OutcomeNotFound
	Body []byte
}

func (r Result) NotFound() bool {
	return r.Outcome == OutcomeNotFound
}

type Option func(*Executor)

func WithTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		e.timeout = timeout
	}
}

// Executor runs GET queries against the statistics API.
//
// Every query gets its own deadline. The base URL is the only shared mutable
// state, and overrides are last write wins.
type Executor struct {
	httpClient HttpClient
	baseURL    atomic.Value
	timeout    time.Duration
}

func NewExecutor(httpClient HttpClient, baseURL string, opts ...Option) *Executor {
	e := &Executor{
		httpClient: httpClient,
		timeout:    DefaultTimeout,
	}
	e.baseURL.Store(baseURL)

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Executor) BaseURL() string {
	return e.baseURL.Load().(string)
}

func (e *Executor) SetBaseURL(baseURL string) {
	e.baseURL.Store(baseURL)
}

func (e *Executor) URL(path string, params Params) string {
	url := e.BaseURL() + path
	if encoded := params.Encode(); encoded != "" {
		url += "?" + encoded
	}
	return url
}

func (e *Executor) Query(ctx context.Context, path string, params Params) (Result, error) {
	timedOut := fmt.Errorf("%w after %dms", ErrTimeout, e.timeout.Milliseconds())

	ctx, cancel := context.WithTimeoutCause(ctx, e.timeout, timedOut)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.URL(path, params), nil)
	if err != nil {
		return Result{}, &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to create request: %s", err.Error()),
			Cause:   err,
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.USER_AGENT)

	resp, err := e.httpClient.Do(req)
	if didTimeOut(ctx, timedOut) {
		// The deadline won, even if the transport still handed us a response
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return Result{}, timeoutError(timedOut)
	}
	if err != nil {
		return Result{}, &Error{
			Kind:    KindTransport,
			Message: err.Error(),
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{Outcome: OutcomeNotFound, StatusCode: resp.StatusCode}, nil
	}

	data, err := io.ReadAll(resp.Body)
	if didTimeOut(ctx, timedOut) {
		return Result{}, timeoutError(timedOut)
	}
	if err != nil {
		return Result{}, &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to read response body: %s", err.Error()),
			Cause:   err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, extracted := errorMessage(resp.StatusCode, data)
		return Result{}, &Error{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    message,
			Extracted:  extracted,
		}
	}

	return Result{Outcome: OutcomeSuccess, StatusCode: resp.StatusCode, Body: data}, nil
}

func didTimeOut(ctx context.Context, timedOut error) bool {
	return ctx.Err() != nil && errors.Is(context.Cause(ctx), timedOut)
}

func timeoutError(timedOut error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: timedOut.Error(),
		Cause:   timedOut,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

func errorMessage(statusCode int, data []byte) (string, bool) {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message, true
	}
	return fmt.Sprintf("Fetch failed with status: %d", statusCode), false
}
