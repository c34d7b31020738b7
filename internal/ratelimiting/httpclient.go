package ratelimiting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/logging"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type limitedHTTPClient struct {
	httpClient       HttpClient
	limiter          RequestLimiter
	minOperationTime time.Duration
}

// NewLimitedHTTPClient sends every request through limiter.
//
// A request that cannot get a slot in time fails with an error wrapping
// domain.ErrTemporarilyUnavailable, without reaching httpClient.
func NewLimitedHTTPClient(httpClient HttpClient, limiter RequestLimiter, minOperationTime time.Duration) HttpClient {
	return &limitedHTTPClient{
		httpClient:       httpClient,
		limiter:          limiter,
		minOperationTime: minOperationTime,
	}
}

func (c *limitedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	var resp *http.Response
	var err error
	ran := c.limiter.Limit(ctx, c.minOperationTime, func(ctx context.Context) {
		resp, err = c.httpClient.Do(req)
	})
	if !ran {
		logging.FromContext(ctx).WarnContext(ctx, "Did not send request due to rate limiting", "ctx_error", ctx.Err())
		return nil, fmt.Errorf("%w: too many requests to %s", domain.ErrTemporarilyUnavailable, req.URL.Host)
	}

	return resp, err
}
