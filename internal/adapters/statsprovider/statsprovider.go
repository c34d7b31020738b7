package statsprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Amund211/brawltools/internal/logging"
	"github.com/Amund211/brawltools/internal/query"
	"github.com/Amund211/brawltools/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var ErrMalformedResponse = errors.New("malformed response")

type Executor interface {
	Query(ctx context.Context, path string, params query.Params) (query.Result, error)
}

type statsProviderMetricsCollection struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func setupStatsProviderMetrics(meter metric.Meter) (statsProviderMetricsCollection, error) {
	requestCount, err := meter.Int64Counter(
		"statsprovider/request_count",
		metric.WithDescription("Requests sent to the brawltools API"),
	)
	if err != nil {
		return statsProviderMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"statsprovider/request_duration_seconds",
		metric.WithDescription("Duration of requests sent to the brawltools API"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return statsProviderMetricsCollection{}, fmt.Errorf("failed to create request duration metric: %w", err)
	}

	return statsProviderMetricsCollection{
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}, nil
}

// BrawlTools is the typed endpoint catalog of the brawltools API
type BrawlTools struct {
	executor Executor

	metrics statsProviderMetricsCollection
	tracer  trace.Tracer
}

func New(executor Executor) (*BrawlTools, error) {
	const name = "brawltools/statsprovider"

	metrics, err := setupStatsProviderMetrics(otel.Meter(name))
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &BrawlTools{
		executor: executor,

		metrics: metrics,
		tracer:  otel.Tracer(name),
	}, nil
}

type endpoint struct {
	name string
	path string
	// Used in place of the generic status message when the API gives no message
	failureMessage string
}

func (b *BrawlTools) run(ctx context.Context, e endpoint, params query.Params) (query.Result, error) {
	ctx, span := b.tracer.Start(ctx, "BrawlTools."+e.name)
	defer span.End()

	ctx = logging.WithEndpoint(ctx, e.name)

	start := time.Now()
	result, err := b.executor.Query(ctx, e.path, params)
	duration := time.Since(start)

	outcome := outcomeLabel(result, err)
	statusCode := result.StatusCode
	var queryErr *query.Error
	if errors.As(err, &queryErr) {
		statusCode = queryErr.StatusCode
	}

	attributes := metric.WithAttributes(
		attribute.String("endpoint", e.name),
		attribute.String("outcome", outcome),
		attribute.String("status_code", strconv.Itoa(statusCode)),
	)
	b.metrics.requestCount.Add(ctx, 1, attributes)
	b.metrics.requestDuration.Record(ctx, duration.Seconds(), attributes)

	span.SetAttributes(attribute.String("outcome", outcome))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	logging.FromContext(ctx).InfoContext(
		ctx,
		"brawltools request completed",
		slog.String("path", e.path),
		slog.String("outcome", outcome),
		slog.Int("status", statusCode),
		slog.String("duration", duration.String()),
	)

	return result, err
}

func outcomeLabel(result query.Result, err error) string {
	var queryErr *query.Error
	if errors.As(err, &queryErr) {
		return queryErr.Kind.String()
	}
	if err != nil {
		return "error"
	}
	return result.Outcome.String()
}

// failure reports err and gives status failures without a message from the API
// the endpoint's own message
func (b *BrawlTools) failure(ctx context.Context, e endpoint, err error) error {
	var queryErr *query.Error
	if !errors.As(err, &queryErr) {
		reporting.Report(ctx, fmt.Errorf("%s: %w", e.name, err))
		return err
	}

	reporting.Report(ctx, fmt.Errorf("%s: %w", e.name, err), map[string]string{
		"endpoint": e.name,
		"kind":     queryErr.Kind.String(),
		"status":   strconv.Itoa(queryErr.StatusCode),
	})

	if queryErr.Kind == query.KindStatus && !queryErr.Extracted && e.failureMessage != "" {
		return queryErr.WithMessage(e.failureMessage)
	}
	return queryErr
}

func decode[T any](ctx context.Context, e endpoint, data []byte) (T, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		err := fmt.Errorf("%w: failed to parse %s response: %w", ErrMalformedResponse, e.name, err)
		reporting.Report(ctx, err, map[string]string{
			"endpoint": e.name,
			"data":     truncate(string(data), 500),
		})
		var empty T
		return empty, err
	}
	return value, nil
}

// get runs the query and decodes a successful response.
//
// found is false when the resource does not exist, in which case value is the
// zero value. List endpoints pass their lists through orEmpty either way.
func get[T any](ctx context.Context, b *BrawlTools, e endpoint, params query.Params) (value T, found bool, err error) {
	result, err := b.run(ctx, e, params)
	if err != nil {
		return value, false, b.failure(ctx, e, err)
	}

	if result.NotFound() {
		return value, false, nil
	}

	value, err = decode[T](ctx, e, result.Body)
	if err != nil {
		return value, false, err
	}

	return value, true, nil
}

// orEmpty gives a missing list the same empty value a 404 does
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}
