package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/ports"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	ErrUpstreamStatus    = errors.New("statistics upstream returned an error status")
	ErrMalformedResponse = errors.New("malformed statistics response")
)

const (
	DefaultPath    = "/statistic"
	DefaultTimeout = 10 * time.Second
)

type Options struct {
	BaseURL string
	Path    string
	// Envelope, when set, names the top-level key that wraps the record,
	// e.g. "data" for {"data": {...}}.
	Envelope string
	Timeout  time.Duration
}

// StatisticsFetcher reads the statistics record from an upstream HTTP API.
type StatisticsFetcher struct {
	client   *resty.Client
	path     string
	envelope string
	logger   *zap.Logger
}

var _ ports.StatisticsFetcherPort = (*StatisticsFetcher)(nil)

func NewStatisticsFetcher(opts Options, logger *zap.Logger) *StatisticsFetcher {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	return &StatisticsFetcher{
		client:   client,
		path:     opts.Path,
		envelope: opts.Envelope,
		logger:   logger,
	}
}

func (f *StatisticsFetcher) FetchStatistics(ctx context.Context) (*domain.RawStatistics, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.path)
	if err != nil {
		return nil, fmt.Errorf("request statistics: %w", err)
	}

	if resp.IsError() {
		f.logger.Warn("statistics upstream error",
			zap.Int("status", resp.StatusCode()),
			zap.String("path", f.path))
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode())
	}

	body := resp.Body()
	if f.envelope != "" {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		inner, ok := wrapped[f.envelope]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedResponse, f.envelope)
		}
		body = inner
	}

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, nil
	}

	var raw domain.RawStatistics
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return &raw, nil
}
