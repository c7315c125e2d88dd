// Package storesource extracts the store directory from a local JSON file or
// a remote URL and transforms it into validated stores.
package storesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/retailseed/pkg/logger"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

const (
	maxDocumentBytes = 32 << 20
	fetchAttempts    = 3
	fetchBackoff     = 500 * time.Millisecond
)

// Options locate the store document. FilePath wins when the file exists.
type Options struct {
	FilePath string
	URL      string
	Timeout  time.Duration
}

// Source reads the store document.
type Source struct {
	opts   Options
	client *http.Client
	log    logger.Logger
}

// New returns a Source whose HTTP client is traced with otelhttp.
func New(opts Options, log logger.Logger) *Source {
	return &Source{
		opts: opts,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// Fetch extracts and transforms the document. Failing to obtain the document
// at all wraps ErrStoresUnavailable; bad records are only logged and skipped.
func (s *Source) Fetch(ctx context.Context) ([]models.Store, error) {
	data, err := s.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", salesdomain.ErrStoresUnavailable, err)
	}
	return Transform(ctx, data, s.log)
}

// Extract returns the raw document from the file, or from the URL when the
// file does not exist. Server errors and 429s are retried with backoff.
func (s *Source) Extract(ctx context.Context) ([]byte, error) {
	if s.opts.FilePath != "" {
		data, err := os.ReadFile(s.opts.FilePath)
		switch {
		case err == nil:
			s.log.InfoContext(ctx, "stores read from file", "path", s.opts.FilePath)
			return data, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read stores file: %w", err)
		}
	}
	if s.opts.URL == "" {
		return nil, errors.New("no stores file and no stores url configured")
	}

	var data []byte
	b := retry.WithMaxRetries(fetchAttempts-1, retry.NewExponential(fetchBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		data, err = s.get(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "stores retrieved", "url", s.opts.URL, "bytes", len(data))
	return data, nil
}

func (s *Source) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build stores request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("get stores: %w", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("get stores: unexpected status %s", resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, retry.RetryableError(err)
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("read stores body: %w", err))
	}
	return data, nil
}
