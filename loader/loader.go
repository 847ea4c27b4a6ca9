// Package loader ingests delimited record files from HTTP or local sources
// and produces raw loose records for the processor.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/models"
)

// Loader fetches and parses delimited sources. HTTP sources go through a
// colly collector; anything else is treated as a local file path.
type Loader struct {
	cfg       *config.Config
	collector *colly.Collector
	Metrics   *Metrics

	mu      sync.Mutex
	pending map[string]*fetchResult

	handlersOnce sync.Once
}

type fetchResult struct {
	body []byte
	ok   bool
	err  error
}

// NewLoader builds a loader configured from cfg.
func NewLoader(cfg *config.Config) *Loader {
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	return &Loader{
		cfg:       cfg,
		collector: collector,
		pending:   make(map[string]*fetchResult),
		Metrics:   NewMetrics(),
	}
}

// Load fetches one source and parses its rows. A fetch or structural parse
// failure propagates as an error; per-field problems are left to the
// normalizer downstream.
func (l *Loader) Load(ctx context.Context, source string) ([]models.RawRecord, error) {
	start := time.Now()

	var payload []byte
	var err error
	if isHTTP(source) {
		payload, err = l.fetch(ctx, source)
	} else {
		payload, err = readFile(source)
	}
	if err != nil {
		l.Metrics.IncError(errorTypeLabel(err))
		return nil, err
	}

	records, skipped, err := ParseRecords(bytes.NewReader(payload), l.cfg.Delimiter)
	if err != nil {
		l.Metrics.IncError(errorTypeLabel(err))
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	l.Metrics.ObserveLoad(time.Since(start))
	l.Metrics.AddRecords(len(records))
	l.Metrics.AddSkippedRows(skipped)

	slog.Debug("source loaded",
		slog.String("source", source),
		slog.Int("records", len(records)),
		slog.Int("skipped_rows", skipped),
		slog.Duration("took", time.Since(start)),
	)
	return records, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if ctx != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	l.configureHandlers()

	result := &fetchResult{}
	l.mu.Lock()
	l.pending[url] = result
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		delete(l.pending, url)
		l.mu.Unlock()
	}()

	l.Metrics.IncRequest("started")
	visitErr := l.collector.Visit(url)
	l.collector.Wait()

	l.mu.Lock()
	body, ok, err := result.body, result.ok, result.err
	l.mu.Unlock()

	// OnError classifies with the HTTP status; prefer it over the bare
	// error Visit returns.
	if err != nil {
		l.Metrics.IncRequest("failed")
		return nil, err
	}
	if visitErr != nil {
		l.Metrics.IncRequest("failed")
		return nil, classifyError(fmt.Errorf("visit %s: %w", url, visitErr), 0)
	}
	if !ok {
		l.Metrics.IncRequest("failed")
		return nil, ErrConnection{Err: fmt.Errorf("no response for %s", url)}
	}
	l.Metrics.IncRequest("completed")
	return body, nil
}

func (l *Loader) configureHandlers() {
	l.handlersOnce.Do(func() {
		l.collector.OnResponse(func(r *colly.Response) {
			l.mu.Lock()
			if result, ok := l.pending[r.Request.URL.String()]; ok {
				result.body = r.Body
				result.ok = true
			}
			l.mu.Unlock()
		})

		l.collector.OnError(func(r *colly.Response, err error) {
			statusCode := 0
			url := ""
			if r != nil {
				statusCode = r.StatusCode
				if r.Request != nil && r.Request.URL != nil {
					url = r.Request.URL.String()
				}
			}
			classified := classifyError(err, statusCode)
			slog.Error("source fetch error",
				slog.String("url", url),
				slog.String("category", errorTypeLabel(classified)),
				slog.Any("error", err),
			)

			l.mu.Lock()
			if result, ok := l.pending[url]; ok {
				result.err = classified
			}
			l.mu.Unlock()
		})
	})
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	return payload, nil
}

func isHTTP(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
