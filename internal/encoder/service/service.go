// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     service
// Description: Encoder service combining engine, result cache and history
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	"github.com/msto63/nestedencoder/foundation/nenc"
	"github.com/msto63/nestedencoder/internal/encoder/store"
	"github.com/msto63/nestedencoder/pkg/core/cache"
	"github.com/msto63/nestedencoder/pkg/core/health"
	"github.com/msto63/nestedencoder/pkg/core/logging"
)

// Request is one encode call. Tokens, when non-nil, take precedence over
// Pattern and are used without splitting.
type Request struct {
	Text      string
	Pattern   string
	Tokens    []string
	RequestID string
}

// patternLabel renders the pattern for logs and history
func (r *Request) patternLabel() string {
	if r.Tokens != nil {
		return strings.Join(r.Tokens, ",")
	}
	return r.Pattern
}

// cacheKey identifies the request under the given parser variant. String
// and token requests never share a key.
func (r *Request) cacheKey(variant string) string {
	if r.Tokens != nil {
		fields := make([]string, 0, len(r.Tokens)+3)
		fields = append(fields, variant, "tokens", r.Text)
		return cache.ResultKey(append(fields, r.Tokens...)...)
	}
	return cache.ResultKey(variant, "pattern", r.Text, r.Pattern)
}

// Config holds configuration for the encoder service
type Config struct {
	MaxPatternLength int
	StrictTokens     bool
	ExtendedRadix    bool
	Timeout          time.Duration

	CacheEnabled  bool
	CacheMaxItems int
	CacheTTL      time.Duration

	// History is optional; nil disables recording
	History store.HistoryStore

	// Logger is handed to the engine; nil uses the default logger
	Logger *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		CacheEnabled:  true,
		CacheMaxItems: 1000,
		CacheTTL:      10 * time.Minute,
	}
}

// Service is the encoder service shared by CLI, gRPC, HTTP and TUI
type Service struct {
	encoder *nenc.Encoder
	cache   *cache.ResultCache
	history store.HistoryStore
	logger  *logging.Logger
	timeout time.Duration
	variant string

	requests atomic.Int64
	failures atomic.Int64
}

// NewService creates a new encoder service
func NewService(cfg Config) *Service {
	logger := logging.New("nenc-service")
	if cfg.Logger != nil {
		logger = logging.Wrap(cfg.Logger, "nenc-service")
	}

	svc := &Service{
		encoder: nenc.New(nenc.Options{
			Logger:           cfg.Logger,
			MaxPatternLength: cfg.MaxPatternLength,
			StrictTokens:     cfg.StrictTokens,
			ExtendedRadix:    cfg.ExtendedRadix,
		}),
		history: cfg.History,
		logger:  logger,
		timeout: cfg.Timeout,
		variant: fmt.Sprintf("strict=%t,extended=%t", cfg.StrictTokens, cfg.ExtendedRadix),
	}

	if cfg.CacheEnabled {
		svc.cache = cache.NewResultCache(cache.Config{
			MaxItems: cfg.CacheMaxItems,
			TTL:      cfg.CacheTTL,
		})
	}

	logger.Info("Encoder service initialized",
		"cache", cfg.CacheEnabled,
		"history", cfg.History != nil,
		"timeout", cfg.Timeout.String(),
	)

	return svc
}

// Encode runs one request. Empty input yields the options catalog, which is
// neither cached nor recorded.
func (s *Service) Encode(ctx context.Context, req *Request) (*nenc.Response, error) {
	s.requests.Add(1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var key string
	if s.cache != nil && req.Text != "" {
		key = req.cacheKey(s.variant)
		if out, ok := s.cache.Get(key); ok {
			s.logger.Debug("Cache hit", "request_id", req.RequestID)
			resp := &nenc.Response{Result: &nenc.Result{Result: out}}
			s.record(ctx, req, resp, nil)
			return resp, nil
		}
	}

	var resp *nenc.Response
	var err error
	if req.Tokens != nil {
		resp, err = s.encoder.EncodeTokens(ctx, req.Text, req.Tokens)
	} else {
		resp, err = s.encoder.Encode(ctx, req.Text, req.Pattern)
	}

	if err != nil {
		s.failures.Add(1)
		if e, ok := mdwerror.As(err); ok && req.RequestID != "" {
			e.WithRequestID(req.RequestID)
		}
		s.logger.Warn("Encode failed",
			"request_id", req.RequestID,
			"pattern", req.patternLabel(),
			"code", string(mdwerror.GetCode(err)),
			"error", err.Error(),
		)
		s.record(ctx, req, nil, err)
		return nil, err
	}

	if resp.IsOptions() {
		return resp, nil
	}

	if key != "" {
		s.cache.Set(key, resp.Result.Result)
	}
	s.record(ctx, req, resp, nil)
	return resp, nil
}

// Options returns the options catalog
func (s *Service) Options() nenc.OptionsCatalog {
	return s.encoder.Options()
}

// Encoder returns the underlying engine
func (s *Service) Encoder() *nenc.Encoder {
	return s.encoder
}

// History returns the most recent history entries
func (s *Service) History(ctx context.Context, limit int) ([]*store.Entry, error) {
	if s.history == nil {
		return nil, mdwerror.New("history is disabled").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("service.History")
	}
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read history").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("service.History")
	}
	return entries, nil
}

// PruneHistory removes history entries older than retention
func (s *Service) PruneHistory(ctx context.Context, retention time.Duration) (int64, error) {
	if s.history == nil || retention <= 0 {
		return 0, nil
	}
	deleted, err := s.history.Prune(ctx, retention)
	if err != nil {
		return 0, mdwerror.Wrap(err, "failed to prune history").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("service.PruneHistory")
	}
	if deleted > 0 {
		s.logger.Info("History pruned", "deleted", deleted)
	}
	return deleted, nil
}

// Stats returns service, cache and history statistics
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"requests": s.requests.Load(),
		"failures": s.failures.Load(),
	}
	if s.cache != nil {
		stats["cache"] = s.cache.Stats()
	}
	if s.history != nil {
		if hs, err := s.history.Stats(ctx); err == nil {
			stats["history"] = hs
		}
	}
	return stats
}

// RegisterHealthChecks adds the engine self test and, if enabled, the history
// database check to registry.
func (s *Service) RegisterHealthChecks(registry *health.Registry) {
	registry.Register(health.ExpectCheck("engine", func(ctx context.Context) (string, error) {
		resp, err := s.encoder.Encode(ctx, "nenc", "ascii,hex")
		if err != nil {
			return "", err
		}
		return resp.Result.Result, nil
	}, "6e 65 6e 63"))

	if s.history != nil {
		registry.Register(health.PingCheck("history", s.history))
	}
}

// Close releases cache and history resources
func (s *Service) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

func (s *Service) record(ctx context.Context, req *Request, resp *nenc.Response, encErr error) {
	if s.history == nil {
		return
	}

	entry := &store.Entry{
		Pattern:     req.patternLabel(),
		InputLength: len([]rune(req.Text)),
		RequestID:   req.RequestID,
	}
	if encErr != nil {
		entry.ErrorCode = string(mdwerror.GetCode(encErr))
	} else if resp != nil && resp.Result != nil {
		entry.OutputLength = len([]rune(resp.Result.Result))
	}

	// the encode deadline must not cut off the history write
	if err := s.history.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("Failed to record history", "error", err.Error())
	}
}
