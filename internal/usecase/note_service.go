package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinicprime/notelens/internal/domain"
)

// NoteServiceConfig holds configuration for the note service
type NoteServiceConfig struct {
	CacheTTL time.Duration
	Logger   *zap.SugaredLogger
}

// NoteService resolves single notes with result caching
type NoteService struct {
	cache    domain.ResultCache
	resolver *Resolver
	cacheTTL time.Duration
	logger   *zap.SugaredLogger
}

// NewNoteService creates a new note service. A nil cache disables caching.
func NewNoteService(
	cache domain.ResultCache,
	resolver *Resolver,
	config NoteServiceConfig,
) *NoteService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &NoteService{
		cache:    cache,
		resolver: resolver,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolver returns the underlying resolver
func (s *NoteService) Resolver() *Resolver {
	return s.resolver
}

// ResolveNote classifies the note described by the request.
// Flow: check cache -> resolve -> cache -> return
func (s *NoteService) ResolveNote(
	ctx context.Context,
	request *domain.ResolveRequest,
) (*domain.ResolutionResult, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := request.Text
	if len(request.Fields) > 0 {
		raw = JoinFields(request.Fields)
	}

	if s.cache == nil {
		return s.resolver.Resolve(raw), nil
	}

	cacheKey := generateCacheKey(raw)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached.Clone(), nil
	}

	result := s.resolver.Resolve(raw)

	if err := s.cache.Set(ctx, cacheKey, result.Clone(), s.cacheTTL); err != nil {
		s.logger.Warnw("failed to cache resolution", "key", cacheKey, "error", err)
	}

	return result, nil
}

// generateCacheKey builds the cache key of a raw note.
// Every stage of the resolution reads the folded text, so equal folds resolve equally.
// Format: "note:{folded text}"
func generateCacheKey(raw string) string {
	return fmt.Sprintf("note:%s", Fold(raw))
}
