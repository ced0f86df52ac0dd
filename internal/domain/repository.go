package domain

import (
	"context"
	"time"
)

// ResultCache defines the interface for caching resolution results
type ResultCache interface {
	Get(ctx context.Context, key string) (*ResolutionResult, error)
	Set(ctx context.Context, key string, value *ResolutionResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NoteSource yields the notes of one batch (a spreadsheet export, a CSV dump).
type NoteSource interface {
	ReadNotes(ctx context.Context) ([]NoteRecord, error)
}
