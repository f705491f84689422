package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/repository"
	"github.com/passform/passform-go/internal/service"
)

type pruneStore struct {
	cutoffs chan time.Time
}

func (s *pruneStore) Upsert(context.Context, *model.Preset) error { return nil }

func (s *pruneStore) GetByName(context.Context, string, string) (*model.Preset, error) {
	return nil, repository.ErrPresetNotFound
}

func (s *pruneStore) ListByOwner(context.Context, string) ([]model.Preset, error) { return nil, nil }

func (s *pruneStore) Delete(context.Context, string, string) error { return nil }

func (s *pruneStore) CountByOwner(context.Context, string) (int, error) { return 0, nil }

func (s *pruneStore) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoffs <- cutoff
	return 3, nil
}

func TestPrunePresetsRunsAtStartupAndStops(t *testing.T) {
	store := &pruneStore{cutoffs: make(chan time.Time, 1)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		prunePresets(ctx, service.NewPresetService(store), 24*time.Hour)
		close(done)
	}()

	select {
	case cutoff := <-store.cutoffs:
		assert.WithinDuration(t, time.Now().Add(-24*time.Hour), cutoff, time.Minute)
	case <-time.After(time.Second):
		t.Fatal("presets were not pruned at startup")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("prunePresets did not return after context was cancelled")
	}
}
