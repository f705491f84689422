package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/repository"
)

// MaxPresetsPerOwner caps how many presets one form session can keep.
const MaxPresetsPerOwner = 20

var (
	ErrInvalidPresetName = errors.New("preset name must be 1-64 printable characters without '/'")
	ErrPresetNotFound    = errors.New("preset not found")
	ErrTooManyPresets    = fmt.Errorf("at most %d presets can be saved", MaxPresetsPerOwner)
)

// PresetStore is the persistence PresetService needs.
type PresetStore interface {
	Upsert(ctx context.Context, p *model.Preset) error
	GetByName(ctx context.Context, ownerID, name string) (*model.Preset, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Preset, error)
	Delete(ctx context.Context, ownerID, name string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PresetService handles saved form configurations.
type PresetService struct {
	repo     PresetStore
	validate *validator.Validate
}

// NewPresetService creates a new PresetService.
func NewPresetService(repo PresetStore) *PresetService {
	return &PresetService{
		repo:     repo,
		validate: validator.New(),
	}
}

// Save validates and stores a preset, overwriting one with the same name.
func (s *PresetService) Save(ctx context.Context, ownerID string, req model.PresetRequest) (model.PresetResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.PresetResponse{}, ErrInvalidPresetName
	}

	n, err := passgen.ValidateLength(req.Length)
	if err != nil {
		return model.PresetResponse{}, err
	}
	if req.Classes.Empty() {
		return model.PresetResponse{}, passgen.ErrEmptyPool
	}

	if err := s.checkCapacity(ctx, ownerID, req.Name); err != nil {
		return model.PresetResponse{}, err
	}

	p := model.Preset{
		OwnerID: ownerID,
		Name:    req.Name,
		Length:  n,
		Classes: req.Classes,
	}
	if err := s.repo.Upsert(ctx, &p); err != nil {
		return model.PresetResponse{}, fmt.Errorf("saving preset: %w", err)
	}

	saved, err := s.repo.GetByName(ctx, ownerID, req.Name)
	if err != nil {
		return model.PresetResponse{}, fmt.Errorf("reloading preset: %w", err)
	}
	return presetToResponse(*saved), nil
}

// Get returns one preset.
func (s *PresetService) Get(ctx context.Context, ownerID, name string) (model.PresetResponse, error) {
	p, err := s.repo.GetByName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, repository.ErrPresetNotFound) {
			return model.PresetResponse{}, ErrPresetNotFound
		}
		return model.PresetResponse{}, err
	}
	return presetToResponse(*p), nil
}

// List returns all presets of an owner.
func (s *PresetService) List(ctx context.Context, ownerID string) ([]model.PresetResponse, error) {
	presets, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.PresetResponse, len(presets))
	for i, p := range presets {
		result[i] = presetToResponse(p)
	}
	return result, nil
}

// Delete removes a preset.
func (s *PresetService) Delete(ctx context.Context, ownerID, name string) error {
	err := s.repo.Delete(ctx, ownerID, name)
	if errors.Is(err, repository.ErrPresetNotFound) {
		return ErrPresetNotFound
	}
	return err
}

// Prune removes presets last saved before cutoff. Their owning sessions
// have expired, so nothing can reach them any more.
func (s *PresetService) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.repo.DeleteUpdatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning presets: %w", err)
	}
	return n, nil
}

// checkCapacity allows overwriting an existing preset but refuses a new one
// once the owner is at MaxPresetsPerOwner.
func (s *PresetService) checkCapacity(ctx context.Context, ownerID, name string) error {
	_, err := s.repo.GetByName(ctx, ownerID, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrPresetNotFound) {
		return fmt.Errorf("looking up preset: %w", err)
	}

	n, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("counting presets: %w", err)
	}
	if n >= MaxPresetsPerOwner {
		return ErrTooManyPresets
	}
	return nil
}

func presetToResponse(p model.Preset) model.PresetResponse {
	return model.PresetResponse{
		Name:      p.Name,
		Length:    p.Length,
		Classes:   p.Classes,
		UpdatedAt: p.UpdatedAt,
	}
}
