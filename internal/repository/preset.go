package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/passform/passform-go/internal/model"
)

var ErrPresetNotFound = errors.New("preset not found")

// PresetRepository handles preset persistence operations.
type PresetRepository struct {
	db *sql.DB
}

// NewPresetRepository creates a new PresetRepository.
func NewPresetRepository(db *sql.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

const upsertPresetQuery = `
	INSERT INTO presets (owner_id, name, length, lowercase, uppercase, numbers, symbols)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		length    = VALUES(length),
		lowercase = VALUES(lowercase),
		uppercase = VALUES(uppercase),
		numbers   = VALUES(numbers),
		symbols   = VALUES(symbols)`

const selectPresetColumns = `SELECT id, owner_id, name, length, lowercase, uppercase, numbers, symbols, created_at, updated_at
	FROM presets`

// Upsert saves a preset, replacing any existing preset with the same owner
// and name.
func (r *PresetRepository) Upsert(ctx context.Context, p *model.Preset) error {
	_, err := r.db.ExecContext(ctx, upsertPresetQuery,
		p.OwnerID,
		p.Name,
		p.Length,
		p.Classes.Lowercase,
		p.Classes.Uppercase,
		p.Classes.Numbers,
		p.Classes.Symbols,
	)
	return err
}

// GetByName retrieves one preset of an owner.
func (r *PresetRepository) GetByName(ctx context.Context, ownerID, name string) (*model.Preset, error) {
	query := selectPresetColumns + ` WHERE owner_id = ? AND name = ?`

	p, err := scanPreset(r.db.QueryRowContext(ctx, query, ownerID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}

	return p, nil
}

// ListByOwner retrieves all presets of an owner, ordered by name.
func (r *PresetRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Preset, error) {
	query := selectPresetColumns + ` WHERE owner_id = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []model.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}

	return presets, rows.Err()
}

// Delete removes one preset of an owner.
func (r *PresetRepository) Delete(ctx context.Context, ownerID, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE owner_id = ? AND name = ?`, ownerID, name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPresetNotFound
	}

	return nil
}

// CountByOwner returns how many presets an owner has.
func (r *PresetRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM presets WHERE owner_id = ?`, ownerID).Scan(&n)
	return n, err
}

// DeleteUpdatedBefore removes every preset last saved before cutoff and
// returns how many were removed.
func (r *PresetRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*model.Preset, error) {
	p := &model.Preset{}
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Length,
		&p.Classes.Lowercase, &p.Classes.Uppercase, &p.Classes.Numbers, &p.Classes.Symbols,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
