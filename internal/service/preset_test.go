package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/repository"
)

type memoryPresetStore struct {
	presets map[string]model.Preset
	nextID  int64
	failErr error
}

func newMemoryPresetStore() *memoryPresetStore {
	return &memoryPresetStore{presets: make(map[string]model.Preset)}
}

func (m *memoryPresetStore) key(owner, name string) string { return owner + "\x00" + name }

func (m *memoryPresetStore) Upsert(_ context.Context, p *model.Preset) error {
	if m.failErr != nil {
		return m.failErr
	}
	k := m.key(p.OwnerID, p.Name)
	existing, ok := m.presets[k]
	now := time.Now().UTC()
	if ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		p.ID = m.nextID
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.presets[k] = *p
	return nil
}

func (m *memoryPresetStore) GetByName(_ context.Context, owner, name string) (*model.Preset, error) {
	p, ok := m.presets[m.key(owner, name)]
	if !ok {
		return nil, repository.ErrPresetNotFound
	}
	return &p, nil
}

func (m *memoryPresetStore) ListByOwner(_ context.Context, owner string) ([]model.Preset, error) {
	var out []model.Preset
	for _, p := range m.presets {
		if p.OwnerID == owner {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryPresetStore) Delete(_ context.Context, owner, name string) error {
	k := m.key(owner, name)
	if _, ok := m.presets[k]; !ok {
		return repository.ErrPresetNotFound
	}
	delete(m.presets, k)
	return nil
}

func (m *memoryPresetStore) CountByOwner(_ context.Context, owner string) (int, error) {
	n := 0
	for _, p := range m.presets {
		if p.OwnerID == owner {
			n++
		}
	}
	return n, nil
}

func (m *memoryPresetStore) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for k, p := range m.presets {
		if p.UpdatedAt.Before(cutoff) {
			delete(m.presets, k)
			n++
		}
	}
	return n, nil
}

func TestPresetService_SaveAndGet(t *testing.T) {
	svc := NewPresetService(newMemoryPresetStore())
	ctx := context.Background()

	saved, err := svc.Save(ctx, "owner-1", model.PresetRequest{
		Name:    "wifi",
		Length:  " 16 ",
		Classes: passgen.ClassSet{Lowercase: true, Numbers: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "wifi", saved.Name)
	assert.Equal(t, 16, saved.Length)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.Get(ctx, "owner-1", "wifi")
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = svc.Get(ctx, "owner-2", "wifi")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestPresetService_SaveOverwrites(t *testing.T) {
	store := newMemoryPresetStore()
	svc := NewPresetService(store)
	ctx := context.Background()

	_, err := svc.Save(ctx, "o", model.PresetRequest{Name: "p", Length: "8", Classes: passgen.DefaultClassSet()})
	require.NoError(t, err)
	_, err = svc.Save(ctx, "o", model.PresetRequest{Name: "p", Length: "12", Classes: passgen.ClassSet{Symbols: true}})
	require.NoError(t, err)

	list, err := svc.List(ctx, "o")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 12, list[0].Length)
	assert.Equal(t, passgen.ClassSet{Symbols: true}, list[0].Classes)
}

func TestPresetService_SaveValidation(t *testing.T) {
	svc := NewPresetService(newMemoryPresetStore())
	ctx := context.Background()
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		req     model.PresetRequest
		wantErr error
	}{
		{"empty name", model.PresetRequest{Name: "", Length: "8", Classes: passgen.DefaultClassSet()}, ErrInvalidPresetName},
		{"slash in name", model.PresetRequest{Name: "a/b", Length: "8", Classes: passgen.DefaultClassSet()}, ErrInvalidPresetName},
		{"name too long", model.PresetRequest{Name: string(long), Length: "8", Classes: passgen.DefaultClassSet()}, ErrInvalidPresetName},
		{"non-ascii name", model.PresetRequest{Name: "pässwort", Length: "8", Classes: passgen.DefaultClassSet()}, ErrInvalidPresetName},
		{"missing length", model.PresetRequest{Name: "p", Length: "", Classes: passgen.DefaultClassSet()}, passgen.ErrLengthRequired},
		{"short length", model.PresetRequest{Name: "p", Length: "3", Classes: passgen.DefaultClassSet()}, passgen.ErrLengthTooShort},
		{"long length", model.PresetRequest{Name: "p", Length: "40", Classes: passgen.DefaultClassSet()}, passgen.ErrLengthTooLong},
		{"no classes", model.PresetRequest{Name: "p", Length: "8"}, passgen.ErrEmptyPool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, "o", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPresetService_SaveStoreError(t *testing.T) {
	store := newMemoryPresetStore()
	store.failErr = errors.New("connection refused")
	svc := NewPresetService(store)

	_, err := svc.Save(context.Background(), "o", model.PresetRequest{Name: "p", Length: "8", Classes: passgen.DefaultClassSet()})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.failErr)
	assert.False(t, passgen.IsUserError(err))
}

func TestPresetService_ListAndDelete(t *testing.T) {
	svc := NewPresetService(newMemoryPresetStore())
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha"} {
		_, err := svc.Save(ctx, "o", model.PresetRequest{Name: name, Length: "8", Classes: passgen.DefaultClassSet()})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "o")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)

	require.NoError(t, svc.Delete(ctx, "o", "alpha"))
	assert.ErrorIs(t, svc.Delete(ctx, "o", "alpha"), ErrPresetNotFound)

	empty, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPresetService_SaveCapPerOwner(t *testing.T) {
	svc := NewPresetService(newMemoryPresetStore())
	ctx := context.Background()
	req := func(name string) model.PresetRequest {
		return model.PresetRequest{Name: name, Length: "8", Classes: passgen.DefaultClassSet()}
	}

	for i := 0; i < MaxPresetsPerOwner; i++ {
		_, err := svc.Save(ctx, "o", req(fmt.Sprintf("p%d", i)))
		require.NoError(t, err)
	}

	_, err := svc.Save(ctx, "o", req("one-more"))
	assert.ErrorIs(t, err, ErrTooManyPresets)
	assert.False(t, passgen.IsUserError(err))

	// Overwriting an existing preset is still allowed at the cap.
	_, err = svc.Save(ctx, "o", req("p0"))
	assert.NoError(t, err)

	// The cap is per owner.
	_, err = svc.Save(ctx, "other", req("one-more"))
	assert.NoError(t, err)

	list, err := svc.List(ctx, "o")
	require.NoError(t, err)
	assert.Len(t, list, MaxPresetsPerOwner)
}

func TestPresetService_Prune(t *testing.T) {
	store := newMemoryPresetStore()
	svc := NewPresetService(store)
	ctx := context.Background()

	for _, name := range []string{"old", "fresh"} {
		_, err := svc.Save(ctx, "o", model.PresetRequest{Name: name, Length: "8", Classes: passgen.DefaultClassSet()})
		require.NoError(t, err)
	}
	old := store.presets[store.key("o", "old")]
	old.UpdatedAt = time.Now().Add(-48 * time.Hour)
	store.presets[store.key("o", "old")] = old

	n, err := svc.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Get(ctx, "o", "old")
	assert.ErrorIs(t, err, ErrPresetNotFound)
	_, err = svc.Get(ctx, "o", "fresh")
	assert.NoError(t, err)
}
