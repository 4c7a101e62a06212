package location

import (
	"context"
	"errors"
	"testing"

	"github.com/bbernstein/lunartide/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shanghai  = models.Location{Name: "上海", Latitude: 31.2304, Longitude: 121.4737}
	guangzhou = models.Location{Name: "广州", Latitude: 23.1291, Longitude: 113.2644}
	qingdao   = models.Location{Name: "青岛", Latitude: 36.0671, Longitude: 120.3826}
)

// mockStore implements Store with overridable behaviour
type mockStore struct {
	loadFunc func(ctx context.Context) (*models.Preferences, error)
	saveFunc func(ctx context.Context, prefs *models.Preferences) error
}

func (m *mockStore) Load(ctx context.Context) (*models.Preferences, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return emptyPreferences(), nil
}

func (m *mockStore) Save(ctx context.Context, prefs *models.Preferences) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, prefs)
	}
	return nil
}

func TestManager_CurrentDefaultsToBeijing(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemoryStore())
	current, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultLocation, current)
	assert.Equal(t, "北京", current.Name)
}

func TestManager_SetCurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	require.NoError(t, m.SetCurrent(ctx, shanghai))
	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, shanghai, current)

	err = m.SetCurrent(ctx, models.Location{Name: "Nowhere", Latitude: 91})
	assert.ErrorIs(t, err, models.ErrInvalidLatitude)

	current, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, shanghai, current, "invalid location must not replace the current one")
}

func TestManager_AddSaved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	saved, err := m.Saved(ctx)
	require.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Empty(t, saved)

	require.NoError(t, m.AddSaved(ctx, shanghai))
	require.NoError(t, m.AddSaved(ctx, guangzhou))
	require.NoError(t, m.AddSaved(ctx, qingdao))

	// re-adding by name moves the entry to the end with the new coordinates
	moved := shanghai
	moved.Latitude = 31.0
	require.NoError(t, m.AddSaved(ctx, moved))

	saved, err = m.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Location{guangzhou, qingdao, moved}, saved)

	err = m.AddSaved(ctx, models.Location{Latitude: 1, Longitude: 1})
	assert.Error(t, err)
}

func TestManager_RemoveSaved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewManager(NewMemoryStore())
	require.NoError(t, m.AddSaved(ctx, shanghai))
	require.NoError(t, m.AddSaved(ctx, guangzhou))

	require.NoError(t, m.RemoveSaved(ctx, shanghai.Name))
	saved, err := m.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Location{guangzhou}, saved)

	err = m.RemoveSaved(ctx, "Atlantis")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestManager_CurrentIndependentOfSaved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewManager(NewMemoryStore())
	require.NoError(t, m.SetCurrent(ctx, qingdao))
	require.NoError(t, m.AddSaved(ctx, qingdao))
	require.NoError(t, m.RemoveSaved(ctx, qingdao.Name))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, qingdao, current)
}

func TestManager_StoreErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loadErr := errors.New("load failed")
	saveErr := errors.New("save failed")

	failingLoad := NewManager(&mockStore{
		loadFunc: func(context.Context) (*models.Preferences, error) { return nil, loadErr },
	})
	_, err := failingLoad.Current(ctx)
	assert.ErrorIs(t, err, loadErr)
	assert.ErrorIs(t, failingLoad.AddSaved(ctx, shanghai), loadErr)

	failingSave := NewManager(&mockStore{
		saveFunc: func(context.Context, *models.Preferences) error { return saveErr },
	})
	assert.ErrorIs(t, failingSave.SetCurrent(ctx, shanghai), saveErr)
}

func TestManager_NilPreferencesFromStore(t *testing.T) {
	t.Parallel()

	m := NewManager(&mockStore{
		loadFunc: func(context.Context) (*models.Preferences, error) { return nil, nil },
	})

	current, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultLocation, current)

	saved, err := m.Saved(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, saved)
}

func TestPresets(t *testing.T) {
	t.Parallel()

	p := Presets()
	require.Len(t, p, 4)
	assert.Equal(t, DefaultLocation, p[0])
	assert.Equal(t, []string{"北京", "上海", "广州", "青岛"}, []string{p[0].Name, p[1].Name, p[2].Name, p[3].Name})

	for _, loc := range p {
		assert.NoError(t, loc.Validate())
	}

	p[0].Name = "changed"
	assert.Equal(t, "北京", Presets()[0].Name)
}

func TestMemoryStore_IsolatesCallers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	current := shanghai
	prefs := &models.Preferences{CurrentLocation: &current, SavedLocations: []models.Location{guangzhou}}
	require.NoError(t, s.Save(ctx, prefs))

	prefs.SavedLocations[0].Name = "mutated"
	prefs.CurrentLocation.Name = "mutated"

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "上海", loaded.CurrentLocation.Name)
	assert.Equal(t, "广州", loaded.SavedLocations[0].Name)
}
