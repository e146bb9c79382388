package asset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adjoint-io/uplink/asset"
)

func TestSaveLoadFileRoundTrip(t *testing.T) {
	a := newTestAsset(750).Preallocate(asset.Holdings{accountHolder(0x01): 250})

	path := filepath.Join(t.TempDir(), "asset.json")
	require.NoError(t, asset.SaveFile(a, path))

	loaded, err := asset.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, a.Name, loaded.Name)
	assert.Equal(t, a.Holdings, loaded.Holdings)
	assert.Equal(t, a.Supply, loaded.Supply)
}

type memoryStore struct {
	data map[string][]byte
}

func newMemoryStore() *memoryStore { return &memoryStore{data: map[string][]byte{}} }

func (m *memoryStore) Put(key, value []byte) error {
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) Get(key []byte) ([]byte, bool) {
	v, ok := m.data[string(key)]
	return v, ok
}

func (m *memoryStore) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func TestSaveLoadStoreRoundTrip(t *testing.T) {
	a := newTestAsset(750).Preallocate(asset.Holdings{accountHolder(0x01): 250})
	store := newMemoryStore()

	require.NoError(t, asset.SaveToStore(store, a))

	loaded, ok, err := asset.LoadFromStore(store, a.Address)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.Holdings, loaded.Holdings)
}

func TestLoadFromStoreMissingKey(t *testing.T) {
	store := newMemoryStore()
	_, ok, err := asset.LoadFromStore(store, mustAssetAddress(0x42))
	require.NoError(t, err)
	assert.False(t, ok)
}
