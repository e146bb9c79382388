package asset_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adjoint-io/uplink/asset"
)

func TestMain(m *testing.M) {
	_ = logger.Initialise(logger.Configuration{
		Directory: os.TempDir(),
		File:      "uplink-asset-test.log",
		Size:      50000,
		Count:     10,
	})
	code := m.Run()
	logger.Finalise()
	os.Exit(code)
}

func TestCachePutIsIdempotentForIdenticalAsset(t *testing.T) {
	c := asset.NewCache()
	a := newTestAsset(500)

	first, err := c.Put(a)
	require.NoError(t, err)
	assert.NotNil(t, first)

	second, err := c.Put(a)
	require.NoError(t, err)
	assert.Nil(t, second, "resubmitting the same pending asset returns nil, not a duplicate broadcast")
}

func TestCachePutRejectsConflictingResubmission(t *testing.T) {
	c := asset.NewCache()
	a := newTestAsset(500)
	_, err := c.Put(a)
	require.NoError(t, err)

	changed := a
	changed.Name = "a different name"
	_, err = c.Put(changed)
	assert.Error(t, err)
}

func TestCacheExistsAndDelete(t *testing.T) {
	c := asset.NewCache()
	a := newTestAsset(500)

	_, err := c.Put(a)
	require.NoError(t, err)
	assert.True(t, c.Exists(a.Address))

	c.Delete(a.Address)
	assert.False(t, c.Exists(a.Address))
}

func TestCacheSetVerifiedPanicsWithoutEntry(t *testing.T) {
	c := asset.NewCache()
	a := newTestAsset(500)

	assert.Panics(t, func() { c.SetVerified(a.Address) })
}

func TestCacheGetReturnsPackedBytes(t *testing.T) {
	c := asset.NewCache()
	a := newTestAsset(500)

	_, err := c.Put(a)
	require.NoError(t, err)

	assert.Equal(t, []byte(a.Pack()), []byte(c.Get(a.Address)))
}
