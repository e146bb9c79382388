package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adjoint-io/uplink/address"
)

func TestHolderEqualityRequiresSameTagAndBytes(t *testing.T) {
	acc, err := address.FromBytes[address.AAccount](rawBytes(0x5))
	require.NoError(t, err)
	con, err := address.FromBytes[address.AContract](rawBytes(0x5))
	require.NoError(t, err)

	accountHolder := address.NewAccountHolder(acc)
	contractHolder := address.NewContractHolder(con)

	assert.NotEqual(t, accountHolder, contractHolder, "same bytes, different tag must not compare equal")

	sameAccountHolder := address.NewAccountHolder(acc)
	assert.Equal(t, accountHolder, sameAccountHolder)
}

func TestHolderUsableAsMapKey(t *testing.T) {
	acc, err := address.FromBytes[address.AAccount](rawBytes(0x6))
	require.NoError(t, err)
	h := address.NewAccountHolder(acc)

	m := map[address.Holder]int{h: 100}
	assert.Equal(t, 100, m[h])
}

func TestHolderProjectionsDiscardTag(t *testing.T) {
	con, err := address.FromBytes[address.AContract](rawBytes(0x8))
	require.NoError(t, err)
	h := address.NewContractHolder(con)

	viewedAsAccount := h.AsAccount()
	assert.Equal(t, h.Bytes(), viewedAsAccount.Bytes())
}

func TestHolderCompareOrdersByKindThenBytes(t *testing.T) {
	acc, err := address.FromBytes[address.AAccount](rawBytes(0x1))
	require.NoError(t, err)
	con, err := address.FromBytes[address.AContract](rawBytes(0x0))
	require.NoError(t, err)

	accountHolder := address.NewAccountHolder(acc)
	contractHolder := address.NewContractHolder(con)

	// account (kind 0) sorts before contract (kind 1) regardless of bytes.
	assert.Negative(t, accountHolder.Compare(contractHolder))
}

func TestHolderFromBytesRoundTrip(t *testing.T) {
	h, err := address.HolderFromBytes(address.HolderContract, rawBytes(0x3))
	require.NoError(t, err)
	assert.Equal(t, address.HolderContract, h.Kind())
	assert.Equal(t, rawBytes(0x3), h.Bytes())
}

func TestHolderFromBytesRejectsWrongLength(t *testing.T) {
	_, err := address.HolderFromBytes(address.HolderAccount, []byte{1, 2})
	assert.Error(t, err)
}
