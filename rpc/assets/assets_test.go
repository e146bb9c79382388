package assets_test

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/adjoint-io/uplink/account"
	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/asset"
	"github.com/adjoint-io/uplink/ledgerstore"
	rpcassets "github.com/adjoint-io/uplink/rpc/assets"
)

func TestMain(m *testing.M) {
	_ = logger.Initialise(logger.Configuration{
		Directory: os.TempDir(),
		File:      "uplink-rpc-assets-test.log",
		Size:      50000,
		Count:     10,
	})
	code := m.Run()
	logger.Finalise()
	os.Exit(code)
}

// signer bundles an ED25519 keypair with the account.Key wrapper callers
// sign requests against.
type signer struct {
	key     account.Key
	private ed25519.PrivateKey
}

func newSigner(t *testing.T) signer {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := account.NewKey(public)
	require.NoError(t, err)
	return signer{key: key, private: private}
}

func (s signer) sign(message []byte) account.Signature {
	return account.Signature(ed25519.Sign(s.private, message))
}

func openStore(t *testing.T) *ledgerstore.Store {
	store, err := ledgerstore.Open(filepath.Join(t.TempDir(), "ledger.leveldb"), false)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func fixedAddress(fill byte) address.Address[address.AAccount] {
	raw := make([]byte, address.Length)
	for i := range raw {
		raw[i] = fill
	}
	a, err := address.FromBytes[address.AAccount](raw)
	if err != nil {
		panic(err)
	}
	return a
}

func TestCreateThenGet(t *testing.T) {
	store := openStore(t)
	handler := rpcassets.New(store, asset.NewCache())

	issuer := fixedAddress(0x01)

	var createReply rpcassets.CreateReply
	err := handler.Create(&rpcassets.CreateArguments{
		Name:      "Widgets",
		Issuer:    issuer,
		Supply:    1000,
		AssetType: asset.NewDiscrete(),
		Metadata:  map[string]string{},
	}, &createReply)
	require.NoError(t, err)
	assert.False(t, createReply.Duplicate)

	var getReply rpcassets.GetReply
	err = handler.Get(&rpcassets.GetArguments{Addresses: []address.Address[address.AAsset]{createReply.Address}}, &getReply)
	require.NoError(t, err)
	require.Len(t, getReply.Assets, 1)
	assert.True(t, getReply.Found[0])
	assert.Equal(t, "Widgets", getReply.Assets[0].Name)
}

func TestCreateIsIdempotent(t *testing.T) {
	store := openStore(t)
	handler := rpcassets.New(store, asset.NewCache())
	issuer := fixedAddress(0x02)

	args := &rpcassets.CreateArguments{
		Name:      "Bonds",
		Issuer:    issuer,
		Supply:    500,
		AssetType: asset.NewDiscrete(),
		Metadata:  map[string]string{},
	}

	var first, second rpcassets.CreateReply
	require.NoError(t, handler.Create(args, &first))
	require.NoError(t, handler.Create(args, &second))

	assert.Equal(t, first.Address, second.Address)
	assert.True(t, second.Duplicate)
}

func TestCirculateThenTransfer(t *testing.T) {
	store := openStore(t)
	handler := rpcassets.New(store, asset.NewCache())
	issuer := newSigner(t)

	var created rpcassets.CreateReply
	require.NoError(t, handler.Create(&rpcassets.CreateArguments{
		Name:      "Shares",
		Issuer:    issuer.key.AccountAddress(),
		Supply:    1000,
		AssetType: asset.NewDiscrete(),
		Metadata:  map[string]string{},
	}, &created))

	alice := address.NewAccountHolder(fixedAddress(0x10))
	bob := address.NewAccountHolder(fixedAddress(0x11))

	message := rpcassets.CirculateMessage(created.Address, alice, 300)

	var circulated asset.Asset
	require.NoError(t, handler.Circulate(&rpcassets.CirculateArguments{
		Asset:     created.Address,
		Holder:    alice,
		Amount:    300,
		Caller:    issuer.key,
		Signature: issuer.sign(message),
	}, &circulated))
	assert.Equal(t, asset.Balance(300), circulated.Balance(alice))
	assert.Equal(t, asset.Balance(700), circulated.Supply)

	var transferred asset.Asset
	require.NoError(t, handler.Transfer(&rpcassets.TransferArguments{
		Asset:  created.Address,
		From:   alice,
		To:     bob,
		Amount: 100,
	}, &transferred))
	assert.Equal(t, asset.Balance(200), transferred.Balance(alice))
	assert.Equal(t, asset.Balance(100), transferred.Balance(bob))
}

func TestCirculateRejectsCallerOtherThanIssuer(t *testing.T) {
	store := openStore(t)
	handler := rpcassets.New(store, asset.NewCache())
	issuer := newSigner(t)
	impostor := newSigner(t)

	var created rpcassets.CreateReply
	require.NoError(t, handler.Create(&rpcassets.CreateArguments{
		Name:      "Bonds",
		Issuer:    issuer.key.AccountAddress(),
		Supply:    1000,
		AssetType: asset.NewDiscrete(),
		Metadata:  map[string]string{},
	}, &created))

	alice := address.NewAccountHolder(fixedAddress(0x10))
	message := rpcassets.CirculateMessage(created.Address, alice, 300)

	var circulated asset.Asset
	err := handler.Circulate(&rpcassets.CirculateArguments{
		Asset:     created.Address,
		Holder:    alice,
		Amount:    300,
		Caller:    impostor.key,
		Signature: impostor.sign(message),
	}, &circulated)
	require.Error(t, err)

	var notIssuer *asset.CirculatorIsNotIssuerError
	assert.ErrorAs(t, err, &notIssuer)
}

func TestCirculateRejectsInvalidSignature(t *testing.T) {
	store := openStore(t)
	handler := rpcassets.New(store, asset.NewCache())
	issuer := newSigner(t)

	var created rpcassets.CreateReply
	require.NoError(t, handler.Create(&rpcassets.CreateArguments{
		Name:      "Notes",
		Issuer:    issuer.key.AccountAddress(),
		Supply:    1000,
		AssetType: asset.NewDiscrete(),
		Metadata:  map[string]string{},
	}, &created))

	alice := address.NewAccountHolder(fixedAddress(0x10))
	tamperedMessage := rpcassets.CirculateMessage(created.Address, alice, 301)

	var circulated asset.Asset
	err := handler.Circulate(&rpcassets.CirculateArguments{
		Asset:     created.Address,
		Holder:    alice,
		Amount:    300,
		Caller:    issuer.key,
		Signature: issuer.sign(tamperedMessage),
	}, &circulated)
	assert.Error(t, err)
}

func TestGetUnknownAssetNotFound(t *testing.T) {
	store := openStore(t)
	handler := rpcassets.New(store, asset.NewCache())

	unknown := fixedAddress(0x99)
	assetAddr, err := address.FromBytes[address.AAsset](unknown.Bytes())
	require.NoError(t, err)

	var reply rpcassets.GetReply
	err = handler.Get(&rpcassets.GetArguments{Addresses: []address.Address[address.AAsset]{assetAddr}}, &reply)
	require.NoError(t, err)
	assert.False(t, reply.Found[0])
}
