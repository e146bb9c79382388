// SPDX-License-Identifier: ISC

// Package assets exposes the ledger's asset operations over RPC: create,
// circulate, transfer, get, and list. It is the policy boundary that maps
// asset.Error values to transaction-rejection responses (§6, "Error
// surface to collaborators").
package assets

import (
	"encoding/binary"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/adjoint-io/uplink/account"
	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/asset"
	"github.com/adjoint-io/uplink/fault"
	"github.com/adjoint-io/uplink/ledgerstore"
)

const (
	maximumAssets = 100
	rateLimit     = 200
	rateBurst     = 100
)

// Assets is the RPC receiver for all asset-mutating and asset-reading
// calls.
type Assets struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   *ledgerstore.Store
	Cache   *asset.Cache
}

// New constructs an Assets RPC handler backed by store and cache.
func New(store *ledgerstore.Store, cache *asset.Cache) *Assets {
	return &Assets{
		Log:     logger.New("rpc-assets"),
		Limiter: rate.NewLimiter(rateLimit, rateBurst),
		Store:   store,
		Cache:   cache,
	}
}

func (a *Assets) limit(count int) error {
	if count <= 0 || count > maximumAssets {
		return fault.ErrTooManyItems
	}
	r := a.Limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.ErrRateLimited
	}
	time.Sleep(r.Delay())
	return nil
}

// CreateArguments are the parameters for a Create RPC call.
type CreateArguments struct {
	Name      string
	Issuer    address.Address[address.AAccount]
	Supply    asset.Balance
	Reference *asset.Ref
	AssetType asset.AssetType
	Metadata  map[string]string
}

// CreateReply is the result of a successful Create RPC call.
type CreateReply struct {
	Address   address.Address[address.AAsset]
	Duplicate bool
}

// Create registers a new asset, deriving its address from the issuer and
// name, and caches it pending confirmation. Repeating a Create while the
// asset is still pending reuses the pending entry's issue time, so an
// identical resubmission is reported as Duplicate.
func (a *Assets) Create(args *CreateArguments, reply *CreateReply) error {
	if err := a.limit(1); err != nil {
		return err
	}

	seed := append(append([]byte{}, args.Issuer.Bytes()...), []byte(args.Name)...)
	assetAddr := address.Derive[address.AAsset](seed)

	if a.Store.Has(assetAddr.Bytes()) {
		reply.Address = assetAddr
		reply.Duplicate = true
		return nil
	}

	issuedOn := time.Now().UTC()
	if pending := a.Cache.Get(assetAddr); pending != nil {
		if earlier, err := pending.Unpack(); err == nil {
			issuedOn = earlier.IssuedOn
		}
	}

	newAsset := asset.Create(
		args.Name,
		args.Issuer,
		args.Supply,
		args.Reference,
		args.AssetType,
		issuedOn,
		assetAddr,
		args.Metadata,
	)

	packed, err := a.Cache.Put(newAsset)
	if err != nil {
		return err
	}

	reply.Address = assetAddr
	reply.Duplicate = packed == nil
	return nil
}

// CirculateArguments are the parameters for a Circulate RPC call. Caller
// and Signature authenticate the request: circulating supply is a policy
// the issuer alone may exercise (§7's "policy hook... enforced by the
// caller using this variant"), so the caller must sign the call and that
// signer must resolve to the asset's recorded issuer.
type CirculateArguments struct {
	Asset     address.Address[address.AAsset]
	Holder    address.Holder
	Amount    asset.Balance
	Caller    account.Key
	Signature account.Signature
}

// CirculateMessage is the byte sequence a Circulate caller must sign — the
// call's fields in declared order, signature itself excluded. Callers
// build this themselves to produce CirculateArguments.Signature.
func CirculateMessage(assetAddr address.Address[address.AAsset], holder address.Holder, amount asset.Balance) []byte {
	message := append([]byte{}, assetAddr.Bytes()...)
	message = append(message, holder.Bytes()...)
	var amountBytes [8]byte
	binary.BigEndian.PutUint64(amountBytes[:], uint64(amount))
	return append(message, amountBytes[:]...)
}

// Circulate moves amount between an asset's uncirculated supply and a
// holder's balance. Only the asset's issuer, authenticated by Caller's
// signature over the call, may do so.
func (a *Assets) Circulate(args *CirculateArguments, reply *asset.Asset) error {
	if err := a.limit(1); err != nil {
		return err
	}

	if err := args.Caller.CheckSignature(CirculateMessage(args.Asset, args.Holder, args.Amount), args.Signature); err != nil {
		return err
	}

	current, found, err := a.load(args.Asset)
	if err != nil {
		return err
	}
	if !found {
		return fault.ErrAssetNotFound
	}

	caller := address.NewAccountHolder(args.Caller.AccountAddress())
	issuer := address.NewAccountHolder(current.Issuer)
	if caller != issuer {
		return &asset.CirculatorIsNotIssuerError{Holder: caller, Asset: current.Address}
	}

	updated, err := current.CirculateSupply(args.Holder, args.Amount)
	if err != nil {
		return err
	}

	if err := asset.SaveToStore(a.Store, updated); err != nil {
		return err
	}
	*reply = updated
	return nil
}

// TransferArguments are the parameters for a Transfer RPC call.
type TransferArguments struct {
	Asset  address.Address[address.AAsset]
	From   address.Holder
	To     address.Holder
	Amount asset.Balance
}

// Transfer moves amount of an asset's units from From to To.
func (a *Assets) Transfer(args *TransferArguments, reply *asset.Asset) error {
	if err := a.limit(1); err != nil {
		return err
	}

	current, found, err := a.load(args.Asset)
	if err != nil {
		return err
	}
	if !found {
		return fault.ErrAssetNotFound
	}

	updated, err := current.TransferHoldings(args.From, args.To, args.Amount)
	if err != nil {
		return err
	}

	if err := asset.SaveToStore(a.Store, updated); err != nil {
		return err
	}
	*reply = updated
	return nil
}

// GetArguments names the assets to fetch.
type GetArguments struct {
	Addresses []address.Address[address.AAsset]
}

// GetReply carries the fetched assets, in request order; an entry is the
// zero Asset if its address was not found.
type GetReply struct {
	Assets []asset.Asset
	Found  []bool
}

// Get fetches each requested asset from the ledger store, falling back to
// the pending cache for assets not yet confirmed.
func (a *Assets) Get(args *GetArguments, reply *GetReply) error {
	if err := a.limit(len(args.Addresses)); err != nil {
		return err
	}

	reply.Assets = make([]asset.Asset, len(args.Addresses))
	reply.Found = make([]bool, len(args.Addresses))

	for i, addr := range args.Addresses {
		got, found, err := a.load(addr)
		if err != nil {
			return err
		}
		reply.Assets[i] = got
		reply.Found[i] = found
	}
	return nil
}

// ListReply carries every asset currently committed to the ledger store.
type ListReply struct {
	Assets []asset.Asset
}

// List enumerates every committed asset in address order.
func (a *Assets) List(_ *struct{}, reply *ListReply) error {
	var assets []asset.Asset
	err := a.Store.Iterate(func(e ledgerstore.Element) bool {
		decoded, err := asset.Packed(e.Value).Unpack()
		if err != nil {
			a.Log.Errorf("rpc-assets: list: skipping undecodable record: %s", err)
			return true
		}
		assets = append(assets, decoded)
		return true
	})
	if err != nil {
		return err
	}
	reply.Assets = assets
	return nil
}

// load fetches addr from the committed store first, then the pending
// cache — a committed record supersedes the registration it started as,
// and a registered-but-unconfirmed asset must still be visible to
// Get/Circulate/Transfer callers.
func (a *Assets) load(addr address.Address[address.AAsset]) (asset.Asset, bool, error) {
	stored, found, err := asset.LoadFromStore(a.Store, addr)
	if err != nil || found {
		return stored, found, err
	}
	if cached := a.Cache.Get(addr); cached != nil {
		decoded, err := cached.Unpack()
		if err != nil {
			return asset.Asset{}, false, err
		}
		return decoded, true, nil
	}
	return asset.Asset{}, false, nil
}
