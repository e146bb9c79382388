package asset

import (
	"time"

	"github.com/adjoint-io/uplink/address"
)

// Asset is the canonical ledger record for one fixed-supply asset (§4.1).
//
// Supply denotes the remaining *uncirculated* pool, not the original issued
// amount: supply + holdings.Circulation() is the constant supply_initial
// fixed at Create (§4.2, §9).
type Asset struct {
	Name       string
	Issuer     address.Address[address.AAccount]
	IssuedOn   time.Time
	Supply     Balance
	Holdings   Holdings
	Reference  *Ref
	AssetType  AssetType
	Address    address.Address[address.AAsset]
	Metadata   map[string]string
}

// Create builds an asset with empty holdings and Supply = supply. It
// performs no validation beyond supply's representable range — the caller
// must have already checked supply ≥ 0, that address was derived
// correctly, and that metadata is well-formed text (§4.2).
func Create(
	name string,
	issuer address.Address[address.AAccount],
	supply Balance,
	reference *Ref,
	assetType AssetType,
	issuedOn time.Time,
	addr address.Address[address.AAsset],
	metadata map[string]string,
) Asset {
	if !supply.InRange() {
		panic("asset: Create: supply out of representable range")
	}
	return Asset{
		Name:      name,
		Issuer:    issuer,
		IssuedOn:  issuedOn,
		Supply:    supply,
		Holdings:  Holdings{},
		Reference: reference,
		AssetType: assetType,
		Address:   addr,
		Metadata:  metadata,
	}
}

// Validate reports whether a's holdings do not exceed its recorded supply
// (§4.2). This is the weaker of the two checks §9 considers, since
// supply_initial is not part of the stored record — see DESIGN.md for why
// that choice was made.
func (a Asset) Validate() bool {
	return a.Holdings.Circulation() <= a.Supply
}

// Balance reports the given holder's balance, 0 if absent.
func (a Asset) Balance(holder address.Holder) Balance {
	return a.Holdings[holder]
}

// Circulation reports the total amount currently held, i.e.
// supply_initial - a.Supply (§4.2).
func (a Asset) Circulation() Balance {
	return a.Holdings.Circulation()
}

// Preallocate replaces a's holdings wholesale, without adjusting Supply
// (§4.2 step 2). It is valid only at genesis, immediately after Create;
// calling it on an asset that has already had transfers or circulation
// applied silently discards that history. Enforcing
// "Σ holdings ≤ supply_initial" is the genesis loader's responsibility,
// not this function's (§9).
func (a Asset) Preallocate(holdings Holdings) Asset {
	a.Holdings = holdings.Clone()
	return a
}

// CirculateSupply moves amount between a's uncirculated supply and
// holder's balance, per §4.2/§4.3's circulateSupply operation. amount may
// be negative to withdraw a holder's balance back into supply.
func (a Asset) CirculateSupply(holder address.Holder, amount Balance) (Asset, error) {
	newHoldings, newSupply, err := circulateSupply(a.Holdings, a.Supply, holder, amount)
	if err != nil {
		if insufficient, ok := err.(*InsufficientSupplyError); ok {
			insufficient.Asset = a.Address
		}
		return Asset{}, err
	}
	a.Holdings = newHoldings
	a.Supply = newSupply
	return a, nil
}

// TransferHoldings moves amount of a's units from from to to, leaving
// Supply untouched (§4.3).
func (a Asset) TransferHoldings(from, to address.Holder, amount Balance) (Asset, error) {
	newHoldings, err := transferHoldings(a.Holdings, from, to, amount)
	if err != nil {
		return Asset{}, err
	}
	a.Holdings = newHoldings
	return a, nil
}
