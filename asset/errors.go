package asset

import (
	"fmt"

	"github.com/adjoint-io/uplink/address"
)

// Error is the closed sum of failures the pure holdings algebra can
// return (§7). Unlike fault's bare string constants, every variant here
// carries the payload a caller needs to react (the holder involved, the
// balance observed) — a plain GenericError string cannot do that, so this
// taxonomy lives beside the algebra that raises it rather than in fault.
//
// Decode failures (malformed bytes, unknown Ref) are a separate,
// string-only tier — see DecodeError in unpack.go — because they occur
// outside the pure algebra and carry no such payload (§7).
type Error interface {
	error
	// isAssetError is unexported so Error is a closed interface: only the
	// variants declared in this file may implement it.
	isAssetError()
}

// InsufficientHoldingsError is returned when a transfer's amount exceeds
// the source holder's balance.
type InsufficientHoldingsError struct {
	Holder  address.Holder
	Balance Balance
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("asset: holder %s has insufficient holdings: balance %d", e.Holder, e.Balance)
}
func (*InsufficientHoldingsError) isAssetError() {}

// InsufficientSupplyError is returned when a circulation would drive the
// asset's remaining supply negative.
type InsufficientSupplyError struct {
	Asset  address.Address[address.AAsset]
	Supply Balance
}

func (e *InsufficientSupplyError) Error() string {
	return fmt.Sprintf("asset: %s has insufficient supply: %d remaining", e.Asset, e.Supply)
}
func (*InsufficientSupplyError) isAssetError() {}

// CirculatorIsNotIssuerError exists for callers that enforce "only the
// issuer may circulate supply" as policy. The pure algebra in this package
// never raises it — it is not an invariant of circulateSupply/
// transferHoldings — but it is part of the closed taxonomy so policy
// layers (e.g. rpc/assets) have a typed way to report that rejection
// (§7).
type CirculatorIsNotIssuerError struct {
	Holder address.Holder
	Asset  address.Address[address.AAsset]
}

func (e *CirculatorIsNotIssuerError) Error() string {
	return fmt.Sprintf("asset: %s is not the issuer of %s", e.Holder, e.Asset)
}
func (*CirculatorIsNotIssuerError) isAssetError() {}

// SelfTransferError is returned when a transfer's from and to holders are
// identical.
type SelfTransferError struct {
	Holder address.Holder
}

func (e *SelfTransferError) Error() string {
	return fmt.Sprintf("asset: cannot transfer to self: %s", e.Holder)
}
func (*SelfTransferError) isAssetError() {}

// HolderDoesNotExistError is returned when a transfer's source holder has
// no holdings entry at all.
type HolderDoesNotExistError struct {
	Holder address.Holder
}

func (e *HolderDoesNotExistError) Error() string {
	return fmt.Sprintf("asset: holder does not exist: %s", e.Holder)
}
func (*HolderDoesNotExistError) isAssetError() {}
