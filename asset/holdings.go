package asset

import (
	"sort"

	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/fault"
)

// Holdings maps a holder to its balance of one asset (§3). A holder with a
// zero balance is never stored — CirculateSupply and TransferHoldings both
// prune zero entries on write, so len(holdings) is always the count of
// holders with strictly nonzero balance (§4.3).
type Holdings map[address.Holder]Balance

// Clone returns a shallow copy, since Balance is a value type.
func (h Holdings) Clone() Holdings {
	out := make(Holdings, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Circulation sums every balance currently on issue (§4.2's "Circulation"
// operation).
func (h Holdings) Circulation() Balance {
	var total Balance
	for _, b := range h {
		total += b
	}
	return total
}

// sortedHolders returns h's keys in Holder.Compare order, for deterministic
// iteration in the binary and JSON encoders.
func (h Holdings) sortedHolders() []address.Holder {
	out := make([]address.Holder, 0, len(h))
	for k := range h {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

func (h Holdings) set(holder address.Holder, balance Balance) {
	if balance == 0 {
		delete(h, holder)
		return
	}
	h[holder] = balance
}

// circulateSupply mints or burns amount against holder's balance and the
// asset's remaining supply (§4.3). amount may be negative, which burns.
//
// A negative amount with magnitude exceeding holder's current balance is a
// precondition violation the caller must not construct: holdings never go
// negative, so this panics via fault.Panicf rather than returning an
// error — the same "this must never happen" convention fault's log.go
// uses (§7).
func circulateSupply(holdings Holdings, supply Balance, holder address.Holder, amount Balance) (Holdings, Balance, error) {
	if supply < amount {
		return nil, 0, &InsufficientSupplyError{Supply: supply}
	}
	newSupply := supply - amount

	current := holdings[holder]
	newBalance := current + amount
	if newBalance < 0 {
		fault.Panicf("asset: circulateSupply would drive holder %s negative: %d + %d", holder, current, amount)
	}

	next := holdings.Clone()
	next.set(holder, newBalance)
	return next, newSupply, nil
}

// transferHoldings moves amount from from to to, leaving supply and every
// other holder's balance untouched (§4.3).
//
// from == to is rejected as SelfTransferError regardless of amount — the
// self-transfer check runs before any other validation, so even a zero
// transfer to oneself fails that way. For distinct parties, amount == 0 is
// a permitted no-op (the resulting holdings are returned unchanged,
// pruning still applied), and amount < 0 is rejected as
// InsufficientHoldingsError rather than accepted as a reverse transfer
// (§4.3's "implementations should explicitly reject amount < 0").
func transferHoldings(holdings Holdings, from, to address.Holder, amount Balance) (Holdings, error) {
	if from == to {
		return nil, &SelfTransferError{Holder: from}
	}

	fromBalance, exists := holdings[from]
	if !exists {
		return nil, &HolderDoesNotExistError{Holder: from}
	}
	if amount < 0 || amount > fromBalance {
		return nil, &InsufficientHoldingsError{Holder: from, Balance: fromBalance}
	}
	if amount == 0 {
		return holdings.Clone(), nil
	}

	next := holdings.Clone()
	next.set(from, fromBalance-amount)
	next.set(to, holdings[to]+amount)
	return next, nil
}
