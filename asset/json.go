package asset

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjoint-io/uplink/address"
)

// assetJSON mirrors Asset's field names for operator-facing JSON (§4.6).
// It exists only for genesis files, inspection, and save_asset/load_asset
// persistence — it is never hashed and never touches a consensus path.
type assetJSON struct {
	Name      string            `json:"name"`
	Issuer    string            `json:"issuer"`
	IssuedOn  time.Time         `json:"issuedOn"`
	Supply    Balance           `json:"supply"`
	Holdings  []holdingJSON     `json:"holdings"`
	Reference *Ref              `json:"reference,omitempty"`
	AssetType assetTypeJSON     `json:"assetType"`
	Address   string            `json:"address"`
	Metadata  map[string]string `json:"metadata"`
}

type holdingJSON struct {
	Holder  string  `json:"holder"`
	Balance Balance `json:"balance"`
}

// assetTypeJSON implements §4.6's `{"tag": ..., "contents": null | precision+1}`
// shape. The +1 in Contents is historical and preserved verbatim per §4.6
// and §9.
type assetTypeJSON struct {
	Tag      string `json:"tag"`
	Contents *int   `json:"contents"`
}

// MarshalJSON implements json.Marshaler for Asset (§4.6).
func (a Asset) MarshalJSON() ([]byte, error) {
	holdings := make([]holdingJSON, 0, len(a.Holdings))
	for _, holder := range a.Holdings.sortedHolders() {
		holdings = append(holdings, holdingJSON{
			Holder:  holder.AsAccount().String(),
			Balance: a.Holdings[holder],
		})
	}

	return json.Marshal(assetJSON{
		Name:      a.Name,
		Issuer:    a.Issuer.String(),
		IssuedOn:  a.IssuedOn,
		Supply:    a.Supply,
		Holdings:  holdings,
		Reference: a.Reference,
		AssetType: marshalAssetType(a.AssetType),
		Address:   a.Address.String(),
		Metadata:  a.Metadata,
	})
}

// UnmarshalJSON implements json.Unmarshaler for Asset (§4.6). Holder
// entries serialize as a raw address string with the Account/Contract tag
// erased, exactly as the binary codec does; decoding always reconstructs
// HolderAccount, never HolderContract — "this asymmetry is deliberate"
// (§4.1, §4.6, §9 open question 3).
func (a *Asset) UnmarshalJSON(data []byte) error {
	var raw assetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var issuer address.Address[address.AAccount]
	if err := issuer.UnmarshalText([]byte(raw.Issuer)); err != nil {
		return fmt.Errorf("asset: decoding issuer: %w", err)
	}

	var assetAddr address.Address[address.AAsset]
	if err := assetAddr.UnmarshalText([]byte(raw.Address)); err != nil {
		return fmt.Errorf("asset: decoding address: %w", err)
	}

	assetType, err := unmarshalAssetType(raw.AssetType)
	if err != nil {
		return err
	}

	holdings := make(Holdings, len(raw.Holdings))
	for _, entry := range raw.Holdings {
		holder, err := holderFromText(entry.Holder)
		if err != nil {
			return fmt.Errorf("asset: decoding holding: %w", err)
		}
		holdings.set(holder, entry.Balance)
	}

	*a = Asset{
		Name:      raw.Name,
		Issuer:    issuer,
		IssuedOn:  raw.IssuedOn,
		Supply:    raw.Supply,
		Holdings:  holdings,
		Reference: raw.Reference,
		AssetType: assetType,
		Address:   assetAddr,
		Metadata:  raw.Metadata,
	}
	return nil
}

// holderFromText decodes a Holder from its text address form (§4.6's
// "address string, variant lost"), always reconstructing HolderAccount —
// matching the binary decoder exactly, including for addresses that were
// originally a contract holder before encoding.
func holderFromText(text string) (address.Holder, error) {
	var account address.Address[address.AAccount]
	if err := account.UnmarshalText([]byte(text)); err != nil {
		return address.Holder{}, fmt.Errorf("asset: %q is not a valid account address: %w", text, err)
	}
	return address.NewAccountHolder(account), nil
}

func marshalAssetType(t AssetType) assetTypeJSON {
	switch t.Kind() {
	case Discrete:
		return assetTypeJSON{Tag: "Discrete"}
	case Binary:
		return assetTypeJSON{Tag: "Binary"}
	case Fractional:
		contents := int(t.Precision()) + 1
		return assetTypeJSON{Tag: "Fractional", Contents: &contents}
	default:
		panic("asset: unknown AssetType kind in MarshalJSON")
	}
}

func unmarshalAssetType(raw assetTypeJSON) (AssetType, error) {
	switch raw.Tag {
	case "Discrete":
		return NewDiscrete(), nil
	case "Binary":
		return NewBinary(), nil
	case "Fractional":
		if raw.Contents == nil {
			return AssetType{}, fmt.Errorf("asset: Fractional asset type missing contents")
		}
		precision := *raw.Contents - 1
		if precision < 0 || precision > 255 {
			return AssetType{}, fmt.Errorf("asset: Fractional contents %d out of range", *raw.Contents)
		}
		t, err := NewFractional(uint8(precision))
		if err != nil {
			return AssetType{}, err
		}
		return t, nil
	default:
		return AssetType{}, fmt.Errorf("asset: unrecognized asset type tag %q", raw.Tag)
	}
}
