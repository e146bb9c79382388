package asset

import (
	"encoding/json"
	"os"

	"github.com/adjoint-io/uplink/address"
)

// SaveFile pretty-prints a to path as UTF-8 JSON (§6, "JSON file form"):
// the format genesis preallocation directories and operator tooling both
// read and write.
func SaveFile(a Asset, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		assetLog().Errorf("save file: %s: %s", path, err)
		return err
	}
	assetLog().Debugf("save file: %s", path)
	return nil
}

// LoadFile reads back an Asset written by SaveFile.
func LoadFile(path string) (Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		assetLog().Errorf("load file: %s: %s", path, err)
		return Asset{}, err
	}
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		assetLog().Errorf("load file: %s: invalid json: %s", path, err)
		return Asset{}, err
	}
	return a, nil
}

// Store is the persistent-store boundary an Asset needs to be saved to or
// loaded from the ledger's key-value backend, keyed by address bytes and
// valued by the binary encoding (§6, "Persistent store keys"). ledgerstore.
// Store satisfies this.
type Store interface {
	Put(key, value []byte) error
	Get(key []byte) ([]byte, bool)
	Delete(key []byte) error
}

// SaveToStore writes a's binary encoding into store under its address.
func SaveToStore(store Store, a Asset) error {
	if err := store.Put(a.Address.Bytes(), a.Pack()); err != nil {
		assetLog().Errorf("save to store: %s: %s", a.Address, err)
		return err
	}
	return nil
}

// LoadFromStore retrieves and decodes the Asset stored under addr's
// bytes. The second return value is false if no record exists.
func LoadFromStore(store Store, addr address.Address[address.AAsset]) (Asset, bool, error) {
	raw, ok := store.Get(addr.Bytes())
	if !ok {
		return Asset{}, false, nil
	}
	a, err := Packed(raw).Unpack()
	if err != nil {
		assetLog().Errorf("load from store: %s: %s", addr, err)
		return Asset{}, false, err
	}
	return a, true, nil
}
