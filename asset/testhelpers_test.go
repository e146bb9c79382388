package asset_test

import (
	"time"

	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/asset"
)

func rawAddress(fill byte) []byte {
	raw := make([]byte, address.Length)
	for i := range raw {
		raw[i] = fill
	}
	return raw
}

func mustAccountAddress(fill byte) address.Address[address.AAccount] {
	a, err := address.FromBytes[address.AAccount](rawAddress(fill))
	if err != nil {
		panic(err)
	}
	return a
}

func mustAssetAddress(fill byte) address.Address[address.AAsset] {
	a, err := address.FromBytes[address.AAsset](rawAddress(fill))
	if err != nil {
		panic(err)
	}
	return a
}

func mustContractAddress(fill byte) address.Address[address.AContract] {
	a, err := address.FromBytes[address.AContract](rawAddress(fill))
	if err != nil {
		panic(err)
	}
	return a
}

func accountHolder(fill byte) address.Holder {
	return address.NewAccountHolder(mustAccountAddress(fill))
}

func contractHolder(fill byte) address.Holder {
	return address.NewContractHolder(mustContractAddress(fill))
}

func newTestAsset(supply asset.Balance) asset.Asset {
	return asset.Create(
		"Test Asset",
		mustAccountAddress(0xAA),
		supply,
		nil,
		asset.NewDiscrete(),
		time.Unix(1700000000, 0).UTC(),
		mustAssetAddress(0xFF),
		map[string]string{},
	)
}
