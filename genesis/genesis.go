// Package genesis loads the preallocated asset records a ledger starts
// from. Unlike the source this is adapted from, there is no proof-of-work
// block to assemble around them — a permissioned ledger has no genesis
// mining step — so only the preallocation half of genesis survives here
// (see DESIGN.md for the dropped SourceData/block-assembly machinery).
package genesis

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/adjoint-io/uplink/asset"
)

// log is opened on first use rather than at package load, since
// logger.Initialise (a node's main, or a test's fixture) may not have run
// yet when this package is imported.
var log = sync.OnceValue(func() *logger.L {
	return logger.New("genesis")
})

// LoadPreallocated reads every *.json file in dir — the directory named
// by a node's network.preallocated configuration (§6) — and returns the
// Assets they describe, sorted by filename for deterministic load order.
//
// Each loaded asset must satisfy Asset.Validate() (its holdings do not
// exceed its recorded supply); the first one that does not makes
// LoadPreallocated return an error. This is the genesis loader's check on
// preallocated holdings, which Asset.Preallocate itself does not make.
func LoadPreallocated(dir string) ([]asset.Asset, error) {
	log().Info("starting…")

	entries, err := os.ReadDir(dir)
	if err != nil {
		log().Errorf("read dir %s: %s", dir, err)
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	assets := make([]asset.Asset, 0, len(names))
	for _, name := range names {
		a, err := asset.LoadFile(filepath.Join(dir, name))
		if err != nil {
			log().Errorf("loading %s: %s", name, err)
			return nil, fmt.Errorf("genesis: loading %s: %w", name, err)
		}
		if !a.Validate() {
			log().Errorf("%s: holdings exceed supply", name)
			return nil, fmt.Errorf("genesis: %s: holdings exceed supply", name)
		}
		assets = append(assets, a)
	}
	log().Infof("loaded %d preallocated assets", len(assets))
	return assets, nil
}
