package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/adjoint-io/uplink/genesis"
)

func TestMain(m *testing.M) {
	_ = logger.Initialise(logger.Configuration{
		Directory: os.TempDir(),
		File:      "uplink-ledger-genesis-test.log",
		Size:      50000,
		Count:     10,
	})
	code := m.Run()
	logger.Finalise()
	os.Exit(code)
}

func contextWith(t *testing.T, fs *flag.FlagSet) *cli.Context {
	app := cli.NewApp()
	app.Writer = &bytes.Buffer{}
	return cli.NewContext(app, fs, nil)
}

func TestParseAssetType(t *testing.T) {
	discrete, err := parseAssetType("discrete")
	require.NoError(t, err)
	assert.Equal(t, "Discrete", discrete.String())

	binary, err := parseAssetType("binary")
	require.NoError(t, err)
	assert.Equal(t, "Binary", binary.String())

	fractional, err := parseAssetType("fractional:4")
	require.NoError(t, err)
	assert.Equal(t, "Fractional(4)", fractional.String())

	_, err = parseAssetType("bogus")
	assert.Error(t, err)
}

func TestRunCreateRejectsInvalidIssuer(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "gold.json")

	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.String("name", "Gold", "")
	fs.String("issuer", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "")
	fs.Int64("supply", 1000, "")
	fs.String("type", "discrete", "")
	fs.String("out", out, "")

	c := contextWith(t, fs)
	err := runCreate(c)
	require.Error(t, err) // placeholder issuer text above is not a valid address encoding
	_ = c
}

func TestRunVerifyReportsMissingDir(t *testing.T) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.String("dir", "", "")
	c := contextWith(t, fs)

	err := runVerify(c)
	assert.Error(t, err)
}

func TestRunVerifyReadsFixtureDirectory(t *testing.T) {
	dir := t.TempDir()
	assets, err := genesis.LoadPreallocated(dir)
	require.NoError(t, err)
	assert.Empty(t, assets)

	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.String("dir", dir, "")
	c := contextWith(t, fs)
	require.NoError(t, runVerify(c))
}
