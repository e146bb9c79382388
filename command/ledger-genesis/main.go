// Package main implements ledger-genesis, an operator tool for rendering
// asset preallocation specifications into the genesis JSON files a node's
// network.preallocated directory expects (§6).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/asset"
	"github.com/adjoint-io/uplink/genesis"
)

var version = "zero" // set by the linker: go build -ldflags "-X main.version=M.N" ./...

func main() {
	app := cli.NewApp()
	app.Name = "ledger-genesis"
	app.Version = version
	app.HideVersion = true
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "write a single preallocated asset genesis file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "name, n", Usage: "*asset name `STRING`"},
				cli.StringFlag{Name: "issuer, i", Usage: "*issuer account address `ADDRESS`"},
				cli.Int64Flag{Name: "supply, s", Usage: "*supply_initial `AMOUNT`"},
				cli.StringFlag{Name: "type, t", Value: "discrete", Usage: " asset type: discrete|binary|fractional:N"},
				cli.StringFlag{Name: "out, o", Usage: "*output file `PATH`"},
			},
			Action: runCreate,
		},
		{
			Name:      "verify",
			Usage:     "load a directory of genesis files and report validation status",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dir, d", Usage: "*preallocation directory `PATH`"},
			},
			Action: runVerify,
		},
		{
			Name:  "version",
			Usage: "display ledger-genesis version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func runCreate(c *cli.Context) error {
	name := c.String("name")
	issuerText := c.String("issuer")
	supply := c.Int64("supply")
	out := c.String("out")

	if name == "" || issuerText == "" || out == "" {
		return fmt.Errorf("name, issuer and out are required")
	}

	var issuer address.Address[address.AAccount]
	if err := issuer.UnmarshalText([]byte(issuerText)); err != nil {
		return fmt.Errorf("issuer: %w", err)
	}

	assetType, err := parseAssetType(c.String("type"))
	if err != nil {
		return err
	}

	assetAddr := address.Derive[address.AAsset](append(append([]byte{}, issuer.Bytes()...), []byte(name)...))

	a := asset.Create(
		name,
		issuer,
		asset.Balance(supply),
		nil,
		assetType,
		time.Now().UTC(),
		assetAddr,
		map[string]string{},
	)

	if err := asset.SaveFile(a, out); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "wrote %s: address %s\n", out, assetAddr)
	return nil
}

func runVerify(c *cli.Context) error {
	dir := c.String("dir")
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	assets, err := genesis.LoadPreallocated(dir)
	if err != nil {
		return err
	}

	for _, a := range assets {
		fmt.Fprintf(c.App.Writer, "%-20s supply=%-12s circulation=%-12s address=%s\n",
			a.Name, asset.Display(a.AssetType, a.Supply), asset.Display(a.AssetType, a.Circulation()), a.Address)
	}
	fmt.Fprintf(c.App.Writer, "%d asset(s) verified\n", len(assets))
	return nil
}

func parseAssetType(s string) (asset.AssetType, error) {
	switch {
	case s == "discrete":
		return asset.NewDiscrete(), nil
	case s == "binary":
		return asset.NewBinary(), nil
	case len(s) > len("fractional:") && s[:len("fractional:")] == "fractional:":
		var precision uint8
		if _, err := fmt.Sscanf(s[len("fractional:"):], "%d", &precision); err != nil {
			return asset.AssetType{}, fmt.Errorf("asset type: %w", err)
		}
		return asset.NewFractional(precision)
	default:
		return asset.AssetType{}, fmt.Errorf("asset type: unrecognized %q", s)
	}
}
