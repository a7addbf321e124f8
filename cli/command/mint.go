// OWNER stan

package command

import (
	"context"
	"strconv"

	"github.com/spolu/forge/cli"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/out"
)

const (
	// CmdNmMint is the command name.
	CmdNmMint cli.CmdName = "mint"
)

func init() {
	cli.Registrar[CmdNmMint] = NewMint
}

// Mint mints units of an asset type to an account.
type Mint struct {
	AssetType int64
	To        string
	Amount    int64
	Memo      string
}

// NewMint constructs and initializes the command.
func NewMint() cli.Command {
	return &Mint{}
}

// Name returns the command name.
func (c *Mint) Name() cli.CmdName {
	return CmdNmMint
}

// Help prints out the help message for the command.
func (c *Mint) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli mint <asset> <amount> to <account> [<memo>]\n")
	out.Normf("\n")
	out.Normf("  Mints units of an asset type to an account. Only the author of the asset\n")
	out.Normf("  type's collection can mint.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  forge-cli mint 1 10 to alice\n")
	out.Valuf("  forge-cli mint 1 10 to bob \"welcome drop\"\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Mint) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) < 4 || args[2] != "to" {
		return errors.Trace(
			errors.Newf("Expected: <asset> <amount> to <account> [<memo>]."))
	}

	assetType, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.Trace(errors.Newf("Invalid asset: %s.", args[0]))
	}
	c.AssetType = assetType

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errors.Trace(errors.Newf("Invalid amount: %s.", args[1]))
	}
	c.Amount = amount

	c.To = args[3]

	if len(args) > 4 {
		c.Memo = args[4]
	}

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Mint) Execute(
	ctx context.Context,
) error {
	assetType, err := MintAsset(ctx, c.AssetType, c.To, c.Amount, c.Memo)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Minted:\n")
	out.Normf("  Asset  : ")
	out.Valuf("%d\n", assetType.ID)
	out.Normf("  Supply : ")
	out.Valuf("%d/%d\n", assetType.Supply, assetType.MaxSupply)

	return nil
}
