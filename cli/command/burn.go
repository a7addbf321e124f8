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
	// CmdNmBurn is the command name.
	CmdNmBurn cli.CmdName = "burn"
)

func init() {
	cli.Registrar[CmdNmBurn] = NewBurn
}

// Burn burns units of an asset type from the author's balance.
type Burn struct {
	AssetType int64
	Amount    int64
	Memo      string
}

// NewBurn constructs and initializes the command.
func NewBurn() cli.Command {
	return &Burn{}
}

// Name returns the command name.
func (c *Burn) Name() cli.CmdName {
	return CmdNmBurn
}

// Help prints out the help message for the command.
func (c *Burn) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli burn <asset> <amount> [<memo>]\n")
	out.Normf("\n")
	out.Normf("  Burns units of an asset type. Only the author of the asset type's\n")
	out.Normf("  collection can burn, and only from their own balance.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  forge-cli burn 1 5\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Burn) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) < 2 {
		return errors.Trace(
			errors.Newf("Expected: <asset> <amount> [<memo>]."))
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

	if len(args) > 2 {
		c.Memo = args[2]
	}

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Burn) Execute(
	ctx context.Context,
) error {
	assetType, err := BurnAsset(ctx, c.AssetType, c.Amount, c.Memo)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Burned:\n")
	out.Normf("  Asset  : ")
	out.Valuf("%d\n", assetType.ID)
	out.Normf("  Supply : ")
	out.Valuf("%d/%d\n", assetType.Supply, assetType.MaxSupply)

	return nil
}
