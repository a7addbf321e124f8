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
	// CmdNmTransfer is the command name.
	CmdNmTransfer cli.CmdName = "transfer"
)

func init() {
	cli.Registrar[CmdNmTransfer] = NewTransfer
}

// Transfer transfers units of an asset type to another account.
type Transfer struct {
	AssetType int64
	To        string
	Amount    int64
	Memo      string
}

// NewTransfer constructs and initializes the command.
func NewTransfer() cli.Command {
	return &Transfer{}
}

// Name returns the command name.
func (c *Transfer) Name() cli.CmdName {
	return CmdNmTransfer
}

// Help prints out the help message for the command.
func (c *Transfer) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli transfer <asset> <amount> to <account> [<memo>]\n")
	out.Normf("\n")
	out.Normf("  Transfers units of an asset type from your balance to another account.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  forge-cli transfer 1 5 to bob\n")
	out.Valuf("  forge-cli transfer 1 5 to bob \"payment for services\"\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Transfer) Parse(
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
func (c *Transfer) Execute(
	ctx context.Context,
) error {
	events, err := TransferAsset(ctx, c.AssetType, c.To, c.Amount, c.Memo)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Transferred:\n")
	for _, e := range events {
		out.Normf("  ")
		out.Valuf("%s", e.Source)
		out.Normf(" -> ")
		out.Valuf("%s", e.Destination)
		out.Normf(" amount=")
		out.Valuf("%d", e.Amount)
		out.Normf(" balance=")
		out.Valuf("%d\n", e.SourceBalance)
	}

	return nil
}
