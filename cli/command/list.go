// OWNER stan

package command

import (
	"context"
	"strconv"
	"time"

	"github.com/spolu/forge/cli"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/out"
)

const (
	// CmdNmList is the command name.
	CmdNmList cli.CmdName = "list"
)

func init() {
	cli.Registrar[CmdNmList] = NewList
}

// List lists balances of the current account or events of an asset type.
type List struct {
	Object    string
	AssetType int64
}

// NewList constructs and initializes the command.
func NewList() cli.Command {
	return &List{}
}

// Name returns the command name.
func (c *List) Name() cli.CmdName {
	return CmdNmList
}

// Help prints out the help message for the command.
func (c *List) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli list <object> [<asset>]\n")
	out.Normf("\n")
	out.Normf("  Lists balances of the current account or events of an asset type.\n")
	out.Normf("\n")
	out.Normf("Objects:\n")
	out.Boldf("  balances\n")
	out.Valuf("    forge-cli list balances\n")
	out.Normf("\n")
	out.Boldf("  events <asset>\n")
	out.Valuf("    forge-cli list events 1\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *List) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) == 0 {
		return errors.Trace(
			errors.Newf("Expected object (`balances` or `events`)."))
	}
	c.Object, args = args[0], args[1:]

	switch c.Object {
	case "balances":
	case "events":
		if len(args) != 1 {
			return errors.Trace(errors.Newf("Expected asset."))
		}
		assetType, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Trace(errors.Newf("Invalid asset: %s.", args[0]))
		}
		c.AssetType = assetType
	default:
		return errors.Trace(errors.Newf("Invalid object: %s.", c.Object))
	}

	return nil
}

// Execute the command or return a human-friendly error.
func (c *List) Execute(
	ctx context.Context,
) error {
	switch c.Object {
	case "balances":
		balances, err := ListBalances(ctx)
		if err != nil {
			return errors.Trace(err)
		}
		out.Boldf("Balances:\n")
		if len(balances) == 0 {
			out.Normf("  (none)\n")
		}
		for _, b := range balances {
			out.Normf("  asset=")
			out.Valuf("%d", b.AssetType)
			out.Normf(" quantity=")
			out.Valuf("%d", b.Quantity)
			out.Normf(" payer=")
			out.Valuf("%s\n", b.Payer)
		}
	case "events":
		events, err := ListAssetEvents(ctx, c.AssetType)
		if err != nil {
			return errors.Trace(err)
		}
		out.Boldf("Events:\n")
		if len(events) == 0 {
			out.Normf("  (none)\n")
		}
		for _, e := range events {
			created := time.Unix(0, e.Created*1000*1000)
			out.Normf("  [%s] ", created.Format(time.RFC3339))
			out.Valuf("%s", e.Kind)
			if e.Kind == "balance_changed" {
				source := e.Source
				if source == "" {
					source = "(system)"
				}
				destination := e.Destination
				if destination == "" {
					destination = "(system)"
				}
				out.Normf(" %s -> %s amount=", source, destination)
				out.Valuf("%d", e.Amount)
				if e.Memo != "" {
					out.Normf(" memo=%q", e.Memo)
				}
			}
			out.Normf("\n")
		}
	}

	return nil
}
