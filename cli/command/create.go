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
	// CmdNmCreate is the command name.
	CmdNmCreate cli.CmdName = "create"
)

func init() {
	cli.Registrar[CmdNmCreate] = NewCreate
}

// Create creates a collection or an asset type.
type Create struct {
	Object string

	Royalty  int64
	Metadata string

	Collection int64
	MaxSupply  int64
}

// NewCreate constructs and initializes the command.
func NewCreate() cli.Command {
	return &Create{}
}

// Name returns the command name.
func (c *Create) Name() cli.CmdName {
	return CmdNmCreate
}

// Help prints out the help message for the command.
func (c *Create) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli create <object> [<args> ...]\n")
	out.Normf("\n")
	out.Normf("  Creates a collection or an asset type.\n")
	out.Normf("\n")
	out.Normf("Objects:\n")
	out.Boldf("  collection <royalty> <metadata>\n")
	out.Normf("    Royalty is expressed in basis points (0-1000).\n")
	out.Valuf("    forge-cli create collection 25 https://example.com/punks.json\n")
	out.Normf("\n")
	out.Boldf("  asset <collection> <max_supply> <metadata>\n")
	out.Normf("    Only the author of the collection can create asset types in it.\n")
	out.Valuf("    forge-cli create asset 1 1000 https://example.com/punk.json\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Create) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) == 0 {
		return errors.Trace(
			errors.Newf("Expected object (`collection` or `asset`)."))
	}
	c.Object, args = args[0], args[1:]

	switch c.Object {
	case "collection":
		if len(args) != 2 {
			return errors.Trace(
				errors.Newf("Expected royalty and metadata."))
		}
		royalty, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Trace(
				errors.Newf("Invalid royalty: %s.", args[0]))
		}
		c.Royalty = royalty
		c.Metadata = args[1]
	case "asset":
		if len(args) != 3 {
			return errors.Trace(
				errors.Newf("Expected collection, max_supply and metadata."))
		}
		collection, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Trace(
				errors.Newf("Invalid collection: %s.", args[0]))
		}
		c.Collection = collection
		maxSupply, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.Trace(
				errors.Newf("Invalid max_supply: %s.", args[1]))
		}
		c.MaxSupply = maxSupply
		c.Metadata = args[2]
	default:
		return errors.Trace(
			errors.Newf("Invalid object: %s.", c.Object))
	}

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Create) Execute(
	ctx context.Context,
) error {
	switch c.Object {
	case "collection":
		collection, err := CreateCollection(ctx, c.Royalty, c.Metadata)
		if err != nil {
			return errors.Trace(err)
		}
		out.Boldf("Collection created:\n")
		out.Normf("  ID       : ")
		out.Valuf("%d\n", collection.ID)
		out.Normf("  Author   : ")
		out.Valuf("%s\n", collection.Author)
		out.Normf("  Royalty  : ")
		out.Valuf("%d\n", collection.Royalty)
		out.Normf("  Metadata : ")
		out.Valuf("%s\n", collection.Metadata)
	case "asset":
		assetType, err := CreateAssetType(ctx,
			c.Collection, c.MaxSupply, c.Metadata)
		if err != nil {
			return errors.Trace(err)
		}
		out.Boldf("Asset type created:\n")
		out.Normf("  ID         : ")
		out.Valuf("%d\n", assetType.ID)
		out.Normf("  Collection : ")
		out.Valuf("%d\n", assetType.Collection)
		out.Normf("  Supply     : ")
		out.Valuf("%d/%d\n", assetType.Supply, assetType.MaxSupply)
		out.Normf("  Metadata   : ")
		out.Valuf("%s\n", assetType.Metadata)
	}

	return nil
}
