package command

import (
	"context"

	"github.com/spolu/forge/cli"
	"github.com/spolu/forge/lib/out"
)

const (
	// CmdNmHelp is the command name.
	CmdNmHelp cli.CmdName = "help"
)

func init() {
	cli.Registrar[CmdNmHelp] = NewHelp
}

// Help displays help for the cli or one of its commands.
type Help struct {
	Command cli.Command
}

// NewHelp constructs and initializes the command.
func NewHelp() cli.Command {
	return &Help{}
}

// Name returns the command name.
func (c *Help) Name() cli.CmdName {
	return CmdNmHelp
}

// Help prints out the help message for the command.
func (c *Help) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli <command> [<args> ...]\n")
	out.Normf("\n")
	out.Normf("  Multi-asset token ledger: collections, asset types, balances.\n")
	out.Normf("\n")
	out.Normf("Commands:\n")

	out.Boldf("  help <command>\n")
	out.Normf("    Show help for a command.\n")
	out.Valuf("    forge-cli help mint\n")
	out.Normf("\n")

	out.Boldf("  login\n")
	out.Normf("    Log into a forge.\n")
	out.Valuf("    forge-cli login\n")
	out.Normf("\n")

	out.Boldf("  logout\n")
	out.Normf("    Log the current account out.\n")
	out.Valuf("    forge-cli logout\n")
	out.Normf("\n")

	out.Boldf("  create collection <royalty> <metadata>\n")
	out.Normf("    Create a new collection.\n")
	out.Valuf("    forge-cli create collection 25 https://example.com/punks.json\n")
	out.Normf("\n")

	out.Boldf("  create asset <collection> <max_supply> <metadata>\n")
	out.Normf("    Create a new asset type in a collection.\n")
	out.Valuf("    forge-cli create asset 1 1000 https://example.com/punk.json\n")
	out.Normf("\n")

	out.Boldf("  mint <asset> <amount> to <account>\n")
	out.Normf("    Mint units of an asset type.\n")
	out.Valuf("    forge-cli mint 1 10 to alice\n")
	out.Normf("\n")

	out.Boldf("  burn <asset> <amount>\n")
	out.Normf("    Burn units of an asset type from your balance.\n")
	out.Valuf("    forge-cli burn 1 5\n")
	out.Normf("\n")

	out.Boldf("  transfer <asset> <amount> to <account>\n")
	out.Normf("    Transfer units of an asset type to an account.\n")
	out.Valuf("    forge-cli transfer 1 5 to bob\n")
	out.Normf("\n")

	out.Boldf("  list <object> [<asset>]\n")
	out.Normf("    List balances or asset events.\n")
	out.Valuf("    forge-cli list balances\n")
	out.Valuf("    forge-cli list events 1\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Help) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) == 0 {
		c.Command = NewHelp()
	} else {
		if r, ok := cli.Registrar[cli.CmdName(args[0])]; !ok {
			c.Command = NewHelp()
		} else {
			c.Command = r()
		}
	}
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Help) Execute(
	ctx context.Context,
) error {
	c.Command.Help(ctx)
	return nil
}
