package command

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spolu/forge/cli"
	"github.com/spolu/forge/lib/env"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/out"
)

const (
	// CmdNmLogin is the command name.
	CmdNmLogin cli.CmdName = "login"
)

func init() {
	cli.Registrar[CmdNmLogin] = NewLogin
}

// Login logs into a forge and stores the credentials locally.
type Login struct {
}

// NewLogin constructs and initializes the command.
func NewLogin() cli.Command {
	return &Login{}
}

// Name returns the command name.
func (c *Login) Name() cli.CmdName {
	return CmdNmLogin
}

// Help prints out the help message for the command.
func (c *Login) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("forge-cli login\n")
	out.Normf("\n")
	out.Normf("  Logging in will store your credentials locally under:\n")
	out.Valuf("  ~/.forge/credentials-" + string(env.Get(ctx).Environment) + ".json\n")
	out.Normf("\n")
	out.Normf("  The forge URL is the base URL of the forge you have an account on (of the\n  form ")
	out.Valuf("https://forge.example.com")
	out.Normf("). Accounts are created by the forge operator\n")
	out.Normf("  (see the ")
	out.Boldf("create_account")
	out.Normf(" action of the forge binary).\n\n")
}

// Parse parses the arguments passed to the command.
func (c *Login) Parse(
	ctx context.Context,
	args []string,
) error {
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Login) Execute(
	ctx context.Context,
) error {
	reader := bufio.NewReader(os.Stdin)

	out.Normf("    Forge URL []: ")
	forge, _ := reader.ReadString('\n')

	out.Normf("    Account []: ")
	name, _ := reader.ReadString('\n')

	out.Normf("    Password []: ")
	password, _ := reader.ReadString('\n')

	out.Normf("Is the information correct? [Y/n]: ")
	confirmation, _ := reader.ReadString('\n')
	confirmation = strings.TrimSpace(confirmation)
	if confirmation != "" && confirmation != "Y" {
		return errors.Trace(errors.Newf("Login aborted by user."))
	}

	err := cli.Login(ctx,
		strings.TrimSpace(forge),
		strings.TrimSpace(name),
		strings.TrimSpace(password))
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
