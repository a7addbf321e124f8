package main

import (
	"os"

	"github.com/spolu/forge/cli"
	"github.com/spolu/forge/lib/out"

	// force registration of commands
	_ "github.com/spolu/forge/cli/command"
)

func main() {
	c, err := cli.New(os.Args[1:])
	if err != nil {
		out.Errof("Error: %s\n", err.Error())
		os.Exit(1)
	}

	err = c.Run()
	if err != nil {
		out.Errof("Error: %s\n", err.Error())
		os.Exit(1)
	}
}
