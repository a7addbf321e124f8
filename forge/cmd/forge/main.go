package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/spolu/forge/forge/app"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/logging"
)

var actFlag string

var envFlag string
var dsnFlag string
var hstFlag string
var prtFlag string
var sysFlag string
var idxFlag string

var usrFlag string
var pasFlag string

func init() {
	flag.StringVar(&actFlag, "action",
		"run", "The action to perform")

	flag.StringVar(&envFlag, "env",
		"qa", "The environment to run in (qa, production), default: qa")
	flag.StringVar(&dsnFlag, "db_dsn",
		"", "The DSN of the database to use, default: sqlite3://~/.forge/forge-$env.db")
	flag.StringVar(&hstFlag, "host",
		"", "The externally accessible host name of this forge")
	flag.StringVar(&prtFlag, "port",
		"", "The port to listen on, default: 2406")
	flag.StringVar(&sysFlag, "system_account",
		"", "The account name representing the service itself, default: forge")
	flag.StringVar(&idxFlag, "indexer",
		"", "The URL of the indexer to propagate events to, default: none")

	flag.StringVar(&usrFlag, "username",
		"foo", "The name of the account to upsert")
	flag.StringVar(&pasFlag, "password",
		"bar", "The password of the account to upsert")

	if fl := log.Flags(); fl&log.Ltime != 0 {
		log.SetFlags(fl | log.Lmicroseconds)
	}
}

func main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	ctx, err := app.BackgroundContextFromFlags(
		envFlag, dsnFlag, hstFlag, prtFlag, sysFlag, idxFlag,
	)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	validActions := []string{"run", "create_account"}
	switch actFlag {
	case "run":
		mux, err := app.Build(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		err = app.Serve(ctx, mux)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	case "create_account":
		createAccount(ctx, usrFlag, pasFlag)
	default:
		log.Fatalf("Invalid action `%s`, valid actions are: %s",
			actFlag, strings.Join(validActions, ", "))
	}
}

func createAccount(
	ctx context.Context,
	name string,
	password string,
) {
	account, err := model.LoadAccountByName(ctx, name)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	if account != nil {
		logging.Logf(ctx, "Updating account: %s", name)
		err := account.UpdatePassword(ctx, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		err = account.Save(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	} else {
		logging.Logf(ctx, "Creating account: %s", name)
		_, err := model.CreateAccount(ctx, name, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	}
}
