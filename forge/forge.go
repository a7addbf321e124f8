package forge

import (
	"context"

	"github.com/spolu/forge/lib/env"
)

const (
	// Version is the current version.
	Version string = "0.0.1"

	// EnvCfgHost is the env config key for the externally accessible host
	// of this forge.
	EnvCfgHost env.ConfigKey = "host"
	// EnvCfgPort is the env config key for the port the service listens on.
	EnvCfgPort env.ConfigKey = "port"
	// EnvCfgSystemAccount is the env config key for the name of the account
	// representing the service itself. It is recorded as the payer of
	// collection rows.
	EnvCfgSystemAccount env.ConfigKey = "system_account"
	// EnvCfgIndexerURL is the env config key for the URL events are
	// propagated to. If empty, events are stored but not propagated.
	EnvCfgIndexerURL env.ConfigKey = "indexer_url"
)

// DefaultPort is the default port the service runs on per environment.
var DefaultPort = map[env.Environment]string{
	env.Production: "2406",
	env.QA:         "2406",
}

// DefaultSystemAccount is the account name used for the service itself when
// none is configured.
const DefaultSystemAccount = "forge"

// GetHost returns the host of the currently running forge from the context.
func GetHost(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgHost]
}

// GetPort returns the port of the currently running forge from the context.
func GetPort(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgPort]
}

// GetSystemAccount returns the configured system account name from the
// context.
func GetSystemAccount(
	ctx context.Context,
) string {
	if a := env.Get(ctx).Config[EnvCfgSystemAccount]; a != "" {
		return a
	}
	return DefaultSystemAccount
}

// GetIndexerURL returns the configured indexer URL from the context, or the
// empty string if event propagation is disabled.
func GetIndexerURL(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgIndexerURL]
}
