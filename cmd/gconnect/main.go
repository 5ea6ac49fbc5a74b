package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/gconnect/internal/adapters/driving/cli"
	"github.com/custodia-labs/gconnect/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)
	cli.SetBuilder(build)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// build wires the application once the --config flag is known.
func build(configDir string) (*cli.Services, error) {
	a, err := app.New(app.Options{ConfigDir: configDir, Out: os.Stderr})
	if err != nil {
		return nil, err
	}
	return &cli.Services{
		Connector:   a.Connector,
		Credentials: a.Credentials,
		Login:       a.Login,
		Settings:    a.Settings,
		Watch:       a.Watch,
		Close:       a.Close,
	}, nil
}
