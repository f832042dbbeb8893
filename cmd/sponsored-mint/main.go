package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/urfave/cli/v2"

	"github.com/quantumauth-io/sponsored-mint/cmd/sponsored-mint/config"
	"github.com/quantumauth-io/sponsored-mint/internal/constants"
	"github.com/quantumauth-io/sponsored-mint/internal/sponsoredmint"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var passwordFlag = &cli.StringFlag{
	Name:    "password",
	Usage:   "keystore passphrase; prompted for when empty",
	EnvVars: []string{constants.KeystorePasswordEnv},
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal("failed to load .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	app.Name = constants.AppName
	app.Usage = "Mint an NFT through a gas-sponsored ERC-4337 user operation"
	app.Version = Version

	cli.VersionPrinter = func(c *cli.Context) {
		printVersion()
	}

	app.Flags = []cli.Flag{passwordFlag}
	app.Action = serve

	app.Commands = []*cli.Command{
		{
			Name:   "serve",
			Usage:  "Serve the mint page and local API",
			Flags:  []cli.Flag{passwordFlag},
			Action: serve,
		},
		{
			Name:  "balance",
			Usage: "Print the NFT balance of an address",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "address",
					Aliases:  []string{"a"},
					Usage:    "owner address",
					Required: true,
				},
			},
			Action: func(c *cli.Context) error {
				return sponsoredmint.Balance(c.Context, c.String("address"))
			},
		},
		{
			Name:  "mint",
			Usage: "Connect the keystore wallet, mint once and wait for confirmation",
			Flags: []cli.Flag{passwordFlag},
			Action: func(c *cli.Context) error {
				return sponsoredmint.MintOnce(c.Context, c.String(passwordFlag.Name))
			},
		},
		{
			Name:  "version",
			Usage: "Show version",
			Action: func(c *cli.Context) error {
				printVersion()
				return nil
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal("sponsored-mint failed", "error", err)
	}
}

func serve(c *cli.Context) error {
	return sponsoredmint.Run(c.Context, sponsoredmint.BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}, c.String(passwordFlag.Name))
}

func printVersion() {
	fmt.Printf("%s version: %s\n", constants.AppName, Version)
	fmt.Printf("Git Commit: %s\n", Commit)
	fmt.Printf("Build Date: %s\n", BuildDate)
}
