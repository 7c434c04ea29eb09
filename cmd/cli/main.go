package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/cli"
	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, rest, err := config.LoadConfig()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			err = nil
		}
		return err
	}

	c, err := client.NewGRPCClient(cfg.ServerAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	app := cli.NewApp(c, os.Stdin, os.Stdout, cfg.Token, cfg.Timeout)
	if len(rest) == 0 {
		app.Usage()
		return nil
	}
	return app.Run(context.Background(), rest[0])
}
