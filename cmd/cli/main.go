package main

import (
	"context"

	"github.com/dmitrijs2005/authd/internal/client/cli"
	"github.com/dmitrijs2005/authd/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
