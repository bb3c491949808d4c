package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vadimbarashkov/resource-saver/internal/app"
	"github.com/vadimbarashkov/resource-saver/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	return app.Run(ctx, cfg)
}
