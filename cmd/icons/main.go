package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bcvrates/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := bootstrap.ProvideLogger("icons")
	gen := bootstrap.ProvideIconGenerator(bootstrap.ProvideConfig(), log)

	files, err := gen.Generate(ctx)
	if err != nil {
		log.Error("generate icons", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error generating icons: %v\n", err)
		stop()
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Printf("Generated %s\n", f)
	}
	fmt.Printf("Successfully generated %d icons\n", len(files))
}
