package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"bcvrates/internal/bootstrap"
	"bcvrates/internal/domain"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := bootstrap.ProvideLogger("updater")
	cfg := bootstrap.ProvideConfig()

	updater, cleanup, err := bootstrap.InitUpdater(ctx, cfg, log)
	defer cleanup()
	if err != nil {
		log.Error("init updater", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cleanup()
		os.Exit(1)
	}

	f, err := updater.Run(ctx)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error updating rates: %v\n", err)
		cleanup()
		os.Exit(1)
	}
	printSummary(f)
}

func printSummary(f domain.RatesFile) {
	fmt.Println("Rate updated successfully!")
	if f.Rates.BCV.Valid {
		fmt.Printf("BCV Rate: %s Bs/$\n", f.Rates.BCV.Decimal.String())
	} else {
		fmt.Println("BCV Rate: unavailable")
	}
	fmt.Printf("Source: %s\n", f.Rates.Source)
	fmt.Printf("Timestamp: %s\n", f.Timestamp)

	keys := make([]string, 0, len(f.AllRates))
	for k := range f.AllRates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("All rates:")
	for _, k := range keys {
		v := f.AllRates[k]
		if !v.Valid {
			fmt.Printf("  %s: null\n", k)
			continue
		}
		fmt.Printf("  %s: %s\n", k, v.Decimal.String())
	}
}
