package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"trip-settlement/internal/config"
	"trip-settlement/internal/gateway"
	"trip-settlement/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Define command-line flags; environment-backed config supplies defaults
	expensesFile := flag.String("expenses", "", "Path to the trip expense JSON file (required)")
	baseCurrency := flag.String("base", cfg.BaseCurrency, "Base currency for balances and settlements")
	strictShares := flag.Bool("strict", cfg.StrictShares, "Fail when participant shares do not sum to the expense total")
	flag.Parse()

	if *expensesFile == "" {
		fmt.Println("Error: the -expenses flag is required.")
		flag.Usage()
		os.Exit(1)
	}

	// --- Dependency Injection (Wiring the application) ---
	// In a larger app, this might be done with a DI container.
	// Here, we do it manually, which is clear and simple.

	// 1. Create the repository (the outermost layer)
	jsonRepo := gateway.NewJSONExpenseRepository()

	// 2. Create the usecase and inject the repository (the core logic layer)
	var opts []usecase.Option
	if *strictShares {
		opts = append(opts, usecase.WithStrictShares())
	}
	settlementUseCase := usecase.NewSettlementUseCase(jsonRepo, opts...)

	// --- Execute the Usecase ---
	summary, err := settlementUseCase.Settle(context.Background(), *expensesFile, *baseCurrency)
	if err != nil {
		log.Fatalf("Settlement failed: %v", err)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON summary: %v", err)
	}

	fmt.Println(string(output))
}
