package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/pennywise/internal/config"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/extract"
	"github.com/dvloznov/pennywise/internal/logger"
	"github.com/dvloznov/pennywise/internal/rates"
)

func main() {
	var (
		message      = flag.String("message", "", "Free-text transaction message to extract from")
		refDate      = flag.String("reference-date", "", "Reference date for relative dates (YYYY-MM-DD, defaults to today)")
		baseCurrency = flag.String("base-currency", "", "ISO currency code amounts are normalized to (defaults to BASE_CURRENCY)")
	)
	flag.Parse()

	log := logger.New()

	if *message == "" {
		log.Fatal().Msg("Error: --message is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ref := civil.DateOf(time.Now())
	if *refDate != "" {
		ref, err = civil.ParseDate(*refDate)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid --reference-date, expected YYYY-MM-DD")
		}
	}

	currency := cfg.BaseCurrency
	if *baseCurrency != "" {
		currency = *baseCurrency
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	completer, err := extract.NewGeminiCompleter(ctx, cfg.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	orchestrator := extract.New(completer, extract.WithRates(rates.NewStatic(cfg.Rates)))

	result, err := orchestrator.Extract(ctx, *message, ref, currency)
	if err != nil {
		var unparsable *extract.UnparsableOutputError
		switch {
		case errors.Is(err, extract.ErrCompletionUnavailable):
			log.Fatal().Err(err).Msg("Completion capability unavailable")
		case errors.As(err, &unparsable):
			log.Fatal().Str("raw", unparsable.Raw).Msg("Model output could not be parsed")
		default:
			log.Fatal().Err(err).Msg("Extraction failed")
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))

	if result.Status != domain.StatusComplete {
		os.Exit(2)
	}
}
