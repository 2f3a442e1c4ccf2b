package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dvloznov/pennywise/internal/config"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/logger"
	"github.com/dvloznov/pennywise/internal/report"
	"github.com/dvloznov/pennywise/internal/reportstore"
)

func main() {
	var (
		input  = flag.String("input", "", "Path to a JSONL file of extracted transaction records")
		month  = flag.String("month", "", "Report month (YYYY-MM, defaults to the previous month)")
		outDir = flag.String("out", "reports", "Directory the PDF is written to")
		bucket = flag.String("bucket", "", "GCS bucket to upload the PDF to (defaults to REPORTS_BUCKET, empty disables upload)")
	)
	flag.Parse()

	log := logger.New()

	if *input == "" {
		log.Fatal().Msg("Error: --input is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	reportMonth := *month
	if reportMonth == "" {
		reportMonth = report.PreviousMonth(time.Now())
	}

	records, err := readRecords(*input)
	if err != nil {
		log.Fatal().Err(err).Str("input", *input).Msg("Failed to read records")
	}
	log.Info().Int("count", len(records)).Str("month", reportMonth).Msg("Building monthly summary")

	summary, err := report.BuildSummary(records, reportMonth)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build summary")
	}
	if summary.TotalTransactions == 0 {
		log.Warn().Str("month", reportMonth).Msg("No transactions for month, skipping report")
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(summary, cfg.BaseCurrency, &buf); err != nil {
		log.Fatal().Err(err).Msg("Failed to render PDF")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}
	pdfPath := filepath.Join(*outDir, fmt.Sprintf("transaction_report_%s.pdf", reportMonth))
	if err := os.WriteFile(pdfPath, buf.Bytes(), 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write PDF")
	}
	log.Info().Str("path", pdfPath).Msg("Generated PDF report")

	uploadBucket := cfg.ReportsBucket
	if *bucket != "" {
		uploadBucket = *bucket
	}
	if uploadBucket == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := reportstore.NewGCSStore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create report store")
	}
	defer store.Close()

	uri, err := store.UploadReport(ctx, uploadBucket, reportMonth, buf.Bytes())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to upload report")
	}
	log.Info().Str("uri", uri).Msg("Uploaded report")
}

// readRecords loads one JSON-encoded transaction record per line.
// Blank lines are skipped.
func readRecords(path string) ([]domain.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	var records []domain.TransactionRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var rec domain.TransactionRecord
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return records, nil
}
