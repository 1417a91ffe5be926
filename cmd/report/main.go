package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"bossboarding/internal/commission"
	"bossboarding/internal/config"
	"bossboarding/internal/db"
	customerrepo "bossboarding/internal/repository/customer"
	reportsvc "bossboarding/internal/service/report"
)

func main() {
	var (
		outPath string
		format  string
		repID   string
		status  string
		from    string
		to      string
	)
	flag.StringVar(&outPath, "out", "", "Output file (default stdout, required for xlsx)")
	flag.StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	flag.StringVar(&repID, "rep", "", "Only include this sales rep ID")
	flag.StringVar(&status, "status", "", "Only include deals with this payment status (unpaid, partial, paid)")
	flag.StringVar(&from, "from", "", "Only include customers created on or after this date (YYYY-MM-DD)")
	flag.StringVar(&to, "to", "", "Only include customers created on or before this date (YYYY-MM-DD)")
	flag.Parse()

	if format != "csv" && format != "xlsx" {
		flag.Usage()
		os.Exit(2)
	}
	if format == "xlsx" && outPath == "" {
		log.Fatal("xlsx output requires -out")
	}

	filter := commission.Filter{
		RepID:         repID,
		PaymentStatus: commission.PaymentStatus(status),
	}
	var err error
	if filter.From, err = parseDate(from); err != nil {
		log.Fatalf("parse -from: %v", err)
	}
	if filter.To, err = parseDate(to); err != nil {
		log.Fatalf("parse -to: %v", err)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags|log.LUTC)
	svc := reportsvc.New(customerrepo.NewPostgres(pool, logger))

	out := os.Stdout
	if outPath != "" {
		out, err = os.Create(outPath)
		if err != nil {
			log.Fatalf("create output file: %v", err)
		}
		defer out.Close()
	}

	start := time.Now()
	switch format {
	case "csv":
		err = svc.WriteCSV(ctx, out, filter)
	case "xlsx":
		err = svc.WriteXLSX(ctx, out, filter)
	}
	if err != nil {
		log.Fatalf("write report: %v", err)
	}

	if outPath != "" {
		fmt.Printf("Wrote %s report to %s in %s\n", format, outPath, time.Since(start).Truncate(time.Millisecond))
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
