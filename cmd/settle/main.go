package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	settlementapp "github.com/erp/settlement/internal/application/settlement"
	"github.com/erp/settlement/internal/domain/settlement"
	"github.com/erp/settlement/internal/infrastructure/config"
	"github.com/erp/settlement/internal/infrastructure/logger"
)

// draft is the JSON payment draft supplied by the order/billing
// collaborator: the selected documents plus the tendered instruments.
type draft struct {
	PaymentType settlement.PaymentType  `json:"payment_type"`
	ReceiptDate string                  `json:"receipt_date,omitempty"` // YYYY-MM-DD, defaults to today
	Documents   []settlement.Document   `json:"documents"`
	Instruments []settlement.Instrument `json:"instruments"`
}

func main() {
	inputPath := flag.String("input", "", "path to the payment draft JSON file")
	refinance := flag.Bool("refinance", false, "generate a refinancing plan for any remaining balance")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: settle -input draft.json [-refinance]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting settlement computation",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("input", *inputPath),
	)

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatal("Failed to read draft file", zap.Error(err))
	}

	var d draft
	if err := json.Unmarshal(data, &d); err != nil {
		log.Fatal("Failed to parse draft file", zap.Error(err))
	}

	receiptDate := time.Now()
	if d.ReceiptDate != "" {
		receiptDate, err = time.ParseInLocation("2006-01-02", d.ReceiptDate, time.Local)
		if err != nil {
			log.Fatal("Invalid receipt_date, expected YYYY-MM-DD", zap.Error(err))
		}
	}

	svc := settlementapp.NewService(settlementapp.EngineConfig{
		AnnualInterestPct: decimal.NewFromFloat(cfg.Engine.AnnualInterestPct),
		DefaultGraceDays:  cfg.Engine.DefaultGraceDays,
		ReachTolerance:    decimal.NewFromFloat(cfg.Engine.ReachTolerance),
	}, log)

	ctx := context.Background()
	result, err := svc.ComputeSettlement(ctx, settlementapp.ComputeRequest{
		Documents:   d.Documents,
		Instruments: d.Instruments,
		PaymentType: d.PaymentType,
		ReceiptDate: receiptDate,
	})
	if err != nil {
		log.Fatal("Settlement computation failed", zap.Error(err))
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode result", zap.Error(err))
	}
	fmt.Println(string(out))
	fmt.Println(settlementapp.BuildReceipt(result, d.Documents))

	if *refinance && result.Totals.Diff.IsPositive() {
		plan, err := svc.GenerateRefinancingPlan(ctx, settlementapp.RefinancingRequest{
			Documents:   d.Documents,
			TargetNet:   result.Totals.Diff,
			DayOffsets:  cfg.Engine.RefinancingOffsets,
			ReceiptDate: receiptDate,
		})
		if err != nil {
			// Refinancing preconditions are guidance, not hard failures.
			fmt.Fprintln(os.Stderr, "refinancing not available:", err)
			return
		}
		planOut, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			log.Fatal("Failed to encode refinancing plan", zap.Error(err))
		}
		fmt.Println(string(planOut))
	}
}
