package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/settlement/internal/domain/shared"
	"github.com/erp/settlement/internal/domain/settlement"
)

// EngineConfig holds the tunable parameters of the settlement engine
type EngineConfig struct {
	AnnualInterestPct decimal.Decimal
	DefaultGraceDays  int
	ReachTolerance    decimal.Decimal
}

// Service orchestrates the settlement engine over one payment draft.
// All state is passed in and all outputs are freshly allocated, so a
// single Service is safe for concurrent use.
type Service struct {
	cfg EngineConfig
	log *zap.Logger
}

// NewService creates a settlement service with the given engine
// configuration. Zero config fields fall back to the engine defaults.
func NewService(cfg EngineConfig, log *zap.Logger) *Service {
	if cfg.AnnualInterestPct.IsZero() {
		cfg.AnnualInterestPct = decimal.NewFromInt(96)
	}
	if cfg.DefaultGraceDays == 0 {
		cfg.DefaultGraceDays = settlement.DefaultGraceDays
	}
	if cfg.ReachTolerance.IsZero() {
		cfg.ReachTolerance = settlement.DefaultReachTolerance
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, log: log}
}

// ComputeRequest is one snapshot of the draft payment form
type ComputeRequest struct {
	Documents   []settlement.Document
	Instruments []settlement.Instrument
	PaymentType settlement.PaymentType
	// ManualTenPercent flags the operator-forced 10% override per document
	ManualTenPercent map[uuid.UUID]bool
	// ReceiptDate defaults to today when zero
	ReceiptDate time.Time
}

// ComputeResult bundles everything the draft payment screen shows:
// per-document adjustments, per-cheque costs and promotions, the
// reconciled totals, and the field-level validation state.
type ComputeResult struct {
	Adjustments []settlement.ComputedAdjustment `json:"computed_adjustments"`
	ChequeCosts []settlement.ChequeCost         `json:"cheque_costs"`
	Promos      []settlement.ChequePromo        `json:"cheque_promos"`
	Totals      settlement.Totals               `json:"totals"`
	Validation  settlement.ValidationResult     `json:"validation"`
}

// ComputeSettlement runs the full pipeline for one draft snapshot:
// document adjustments, cheque financial costs, promotion, aggregation
// and instrument validation. It is invoked by the caller on every input
// change; there is no memoization inside.
func (s *Service) ComputeSettlement(ctx context.Context, req ComputeRequest) (*ComputeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.PaymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be ADVANCE or OPEN_ACCOUNT")
	}

	receiptDate := req.ReceiptDate
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}
	receiptDate = settlement.StartOfDay(receiptDate)

	adjustments := settlement.ComputeAdjustments(req.Documents, settlement.AdjustmentInput{
		PaymentType:       req.PaymentType,
		AnnualInterestPct: s.cfg.AnnualInterestPct,
		ReceiptDate:       receiptDate,
	}, req.ManualTenPercent)

	for _, adj := range adjustments {
		if adj.RuleApplied == settlement.RuleInvalidDays {
			s.log.Warn("document day estimate unavailable, neutral rate applied",
				zap.String("document", adj.DocumentNumber))
		}
	}

	blockInterest := false
	for _, doc := range req.Documents {
		if settlement.IsNoDiscountCondition(doc.Condition) {
			blockInterest = true
			break
		}
	}

	chequeCosts := settlement.ComputeChequeCosts(req.Instruments, settlement.ChequeCostInput{
		ReceiptDate:       receiptDate,
		DefaultGraceDays:  s.cfg.DefaultGraceDays,
		AnnualInterestPct: s.cfg.AnnualInterestPct,
		BlockInterest:     blockInterest,
	})

	netTarget := decimal.Zero
	docAdjustment := decimal.Zero
	for _, adj := range adjustments {
		netTarget = netTarget.Add(adj.FinalAmount)
		docAdjustment = docAdjustment.Add(adj.SignedAdjustment)
	}

	var promos []settlement.ChequePromo
	if settlement.PromoEligible(docAdjustment, req.Instruments, netTarget, s.cfg.ReachTolerance) {
		promos = settlement.ComputeChequePromos(req.Instruments, settlement.PromoInput{
			ReceiptDate:    receiptDate,
			InvoiceAgeDays: settlement.InvoiceAgeDays(adjustments),
		})
	}

	totals := settlement.Aggregate(settlement.AggregationInput{
		Adjustments:    adjustments,
		Instruments:    req.Instruments,
		ChequeCosts:    chequeCosts,
		Promos:         promos,
		ReachTolerance: s.cfg.ReachTolerance,
	})

	validation := settlement.ValidateInstruments(req.Instruments)

	s.log.Info("settlement computed",
		zap.Int("documents", len(req.Documents)),
		zap.Int("instruments", len(req.Instruments)),
		zap.String("balance_case", totals.Case.String()),
		zap.String("gross", totals.Gross.StringFixed(2)),
		zap.String("net_to_apply", totals.NetToApply.StringFixed(2)),
		zap.String("diff", totals.Diff.StringFixed(2)),
		zap.Bool("has_validation_errors", validation.HasErrors()),
	)

	return &ComputeResult{
		Adjustments: adjustments,
		ChequeCosts: chequeCosts,
		Promos:      promos,
		Totals:      totals,
		Validation:  validation,
	}, nil
}

// RefinancingRequest asks for a plan converting the remaining balance
// into future-dated cheques.
type RefinancingRequest struct {
	Documents  []settlement.Document
	TargetNet  decimal.Decimal
	DayOffsets []int
	// ReceiptDate defaults to today when zero
	ReceiptDate time.Time
}

// GenerateRefinancingPlan produces synthetic cheque instruments closing
// the balance. Interest is blocked wholesale when any selected document
// is in a no-discount condition. A document already due today blocks the
// plan: the balance must be settled, not rolled forward.
func (s *Service) GenerateRefinancingPlan(ctx context.Context, req RefinancingRequest) (*settlement.RefinancingPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	receiptDate := req.ReceiptDate
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}
	receiptDate = settlement.StartOfDay(receiptDate)

	grace := s.cfg.DefaultGraceDays
	for _, doc := range req.Documents {
		if days, ok := doc.DaysUntilDue(receiptDate); ok && days == 0 {
			return nil, shared.ErrSameDayRefinancing
		}
		if settlement.IsNoDiscountCondition(doc.Condition) {
			grace = settlement.BlockedGraceDays
		}
	}

	plan, err := settlement.GenerateRefinancingPlan(settlement.RefinancingInput{
		TargetNet:         req.TargetNet,
		DayOffsets:        req.DayOffsets,
		AnnualInterestPct: s.cfg.AnnualInterestPct,
		GraceDays:         grace,
		Today:             receiptDate,
		DocumentCount:     len(req.Documents),
	})
	if err != nil {
		s.log.Info("refinancing plan rejected", zap.Error(err))
		return nil, err
	}

	s.log.Info("refinancing plan generated",
		zap.Int("cheques", len(plan.Instruments)),
		zap.String("target_net", req.TargetNet.StringFixed(2)),
		zap.String("total_raw", plan.TotalRaw.StringFixed(2)),
		zap.String("total_cost", plan.TotalCost.StringFixed(2)),
	)
	return plan, nil
}
