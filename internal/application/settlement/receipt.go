package settlement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/settlement/internal/domain/settlement"
	"github.com/erp/settlement/internal/domain/shared/valueobject"
)

var hundredPct = decimal.NewFromInt(100)

// BuildReceipt renders the plain-text receipt the operator hands to the
// customer. It reads the Totals fields positionally, in the same order
// the accounting export consumes them.
func BuildReceipt(result *ComputeResult, documents []settlement.Document) string {
	var b strings.Builder
	line := strings.Repeat("-", 46)

	b.WriteString("PAYMENT RECEIPT\n")
	b.WriteString(line + "\n")

	b.WriteString("Documents:\n")
	for i, doc := range documents {
		if i >= len(result.Adjustments) {
			break
		}
		adj := result.Adjustments[i]
		b.WriteString(fmt.Sprintf("  %-14s %12s  %+6.2f%%  %12s\n",
			doc.Number,
			adj.Base.StringFixed(2),
			adj.Rate.Mul(hundredPct).InexactFloat64(),
			adj.FinalAmount.StringFixed(2),
		))
		if adj.Note != "" {
			b.WriteString(fmt.Sprintf("    (%s)\n", adj.Note))
		}
	}

	if len(result.ChequeCosts) > 0 {
		b.WriteString("Cheques:\n")
		for _, cost := range result.ChequeCosts {
			b.WriteString(fmt.Sprintf("  %3d days charged  interest %10s  net %12s\n",
				cost.DaysCharged,
				cost.InterestAmount.StringFixed(2),
				cost.NetAmount.StringFixed(2),
			))
		}
	}

	// The totals block is the customer-facing money; amounts carry the
	// currency code here.
	t := result.Totals
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Gross", valueobject.NewMoneyARS(t.Gross)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Discount", valueobject.NewMoneyARS(t.Discount)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Net", valueobject.NewMoneyARS(t.Net)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Values", valueobject.NewMoneyARS(t.Values)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Values (nominal)", valueobject.NewMoneyARS(t.ValuesRaw)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Cheque interest", valueobject.NewMoneyARS(t.ChequeInterest)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Discount applied to values", valueobject.NewMoneyARS(t.DiscountAppliedToValues)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Net to apply", valueobject.NewMoneyARS(t.NetToApply)))
	b.WriteString(fmt.Sprintf("%-28s %16s\n", "Balance", valueobject.NewMoneyARS(t.Diff)))
	b.WriteString(line + "\n")

	if t.IsSettled() {
		b.WriteString("Payment settles the selected documents in full.\n")
	} else {
		b.WriteString("PARTIAL PAYMENT - remaining balance must be accepted or refinanced.\n")
	}

	return b.String()
}
