package settlement

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// InstrumentError is one field-level problem on one instrument row
type InstrumentError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult aggregates per-row errors over the instrument list.
// HasErrors gates submission, never computation: an incomplete draft is
// still fully computed and displayed.
type ValidationResult struct {
	Errors []InstrumentError `json:"errors"`
}

// HasErrors returns true if any instrument row failed validation
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorsForRow returns the errors recorded for one instrument index
func (r ValidationResult) ErrorsForRow(index int) []InstrumentError {
	var rows []InstrumentError
	for _, e := range r.Errors {
		if e.Index == index {
			rows = append(rows, e)
		}
	}
	return rows
}

// instrumentRow is the validatable projection of an Instrument. Field
// names surface through the json tags, matching what the payment entry
// form shows the operator. Method completeness is checked before the
// validator runs, so no tag guards it here.
type instrumentRow struct {
	Method       Method          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	RawAmount    decimal.Decimal `json:"raw_amount"`
	Bank         string          `json:"bank"`
	ChequeNumber string          `json:"cheque_number"`
	HasDate      bool            `json:"cheque_date"`
}

var instrumentValidator = newInstrumentValidator()

func newInstrumentValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateInstrumentRow, instrumentRow{})
	return v
}

// validateInstrumentRow holds the method-conditional completeness rules:
// bank for transfers and cheques, number and date for cheques, and a
// positive amount (face value for cheques).
func validateInstrumentRow(sl validator.StructLevel) {
	row := sl.Current().Interface().(instrumentRow)

	switch row.Method {
	case MethodTransfer:
		if strings.TrimSpace(row.Bank) == "" {
			sl.ReportError(row.Bank, "Bank", "Bank", "required_bank", "")
		}
		if !row.Amount.IsPositive() {
			sl.ReportError(row.Amount, "Amount", "Amount", "positive_amount", "")
		}
	case MethodCheque:
		if strings.TrimSpace(row.Bank) == "" {
			sl.ReportError(row.Bank, "Bank", "Bank", "required_bank", "")
		}
		if strings.TrimSpace(row.ChequeNumber) == "" {
			sl.ReportError(row.ChequeNumber, "ChequeNumber", "ChequeNumber", "required_cheque_number", "")
		}
		if !row.HasDate {
			sl.ReportError(row.HasDate, "HasDate", "HasDate", "required_cheque_date", "")
		}
		if !row.RawAmount.IsPositive() {
			sl.ReportError(row.RawAmount, "RawAmount", "RawAmount", "positive_amount", "")
		}
	case MethodCash:
		if !row.Amount.IsPositive() {
			sl.ReportError(row.Amount, "Amount", "Amount", "positive_amount", "")
		}
	}
}

// validationMessage returns a human-readable message for a failed rule
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required_bank":
		return "Bank is required for this payment method"
	case "required_cheque_number":
		return "Cheque number is required"
	case "required_cheque_date":
		return "Cheque date is required"
	case "positive_amount":
		return "Amount must be a positive number"
	default:
		return "Invalid value"
	}
}

// fieldNameFor maps the validator field back to the form field name
func fieldNameFor(e validator.FieldError) string {
	switch e.StructField() {
	case "Bank":
		return "bank"
	case "ChequeNumber":
		return "cheque_number"
	case "HasDate":
		return "cheque_date"
	case "RawAmount":
		return "raw_amount"
	case "Amount":
		return "amount"
	default:
		return strings.ToLower(e.Field())
	}
}

// ValidateInstruments checks field-level completeness over the instrument
// list and produces one error record per failing field per row. Pure and
// stateless; re-evaluated on every instrument-list change.
func ValidateInstruments(instruments []Instrument) ValidationResult {
	var result ValidationResult
	for i, inst := range instruments {
		row := instrumentRow{
			Method: inst.Method,
			Amount: inst.Amount,
			Bank:   inst.Bank,
		}
		if inst.Cheque != nil {
			row.RawAmount = inst.Cheque.RawAmount
			if row.Bank == "" {
				row.Bank = inst.Cheque.Bank
			}
			row.ChequeNumber = inst.Cheque.ChequeNumber
			row.HasDate = !inst.Cheque.ChequeDate.IsZero()
		}
		if inst.Method == MethodCheque && inst.Cheque == nil {
			result.Errors = append(result.Errors, InstrumentError{
				Index: i, Field: "method", Message: "Cheque details are missing",
			})
			continue
		}
		if !inst.Method.IsValid() {
			result.Errors = append(result.Errors, InstrumentError{
				Index: i, Field: "method", Message: "Unknown payment method",
			})
			continue
		}

		if err := instrumentValidator.Struct(row); err != nil {
			validationErrors, ok := err.(validator.ValidationErrors)
			if !ok {
				result.Errors = append(result.Errors, InstrumentError{
					Index: i, Field: "method", Message: "Invalid instrument",
				})
				continue
			}
			for _, fe := range validationErrors {
				result.Errors = append(result.Errors, InstrumentError{
					Index:   i,
					Field:   fieldNameFor(fe),
					Message: validationMessage(fe),
				})
			}
		}
	}
	return result
}
