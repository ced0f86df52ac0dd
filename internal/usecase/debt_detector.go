package usecase

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"

	"github.com/clinicprime/notelens/internal/domain"
)

// Debt patterns run on folded text (uppercase, accent-free, punctuation kept)
var (
	debtMentionRegex   = mustCompileDebt(`\bDEUDA\b`)
	debtExceptionRegex = mustCompileDebt(`\b(?:CANCEL[AO]|PAG[AO])\s+(?:LA\s+)?DEUDA\b`)
	// amount within a short currency/filler gap after DEUDA: "DEUDA S/ 1,500.50", "DEUDA: 200 SOLES"
	debtAmountRegex = mustCompileDebt(`\bDEUDA\b[^0-9]{0,15}?(\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?)(?!\d|[.,]\d)`)
	thousandsRegex  = mustCompileDebt(`[.,](?=\d{3}(?!\d))`)
)

func mustCompileDebt(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.None)
	re.MatchTimeout = 100 * time.Millisecond
	return re
}

// DetectDebt reports a DEUDA mention in a note, or nil when there is none.
// A mention preceded by CANCELO/PAGO marks a settled debt and is not flagged.
func DetectDebt(raw string) *domain.DebtSignal {
	text := Fold(raw)
	if text == "" {
		return nil
	}

	mentioned, err := debtMentionRegex.MatchString(text)
	if err != nil || !mentioned {
		return nil
	}

	signal := &domain.DebtSignal{Flagged: true}
	if settled, err := debtExceptionRegex.MatchString(text); err == nil && settled {
		signal.Flagged = false
	}

	if amount, ok := parseDebtAmount(text); ok {
		signal.Amount = decimal.NewNullDecimal(amount)
	}

	return signal
}

// parseDebtAmount reads the amount after DEUDA. Separators followed by exactly
// three digits are thousands separators; any other comma is a decimal comma.
func parseDebtAmount(text string) (decimal.Decimal, bool) {
	m, err := debtAmountRegex.FindStringMatch(text)
	if err != nil || m == nil {
		return decimal.Decimal{}, false
	}

	amount := m.GroupByNumber(1).String()
	amount, err = thousandsRegex.Replace(amount, "", -1, -1)
	if err != nil {
		return decimal.Decimal{}, false
	}
	amount = strings.ReplaceAll(amount, ",", ".")

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
