package scoring

// Five categorical risk indicators derived from the per-factor scores.
// Each rule is an independent two-threshold comparison; factor scores
// absent from the map count as zero, so the calculator never fails.

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk indicator categories.
const (
	RiskOverall     = "overall_risk"
	RiskFinancial   = "financial_risk"
	RiskLegal       = "legal_risk"
	RiskOperational = "operational_risk"
	RiskCredit      = "credit_risk"
)

func levelFor(value, lowMin, mediumMin int) RiskLevel {
	switch {
	case value >= lowMin:
		return RiskLow
	case value >= mediumMin:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskIndicators computes the five indicator levels for one evaluation.
func RiskIndicators(factorScores map[string]int, total int) map[string]RiskLevel {
	financial := factorScores[FactorDebt] + factorScores[FactorCashflow] + factorScores[FactorProfit]
	operational := factorScores[FactorSupplyChain] + factorScores[FactorMarketPosition]
	credit := factorScores[FactorBankCredit] + factorScores[FactorTaxCredit]

	return map[string]RiskLevel{
		RiskOverall:     levelFor(total, 70, 50),
		RiskFinancial:   levelFor(financial, 15, 10),
		RiskLegal:       levelFor(factorScores[FactorLitigation], 5, 2),
		RiskOperational: levelFor(operational, 8, 5),
		RiskCredit:      levelFor(credit, 10, 6),
	}
}
