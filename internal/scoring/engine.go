package scoring

import "strconv"

// The 15-factor questionnaire scorecard. Every factor maps its answer to
// points through a fixed table; a missing or unrecognized answer never
// produces an error, it resolves to a documented default instead.
// The engine is pure: same questionnaire in, same result out.

// Questionnaire field names, as submitted by the form handler.
const (
	FieldIndustry          = "industry"
	FieldDebtRatio         = "debt_ratio"
	FieldCashFlow          = "cash_flow"
	FieldLitigationCount   = "litigation_count"
	FieldCompanyYears      = "company_years"
	FieldRegisteredCapital = "registered_capital_range"
	FieldAnnualRevenue     = "annual_revenue"
	FieldProfitRate        = "profit_rate"
	FieldAssetStructure    = "asset_structure"
	FieldBankCreditRecord  = "bank_credit_record"
	FieldTaxCreditLevel    = "tax_credit_level"
	FieldSocialSecurity    = "social_security"
	FieldSupplyChain       = "supply_chain"
	FieldMarketPosition    = "market_position"
	FieldManagementTeam    = "management_team"
)

// Per-factor score keys, matching the stored assessment columns.
const (
	FactorIndustry       = "industry"
	FactorDebt           = "debt"
	FactorCashflow       = "cashflow"
	FactorLitigation     = "litigation"
	FactorYears          = "years"
	FactorCapital        = "capital"
	FactorRevenue        = "revenue"
	FactorProfit         = "profit"
	FactorAssetStructure = "asset_structure"
	FactorBankCredit     = "bank_credit"
	FactorTaxCredit      = "tax_credit"
	FactorSocialSecurity = "social_security"
	FactorSupplyChain    = "supply_chain"
	FactorMarketPosition = "market_position"
	FactorManagementTeam = "management_team"
)

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Result is a full scorecard evaluation.
type Result struct {
	Total        int            `json:"total"`
	Grade        Grade          `json:"grade"`
	FactorScores map[string]int `json:"factor_scores"`
}

// categorical is one lookup-table factor. defaultKey resolves a missing
// answer; fallback scores an answer that is present but not in the
// table, which includes an empty string. For most factors fallback
// equals the defaultKey's points, but tax_credit_level (B=5 vs fallback
// 3) and social_security (partial=4 vs fallback 2) differ, and the
// asymmetry is part of the contract.
type categorical struct {
	field      string
	factor     string
	points     map[string]int
	defaultKey string
	fallback   int
}

func (c categorical) score(q map[string]string) int {
	v, ok := q[c.field]
	if !ok {
		v = c.defaultKey
	}
	if p, ok := c.points[v]; ok {
		return p
	}
	return c.fallback
}

var categoricalFactors = []categorical{
	{
		field: FieldIndustry, factor: FactorIndustry,
		points:     map[string]int{"finance": 7, "technology": 6, "manufacturing": 5, "retail": 4, "construction": 3, "other": 2},
		defaultKey: "other", fallback: 2,
	},
	{
		field: FieldCashFlow, factor: FactorCashflow,
		points:     map[string]int{"excellent": 7, "good": 5, "normal": 3, "poor": 1},
		defaultKey: "normal", fallback: 3,
	},
	{
		field: FieldRegisteredCapital, factor: FactorCapital,
		points:     map[string]int{"above_5000": 7, "1000_5000": 5, "500_1000": 4, "100_500": 3, "below_100": 1},
		defaultKey: "below_100", fallback: 1,
	},
	{
		field: FieldAnnualRevenue, factor: FactorRevenue,
		points:     map[string]int{"above_1y": 7, "5000w_1y": 6, "1000w_5000w": 5, "500w_1000w": 3, "below_500w": 1},
		defaultKey: "below_500w", fallback: 1,
	},
	{
		field: FieldProfitRate, factor: FactorProfit,
		points:     map[string]int{"above_20": 7, "10_20": 5, "5_10": 4, "0_5": 2, "negative": 0},
		defaultKey: "0_5", fallback: 2,
	},
	{
		field: FieldAssetStructure, factor: FactorAssetStructure,
		points:     map[string]int{"excellent": 7, "good": 5, "normal": 3, "poor": 1},
		defaultKey: "normal", fallback: 3,
	},
	{
		field: FieldBankCreditRecord, factor: FactorBankCredit,
		points:     map[string]int{"excellent": 7, "good": 5, "normal": 3, "poor": 1, "none": 2},
		defaultKey: "normal", fallback: 3,
	},
	{
		field: FieldTaxCreditLevel, factor: FactorTaxCredit,
		points:     map[string]int{"A": 6, "B": 5, "C": 3, "D": 1, "M": 4},
		defaultKey: "B", fallback: 3,
	},
	{
		field: FieldSocialSecurity, factor: FactorSocialSecurity,
		points:     map[string]int{"full": 6, "partial": 4, "irregular": 2, "none": 0},
		defaultKey: "partial", fallback: 2,
	},
	{
		field: FieldSupplyChain, factor: FactorSupplyChain,
		points:     map[string]int{"very_stable": 6, "stable": 5, "normal": 3, "unstable": 1},
		defaultKey: "normal", fallback: 3,
	},
	{
		field: FieldMarketPosition, factor: FactorMarketPosition,
		points:     map[string]int{"leader": 6, "strong": 5, "normal": 3, "weak": 1},
		defaultKey: "normal", fallback: 3,
	},
	{
		field: FieldManagementTeam, factor: FactorManagementTeam,
		points:     map[string]int{"excellent": 6, "experienced": 5, "normal": 3, "inexperienced": 1},
		defaultKey: "normal", fallback: 3,
	},
}

func debtRatioScore(q map[string]string) int {
	ratio := 50.0
	if v, ok := q[FieldDebtRatio]; ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			ratio = f
		}
	}
	switch {
	case ratio < 30:
		return 7
	case ratio < 50:
		return 5
	case ratio < 70:
		return 3
	default:
		return 1
	}
}

func litigationScore(q map[string]string) int {
	count := 0
	if v, ok := q[FieldLitigationCount]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			count = n
		}
	}
	switch {
	case count == 0:
		return 7
	case count <= 2:
		return 5
	case count <= 5:
		return 2
	default:
		return 0
	}
}

func companyYearsScore(q map[string]string) int {
	years := 3
	if v, ok := q[FieldCompanyYears]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			years = n
		}
	}
	switch {
	case years >= 10:
		return 7
	case years >= 5:
		return 5
	case years >= 3:
		return 3
	default:
		return 1
	}
}

// GradeFor maps a total score onto the fixed letter-grade thresholds.
func GradeFor(total int) Grade {
	switch {
	case total >= 80:
		return GradeA
	case total >= 60:
		return GradeB
	case total >= 40:
		return GradeC
	default:
		return GradeD
	}
}

// Score evaluates the questionnaire. It never fails; malformed or
// missing answers score through their factor's default.
func Score(q map[string]string) Result {
	scores := make(map[string]int, 15)
	for _, c := range categoricalFactors {
		scores[c.factor] = c.score(q)
	}
	scores[FactorDebt] = debtRatioScore(q)
	scores[FactorLitigation] = litigationScore(q)
	scores[FactorYears] = companyYearsScore(q)

	total := 0
	for _, s := range scores {
		total += s
	}
	return Result{Total: total, Grade: GradeFor(total), FactorScores: scores}
}
