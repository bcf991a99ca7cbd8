package advisor

// Thresholds holds every policy constant used by the analysis and advice
// pipeline. All monetary fields are cents. The values are fixed policy, but
// they live here as named fields so tests can pin individual bands.
type Thresholds struct {
	// Weekly trend detection: the last weekly bucket is compared against the
	// previous one and a trend is reported only outside these factors.
	TrendIncreaseFactor float64
	TrendDecreaseFactor float64

	// Share of total held by the top 3 categories that triggers the
	// concentration insight during analysis.
	ConcentrationShare float64

	// Average transaction size bands.
	HighAvgTransactionCents int64
	LowAvgTransactionCents  int64

	// Categories whose share falls inside this band (inclusive) are reported
	// as well balanced.
	BalancedMinPct float64
	BalancedMaxPct float64

	// Overspending detection defaults.
	OverspendThresholdPct float64
	HighSeverityShare     float64

	// Composer opening-line bands on projected monthly spend.
	ActiveMonthlyCents   int64
	ModerateMonthlyCents int64

	// Composer transaction-frequency commentary bands.
	HighFrequencyCount        int
	LowFrequencyCount         int
	LowFrequencyMinTotalCents int64
	BalancedFrequencyMin      int
	BalancedFrequencyMax      int

	// Composer category-diversity commentary.
	DiverseCategoryCount int

	// Composer top-3 concentration commentary (stricter than the analysis
	// insight threshold).
	ComposeConcentrationPct float64

	// Composer daily-average commentary bands.
	HighDailyAvgCents int64
	LowDailyAvgCents  int64

	// Breakdown qualitative tags by share of total.
	TagVeryHighPct     float64
	TagAboveAveragePct float64
	TagBalancedPct     float64

	// Recommended-actions cap.
	MaxTips int

	// Linear projection horizon and its qualitative bands.
	ProjectionDays        int
	ProjExceedingCents    int64
	ProjModerateCents     int64
	ProjBalancedCents     int64
	EncourageMonthlyCents int64

	// Synthesized-tip reduction rates for categories missing from the table.
	UrgentTipSharePct    float64
	UrgentReductionRate  float64
	GeneralReductionRate float64
}

// DefaultThresholds returns the policy constants the advisor ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendIncreaseFactor: 1.2,
		TrendDecreaseFactor: 0.8,

		ConcentrationShare: 0.70,

		HighAvgTransactionCents: 1000_00,
		LowAvgTransactionCents:  200_00,

		BalancedMinPct: 10,
		BalancedMaxPct: 25,

		OverspendThresholdPct: 30,
		HighSeverityShare:     0.5,

		ActiveMonthlyCents:   50000_00,
		ModerateMonthlyCents: 15000_00,

		HighFrequencyCount:        50,
		LowFrequencyCount:         5,
		LowFrequencyMinTotalCents: 5000_00,
		BalancedFrequencyMin:      10,
		BalancedFrequencyMax:      30,

		DiverseCategoryCount: 5,

		ComposeConcentrationPct: 75,

		HighDailyAvgCents: 2000_00,
		LowDailyAvgCents:  500_00,

		TagVeryHighPct:     40,
		TagAboveAveragePct: 25,
		TagBalancedPct:     10,

		MaxTips: 3,

		ProjectionDays:        30,
		ProjExceedingCents:    50000_00,
		ProjModerateCents:     35000_00,
		ProjBalancedCents:     20000_00,
		EncourageMonthlyCents: 25000_00,

		UrgentTipSharePct:    50,
		UrgentReductionRate:  0.20,
		GeneralReductionRate: 0.15,
	}
}
