package models

// Alternative-data defaults applied when the caller omits a field.
const (
	DefaultBillCV           = 0.3
	DefaultBillRatio        = 0.2
	DefaultMobileAvgTopup   = 120000
	DefaultMobileTopupCV    = 0.25
	DefaultMobileNumberAge  = 3
	DefaultMobileHasBanking = true
	DefaultTaxHasNPWP       = true
	DefaultTaxProvidesNPWP  = true
)

// AuxData is the caller-supplied alternative-data payload for the health
// score. Every field is optional; nil means "use the documented default".
// A missing payload altogether is treated as all-defaults, not an error.
type AuxData struct {
	BillLateIn3M      *bool    `json:"bill_late_in_3m"`
	BillTotalLate     *int     `json:"bill_total_late"`
	BillCV            *float64 `json:"bill_cv"`
	BillRatio         *float64 `json:"bill_ratio"`
	MobileAvgTopup    *float64 `json:"mobile_avg_topup"`
	MobileTopupCV     *float64 `json:"mobile_topup_cv"`
	MobileNumberAge   *float64 `json:"mobile_number_age"`
	MobileHasBanking  *bool    `json:"mobile_has_banking"`
	MobileHasGambling *bool    `json:"mobile_has_gambling"`
	TaxHasNPWP        *bool    `json:"tax_has_npwp"`
	TaxProvidesNPWP   *bool    `json:"tax_provides_npwp"`
	CreditHasFailed   *bool    `json:"credit_has_failed"`
	CreditActiveLoans *int     `json:"credit_active_loans"`
}

// AuxInputs is AuxData with all defaults resolved
type AuxInputs struct {
	BillLateIn3M      bool
	BillTotalLate     int
	BillCV            float64
	BillRatio         float64
	MobileAvgTopup    float64
	MobileTopupCV     float64
	MobileNumberAge   float64
	MobileHasBanking  bool
	MobileHasGambling bool
	TaxHasNPWP        bool
	TaxProvidesNPWP   bool
	CreditHasFailed   bool
	CreditActiveLoans int
}

// Resolve applies defaults for every absent field. Safe to call on a nil
// receiver, which yields the all-defaults inputs.
func (a *AuxData) Resolve() AuxInputs {
	in := AuxInputs{
		BillCV:           DefaultBillCV,
		BillRatio:        DefaultBillRatio,
		MobileAvgTopup:   DefaultMobileAvgTopup,
		MobileTopupCV:    DefaultMobileTopupCV,
		MobileNumberAge:  DefaultMobileNumberAge,
		MobileHasBanking: DefaultMobileHasBanking,
		TaxHasNPWP:       DefaultTaxHasNPWP,
		TaxProvidesNPWP:  DefaultTaxProvidesNPWP,
	}
	if a == nil {
		return in
	}
	if a.BillLateIn3M != nil {
		in.BillLateIn3M = *a.BillLateIn3M
	}
	if a.BillTotalLate != nil {
		in.BillTotalLate = *a.BillTotalLate
	}
	if a.BillCV != nil {
		in.BillCV = *a.BillCV
	}
	if a.BillRatio != nil {
		in.BillRatio = *a.BillRatio
	}
	if a.MobileAvgTopup != nil {
		in.MobileAvgTopup = *a.MobileAvgTopup
	}
	if a.MobileTopupCV != nil {
		in.MobileTopupCV = *a.MobileTopupCV
	}
	if a.MobileNumberAge != nil {
		in.MobileNumberAge = *a.MobileNumberAge
	}
	if a.MobileHasBanking != nil {
		in.MobileHasBanking = *a.MobileHasBanking
	}
	if a.MobileHasGambling != nil {
		in.MobileHasGambling = *a.MobileHasGambling
	}
	if a.TaxHasNPWP != nil {
		in.TaxHasNPWP = *a.TaxHasNPWP
	}
	if a.TaxProvidesNPWP != nil {
		in.TaxProvidesNPWP = *a.TaxProvidesNPWP
	}
	if a.CreditHasFailed != nil {
		in.CreditHasFailed = *a.CreditHasFailed
	}
	if a.CreditActiveLoans != nil {
		in.CreditActiveLoans = *a.CreditActiveLoans
	}
	return in
}
