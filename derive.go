package peers

// Derive fills the ratio metrics that can be computed from r's own metrics
// and are not already set:
//
//	funding_per_employee   = total_funding / current_employees
//	valuation_per_employee = valuation / current_employees
//	capital_efficiency     = valuation / total_funding
//
// A ratio with an absent operand or a zero divisor stays absent.
func Derive(r Record) Record {
	derive := func(f, num, den Field) {
		if r.Get(f).IsPresent() {
			return
		}
		if v := r.Get(num).Div(r.Get(den)); v.IsPresent() {
			r = r.With(f, V(v.Decimal().Round(2)))
		}
	}
	derive(FundingPerEmployee, TotalFunding, Employees)
	derive(ValuationPerEmployee, Valuation, Employees)
	derive(CapitalEfficiency, Valuation, TotalFunding)
	return r
}
