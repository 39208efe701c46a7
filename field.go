package peers

import (
	"strings"
)

// Field names a metric or an attribute of a company.
type Field string

// Known fields. Any other name is a valid custom numeric field.
const (
	Name                 Field = "company_name"
	Industry             Field = "industry"
	Valuation            Field = "valuation"
	TotalFunding         Field = "total_funding"
	Employees            Field = "current_employees"
	Founded              Field = "founded"
	EmployeeGrowth       Field = "employee_growth"
	FundingPerEmployee   Field = "funding_per_employee"
	ValuationPerEmployee Field = "valuation_per_employee"
	CapitalEfficiency    Field = "capital_efficiency"
)

// aliases maps column names found in company datasets to fields.
var aliases = map[string]Field{
	"name":                Name,
	"company":             Name,
	"valuation_clean":     Valuation,
	"funding":             TotalFunding,
	"total_funding_clean": TotalFunding,
	"employees":           Employees,
	"headcount":           Employees,
	"founded_year":        Founded,
	"year_founded":        Founded,
	"growth":              EmployeeGrowth,
}

// ParseField returns the field for a column header.
//
// It is case insensitive, ignores surrounding spaces, treats spaces and dashes
// as underscores and resolves common aliases such as "valuation_clean" or
// "Industry".
func ParseField(s string) Field {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	if f, ok := aliases[s]; ok {
		return f
	}
	return Field(s)
}

// DecodeOrder returns the indexes of keys in the order decoders read them:
// exact field names first, then aliases, each in input order. Decoders keep
// the first present value of a field, so "valuation" wins over
// "valuation_clean" whatever the column or key order.
func DecodeOrder(keys []string) []int {
	order := make([]int, 0, len(keys))
	for pass := 0; pass < 2; pass++ {
		for i, k := range keys {
			if isAlias(k) == (pass == 1) {
				order = append(order, i)
			}
		}
	}
	return order
}

func isAlias(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	_, ok := aliases[s]
	return ok
}

// Categorical reports whether the field holds text rather than a number.
func (f Field) Categorical() bool { return f == Name || f == Industry }

// Monetary reports whether the field is an amount of money.
func (f Field) Monetary() bool {
	switch f {
	case Valuation, TotalFunding, FundingPerEmployee, ValuationPerEmployee:
		return true
	}
	return false
}

var labels = map[Field]string{
	Name:                 "Company",
	Industry:             "Industry",
	Valuation:            "Valuation ($)",
	TotalFunding:         "Funding ($)",
	Employees:            "Employees",
	Founded:              "Founded",
	EmployeeGrowth:       "Growth (%)",
	FundingPerEmployee:   "Funding / Employee ($)",
	ValuationPerEmployee: "Valuation / Employee ($)",
	CapitalEfficiency:    "Capital Efficiency",
}

// Label returns a human readable axis label.
func (f Field) Label() string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}

func (f Field) String() string { return string(f) }
