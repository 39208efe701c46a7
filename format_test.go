package peers

import "testing"

func TestFormatValue(t *testing.T) {
	testCases := []struct {
		field    Field
		v        Value
		currency string
		want     string
	}{
		{ValuationPerEmployee, V(666_667), "USD", "$666,667"},
		{Valuation, V(20_000_000), "USD", "$20,000,000"},
		{FundingPerEmployee, V(0), "USD", "$0"},
		{Valuation, V(1234.6), "USD", "$1,235"},
		{Valuation, V(20_000_000), "", "$20,000,000"},
		{Employees, V(30), "USD", "30"},
		{Founded, V(2023), "USD", "2023"},
		{EmployeeGrowth, V(12.345), "USD", "12.35"},
		{Valuation, Absent, "USD", "-"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatValue(tc.field, tc.v, tc.currency); got != tc.want {
				t.Errorf("FormatValue(%q, %v, %q) = %q, want %q", tc.field, tc.v, tc.currency, got, tc.want)
			}
		})
	}
}

func TestCompact(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{20_000_000, "20M"},
		{1_500_000_000, "1.5B"},
		{30_000, "30K"},
		{950, "950"},
		{0, "0"},
		{-2_500_000, "-2.5M"},
	}
	for _, tc := range testCases {
		if got := Compact(tc.in); got != tc.want {
			t.Errorf("Compact(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
