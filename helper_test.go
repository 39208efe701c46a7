package peers

// company is a helper for tests to create a record from field/value pairs.
func company(name, industry string, kv ...any) Record {
	r := NewRecord(name, industry)
	for i := 0; i+1 < len(kv); i += 2 {
		f := kv[i].(Field)
		switch v := kv[i+1].(type) {
		case int:
			r = r.With(f, V(v))
		case float64:
			r = r.With(f, V(v))
		case Value:
			r = r.With(f, v)
		case string:
			r = r.WithText(f, v)
		}
	}
	return r
}

// odin is the subject used across tests.
var odin = company("Odin AI", "AI",
	Valuation, 20_000_000,
	TotalFunding, 0,
	Employees, 30,
	Founded, 2023,
	EmployeeGrowth, 10,
	FundingPerEmployee, 0,
	ValuationPerEmployee, 666_667,
)

// names returns the names of the records in a peer set.
func names(p *PeerSet) []string {
	var out []string
	for _, r := range p.All() {
		out = append(out, r.Name)
	}
	return out
}
