package report

// Key identifies one output row: who worked, on which project, under which
// workload tag.
type Key struct {
	PersonName      string
	ProjectName     string
	WorkloadTagName string
}

// Row is one aggregated report row. Rows are produced in first-appearance
// order of their keys and never change after the aggregation pass.
type Row struct {
	Key              Key
	InternalExternal string
	ProjectCode      string
	ProjectTagNames  string
	Memos            string
	TotalMinutes     int
	TotalHours       float64
}
