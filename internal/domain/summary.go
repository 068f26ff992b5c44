package domain

// Summary holds the dashboard counters. Values come from the data source and
// are displayed as-is; missing counters decode as zero.
type Summary struct {
	Total     int `json:"total"`
	Incomings int `json:"incomings"`
	Payments  int `json:"payments"`
	Deposits  int `json:"deposits"`
}
