package domain

// ReportDocument contains the result of a report build
type ReportDocument struct {
	Meta         ReportMeta    `json:"meta"`
	Summary      ReportSummary `json:"summary"`
	Transactions []Record      `json:"transactions"`
}

// ReportMeta identifies a generated report
type ReportMeta struct {
	Title       string   `json:"title"`
	ReportID    string   `json:"reportId"`
	GeneratedAt string   `json:"generatedAt"`
	Filters     Criteria `json:"filters"`
}

// ReportSummary holds totals over the reported transactions
type ReportSummary struct {
	TotalTransactions int    `json:"totalTransactions"`
	TotalAmount       Amount `json:"totalAmount"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
}
