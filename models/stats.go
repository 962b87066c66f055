package models

// JobTitleCount is one row of the popular-job-titles aggregation.
type JobTitleCount struct {
	JobTitle string `json:"jobTitle"`
	Count    int64  `json:"count"`
}

// RequestStats aggregates interview request counts for the dashboard.
// Total is always Pending + Accepted + Rejected.
type RequestStats struct {
	Total            int64           `json:"total"`
	Pending          int64           `json:"pending"`
	Accepted         int64           `json:"accepted"`
	Rejected         int64           `json:"rejected"`
	RecentRequests   int64           `json:"recentRequests"`
	PopularJobTitles []JobTitleCount `json:"popularJobTitles"`
}
