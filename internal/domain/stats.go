package domain

import "time"

// RecentResult is the compact summary kept in the recent-results log.
type RecentResult struct {
	MBTIType       Type        `json:"mbtiType"`
	Timestamp      time.Time   `json:"timestamp"`
	Scores         ScoreVector `json:"scores"`
	CompletionTime int         `json:"completionTime"`
}

// Stats is the all-time type distribution.
type Stats struct {
	MBTICounts       map[Type]int64   `json:"mbtiCounts"`
	TotalSubmissions int64            `json:"totalSubmissions"`
	Percentages      map[Type]float64 `json:"percentages"`
}

// DashboardStats is Stats plus the leading type, a moving average of
// completion times and the newest results.
type DashboardStats struct {
	Stats
	TopMBTI           *Type          `json:"topMBTI"`
	AvgCompletionTime int            `json:"avgCompletionTime"`
	RecentResults     []RecentResult `json:"recentResults"`
}

// TypeStats is the share of a single type.
type TypeStats struct {
	MBTIType         Type    `json:"mbtiType"`
	Count            int64   `json:"count"`
	Percentage       float64 `json:"percentage"`
	TotalSubmissions int64   `json:"totalSubmissions"`
}

// Submission is a validated result plus an optional dedup key.
type Submission struct {
	Result         QuizResult
	IdempotencyKey string
}

// SubmitOutcome reports the total after a submission.
type SubmitOutcome struct {
	TotalSubmissions int64
	Duplicate        bool
}
