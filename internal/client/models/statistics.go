package models

// Statistics is the contest-wide overview aggregate.
type Statistics struct {
	TotalParticipants int                 `json:"total_participants"`
	CheckedInCount    int                 `json:"checked_in_count"`
	CheckinRate       float64             `json:"checkin_rate"`
	TotalGroups       int                 `json:"total_groups"`
	TotalJudges       int                 `json:"total_judges"`
	TotalScores       int                 `json:"total_scores"`
	AvgScore          float64             `json:"avg_score"`
	CheckinByOrg      []OrgCheckinStat    `json:"checkin_by_organization"`
	CheckinTimeline   []TimelinePoint     `json:"checkin_timeline"`
	ScoreDistribution []DistributionBucket `json:"score_distribution"`
}

type OrgCheckinStat struct {
	Organization string  `json:"organization"`
	Total        int     `json:"total"`
	CheckedIn    int     `json:"checked_in"`
	Rate         float64 `json:"rate"`
}

type TimelinePoint struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// StatsQuery bounds a statistics breakdown by time and grouping dimension.
type StatsQuery struct {
	StartTime string
	EndTime   string
	GroupBy   string
}

type TrendsQuery struct {
	Period    string
	StartTime string
	EndTime   string
}

type ComparisonQuery struct {
	CompareBy string
	Metric    string
}

type ActivityQuery struct {
	StartTime    string
	EndTime      string
	ActivityType string
}

// ReportRequest selects what to export and in which format
// (excel, pdf or csv).
type ReportRequest struct {
	ReportType    string
	Format        string
	IncludeCharts bool
	StartTime     string
	EndTime       string
}

// Report is an exported report document as returned by the backend.
type Report struct {
	Filename string
	Data     []byte
}
