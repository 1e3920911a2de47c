package models

// Score is a single judge's mark for a participant, on a 0–10 scale with one
// decimal. Uniqueness of the (participant, judge) pair is a backend
// invariant, not enforced here.
type Score struct {
	ID              int     `json:"id"`
	ParticipantID   int     `json:"participant_id"`
	ParticipantName string  `json:"participant_name"`
	JudgeID         int     `json:"judge_id"`
	JudgeName       string  `json:"judge_name"`
	Score           float64 `json:"score"`
	CreatedAt       string  `json:"created_at"`
}

type ScoreSubmitRequest struct {
	ParticipantID int     `json:"participant_id"`
	Score         float64 `json:"score"`
}

type ScoreSubmitResponse struct {
	Success bool  `json:"success"`
	Score   Score `json:"score"`
}

type ScoreQuery struct {
	Page          int
	Size          int
	ParticipantID *int
	JudgeID       *int
	GroupID       *int
	MinScore      *float64
	MaxScore      *float64
	StartTime     string
	EndTime       string
}

type BatchSubmitScoresRequest struct {
	Scores []ScoreSubmitRequest `json:"scores"`
}

// RankingEntry is one row of the participant leaderboard.
type RankingEntry struct {
	Rank            int     `json:"rank"`
	ParticipantID   int     `json:"participant_id"`
	ParticipantName string  `json:"participant_name"`
	Organization    string  `json:"organization"`
	GroupName       string  `json:"group_name,omitempty"`
	AvgScore        float64 `json:"avg_score"`
	ScoreCount      int     `json:"score_count"`
}

type GroupRankingEntry struct {
	Rank        int     `json:"rank"`
	GroupID     int     `json:"group_id"`
	GroupName   string  `json:"group_name"`
	AvgScore    float64 `json:"avg_score"`
	MemberCount int     `json:"member_count"`
}

// JudgeScoreStat aggregates one judge's cached marks.
type JudgeScoreStat struct {
	JudgeName   string  `json:"judge_name"`
	ScoresCount int     `json:"scores_count"`
	AvgScore    float64 `json:"avg_score"`
	MaxScore    float64 `json:"max_score"`
	MinScore    float64 `json:"min_score"`
}

// RealTimeScoreStats is the periodically re-fetched scoring snapshot used by
// the display board.
type RealTimeScoreStats struct {
	TotalScores        int                  `json:"total_scores"`
	AvgScore           float64              `json:"avg_score"`
	MaxScore           float64              `json:"max_score"`
	MinScore           float64              `json:"min_score"`
	ParticipantsScored int                  `json:"participants_scored"`
	ParticipantsTotal  int                  `json:"participants_total"`
	ScoringProgress    float64              `json:"scoring_progress"`
	RecentScores       []Score              `json:"recent_scores"`
	ScoreDistribution  []DistributionBucket `json:"score_distribution"`
	JudgeProgress      []ScoringProgress    `json:"judge_progress"`
}

// DistributionBucket is one fixed score range with its population.
type DistributionBucket struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
