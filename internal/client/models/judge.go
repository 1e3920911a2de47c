package models

// Judge is a scoring account. Username is the login identity; the password
// is never cached client-side.
type Judge struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Organization string `json:"organization"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CreateJudgeRequest struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Organization string `json:"organization"`
}

type UpdateJudgeRequest struct {
	Name         *string `json:"name,omitempty"`
	Organization *string `json:"organization,omitempty"`
}

type JudgeQuery struct {
	Page         int
	Size         int
	Organization string
	IsActive     *bool
	Search       string
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token plus the server-issued role.
// Role is authoritative; the client never infers privileges from the
// username.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Judge   Judge  `json:"judge"`
	Role    string `json:"role"`
}

type UsernameCheckResponse struct {
	Available bool `json:"available"`
}

type ImportJudgesRequest struct {
	Judges []CreateJudgeRequest `json:"judges"`
}

// ScoringProgress reports how far a judge has gotten through the roster.
type ScoringProgress struct {
	JudgeID      int     `json:"judge_id"`
	JudgeName    string  `json:"judge_name"`
	ScoredCount  int     `json:"scored_count"`
	TotalCount   int     `json:"total_count"`
	ProgressRate float64 `json:"progress_rate"`
}
