package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/unioncup/contestdesk/internal/client/models"
)

// ScoresAPI wraps /api/scores.
type ScoresAPI struct {
	c *Client
}

func scoreQueryValues(q models.ScoreQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.ParticipantID != nil {
		v.Set("participant_id", strconv.Itoa(*q.ParticipantID))
	}
	if q.JudgeID != nil {
		v.Set("judge_id", strconv.Itoa(*q.JudgeID))
	}
	if q.GroupID != nil {
		v.Set("group_id", strconv.Itoa(*q.GroupID))
	}
	if q.MinScore != nil {
		v.Set("min_score", strconv.FormatFloat(*q.MinScore, 'f', -1, 64))
	}
	if q.MaxScore != nil {
		v.Set("max_score", strconv.FormatFloat(*q.MaxScore, 'f', -1, 64))
	}
	if q.StartTime != "" {
		v.Set("start_time", q.StartTime)
	}
	if q.EndTime != "" {
		v.Set("end_time", q.EndTime)
	}
	return v
}

func (a *ScoresAPI) Submit(ctx context.Context, req models.ScoreSubmitRequest) (*models.ScoreSubmitResponse, error) {
	var out models.ScoreSubmitResponse
	if err := a.c.post(ctx, "/api/scores", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ScoresAPI) List(ctx context.Context, q models.ScoreQuery) (*models.Page[models.Score], error) {
	var out models.Page[models.Score]
	if err := a.c.get(ctx, "/api/scores", scoreQueryValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ScoresAPI) Get(ctx context.Context, id int) (*models.Score, error) {
	var out models.Score
	if err := a.c.get(ctx, fmt.Sprintf("/api/scores/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ScoresAPI) Update(ctx context.Context, id int, score float64) (*models.Score, error) {
	body := map[string]float64{"score": score}
	var out models.Score
	if err := a.c.put(ctx, fmt.Sprintf("/api/scores/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ScoresAPI) Delete(ctx context.Context, id int) error {
	return a.c.delete(ctx, fmt.Sprintf("/api/scores/%d", id))
}

func (a *ScoresAPI) ByParticipant(ctx context.Context, participantID int) ([]models.Score, error) {
	var out []models.Score
	if err := a.c.get(ctx, fmt.Sprintf("/api/scores/participant/%d", participantID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ScoresAPI) ByJudge(ctx context.Context, judgeID int, q models.ScoreQuery) (*models.Page[models.Score], error) {
	var out models.Page[models.Score]
	if err := a.c.get(ctx, fmt.Sprintf("/api/scores/judge/%d", judgeID), scoreQueryValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ranking returns the participant leaderboard, optionally scoped to a group
// and truncated to limit entries.
func (a *ScoresAPI) Ranking(ctx context.Context, groupID, limit int) ([]models.RankingEntry, error) {
	v := url.Values{}
	if groupID > 0 {
		v.Set("group_id", strconv.Itoa(groupID))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out []models.RankingEntry
	if err := a.c.get(ctx, "/api/scores/ranking", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ScoresAPI) GroupRanking(ctx context.Context) ([]models.GroupRankingEntry, error) {
	var out []models.GroupRankingEntry
	if err := a.c.get(ctx, "/api/scores/group-ranking", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingParticipants lists entrants the given judge has not scored yet;
// judgeID zero means the calling judge.
func (a *ScoresAPI) PendingParticipants(ctx context.Context, judgeID int) ([]models.Participant, error) {
	v := url.Values{}
	if judgeID > 0 {
		v.Set("judge_id", strconv.Itoa(judgeID))
	}
	var out []models.Participant
	if err := a.c.get(ctx, "/api/scores/pending", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ScoresAPI) RealTimeStats(ctx context.Context) (*models.RealTimeScoreStats, error) {
	var out models.RealTimeScoreStats
	if err := a.c.get(ctx, "/api/scores/realtime", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ScoresAPI) BatchSubmit(ctx context.Context, req models.BatchSubmitScoresRequest) (*models.BatchResult, error) {
	var out models.BatchResult
	if err := a.c.post(ctx, "/api/scores/batch", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
