package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/unioncup/contestdesk/internal/client/models"
)

// JudgesAPI wraps /api/judges, including the login/logout endpoints used by
// the auth store.
type JudgesAPI struct {
	c *Client
}

func (a *JudgesAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := a.c.post(ctx, "/api/judges/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *JudgesAPI) Logout(ctx context.Context) error {
	return a.c.post(ctx, "/api/judges/logout", nil, nil)
}

func (a *JudgesAPI) Current(ctx context.Context) (*models.Judge, error) {
	var out models.Judge
	if err := a.c.get(ctx, "/api/judges/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func judgeQueryValues(q models.JudgeQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Organization != "" {
		v.Set("organization", q.Organization)
	}
	if q.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (a *JudgesAPI) List(ctx context.Context, q models.JudgeQuery) (*models.Page[models.Judge], error) {
	var out models.Page[models.Judge]
	if err := a.c.get(ctx, "/api/judges", judgeQueryValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *JudgesAPI) Get(ctx context.Context, id int) (*models.Judge, error) {
	var out models.Judge
	if err := a.c.get(ctx, fmt.Sprintf("/api/judges/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *JudgesAPI) Create(ctx context.Context, req models.CreateJudgeRequest) (*models.Judge, error) {
	var out models.Judge
	if err := a.c.post(ctx, "/api/judges", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *JudgesAPI) Update(ctx context.Context, id int, req models.UpdateJudgeRequest) (*models.Judge, error) {
	var out models.Judge
	if err := a.c.put(ctx, fmt.Sprintf("/api/judges/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *JudgesAPI) Delete(ctx context.Context, id int) error {
	return a.c.delete(ctx, fmt.Sprintf("/api/judges/%d", id))
}

func (a *JudgesAPI) SetActive(ctx context.Context, id int, active bool) error {
	body := map[string]bool{"is_active": active}
	return a.c.put(ctx, fmt.Sprintf("/api/judges/%d/active", id), body, nil)
}

func (a *JudgesAPI) ResetPassword(ctx context.Context, id int, newPassword string) error {
	body := map[string]string{"password": newPassword}
	return a.c.post(ctx, fmt.Sprintf("/api/judges/%d/reset-password", id), body, nil)
}

func (a *JudgesAPI) BatchResetPassword(ctx context.Context, ids []int, newPassword string) (*models.BatchResult, error) {
	body := map[string]any{"judge_ids": ids, "password": newPassword}
	var out models.BatchResult
	if err := a.c.post(ctx, "/api/judges/reset-password", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckUsername reports whether a username is free. excludeID, when non-zero,
// ignores the given judge (used when editing an existing account).
func (a *JudgesAPI) CheckUsername(ctx context.Context, username string, excludeID int) (*models.UsernameCheckResponse, error) {
	v := url.Values{}
	v.Set("username", username)
	if excludeID > 0 {
		v.Set("exclude_id", strconv.Itoa(excludeID))
	}
	var out models.UsernameCheckResponse
	if err := a.c.get(ctx, "/api/judges/check-username", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *JudgesAPI) Import(ctx context.Context, req models.ImportJudgesRequest) (*models.BatchResult, error) {
	var out models.BatchResult
	if err := a.c.post(ctx, "/api/judges/import", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoringProgress returns progress for one judge, or for all judges when
// judgeID is zero.
func (a *JudgesAPI) ScoringProgress(ctx context.Context, judgeID int) ([]models.ScoringProgress, error) {
	v := url.Values{}
	if judgeID > 0 {
		v.Set("judge_id", strconv.Itoa(judgeID))
	}
	var out []models.ScoringProgress
	if err := a.c.get(ctx, "/api/judges/scoring-progress", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}
