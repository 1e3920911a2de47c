package api

import (
	"context"

	"github.com/unioncup/contestdesk/internal/client/models"
)

// CheckinAPI wraps /api/checkin.
type CheckinAPI struct {
	c *Client
}

func (a *CheckinAPI) Verify(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error) {
	var out models.CheckinVerifyResponse
	if err := a.c.post(ctx, "/api/checkin/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CheckinAPI) Stats(ctx context.Context) (*models.CheckinStats, error) {
	var out models.CheckinStats
	if err := a.c.get(ctx, "/api/checkin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CheckinAPI) Logs(ctx context.Context) ([]models.CheckinLog, error) {
	var out []models.CheckinLog
	if err := a.c.get(ctx, "/api/checkin/logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
