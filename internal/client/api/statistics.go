package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/unioncup/contestdesk/internal/client/models"
)

// StatisticsAPI wraps /api/statistics. Breakdown payload shapes vary with
// the group-by dimension, so several endpoints return raw JSON for the
// caller to render.
type StatisticsAPI struct {
	c *Client
}

func statsQueryValues(q models.StatsQuery) url.Values {
	v := url.Values{}
	if q.StartTime != "" {
		v.Set("start_time", q.StartTime)
	}
	if q.EndTime != "" {
		v.Set("end_time", q.EndTime)
	}
	if q.GroupBy != "" {
		v.Set("group_by", q.GroupBy)
	}
	return v
}

func (a *StatisticsAPI) Overview(ctx context.Context) (*models.Statistics, error) {
	var out models.Statistics
	if err := a.c.get(ctx, "/api/statistics/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *StatisticsAPI) RealTime(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/realtime", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) CheckinStats(ctx context.Context, q models.StatsQuery) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/checkin", statsQueryValues(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) ScoreStats(ctx context.Context, q models.StatsQuery) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/scores", statsQueryValues(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) GroupStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/groups", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) JudgeStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/judges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) Trends(ctx context.Context, q models.TrendsQuery) (json.RawMessage, error) {
	v := url.Values{}
	if q.Period != "" {
		v.Set("period", q.Period)
	}
	if q.StartTime != "" {
		v.Set("start_time", q.StartTime)
	}
	if q.EndTime != "" {
		v.Set("end_time", q.EndTime)
	}
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/trends", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) Comparison(ctx context.Context, q models.ComparisonQuery) (json.RawMessage, error) {
	v := url.Values{}
	if q.CompareBy != "" {
		v.Set("compare_by", q.CompareBy)
	}
	if q.Metric != "" {
		v.Set("metric", q.Metric)
	}
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/comparison", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) SystemStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/system", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *StatisticsAPI) ActivityStats(ctx context.Context, q models.ActivityQuery) (json.RawMessage, error) {
	v := url.Values{}
	if q.StartTime != "" {
		v.Set("start_time", q.StartTime)
	}
	if q.EndTime != "" {
		v.Set("end_time", q.EndTime)
	}
	if q.ActivityType != "" {
		v.Set("activity_type", q.ActivityType)
	}
	var out json.RawMessage
	if err := a.c.get(ctx, "/api/statistics/activity", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportReport downloads a rendered report document (excel, pdf or csv).
func (a *StatisticsAPI) ExportReport(ctx context.Context, req models.ReportRequest) (*models.Report, error) {
	v := url.Values{}
	if req.ReportType != "" {
		v.Set("report_type", req.ReportType)
	}
	if req.Format != "" {
		v.Set("format", req.Format)
	}
	if req.IncludeCharts {
		v.Set("include_charts", strconv.FormatBool(req.IncludeCharts))
	}
	if req.StartTime != "" {
		v.Set("start_time", req.StartTime)
	}
	if req.EndTime != "" {
		v.Set("end_time", req.EndTime)
	}
	return a.c.download(ctx, "/api/statistics/export", v)
}
