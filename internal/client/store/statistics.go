package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/client/utils"
	"github.com/unioncup/contestdesk/internal/logging"
)

type statisticsAPI interface {
	Overview(ctx context.Context) (*models.Statistics, error)
	RealTime(ctx context.Context) (json.RawMessage, error)
	CheckinStats(ctx context.Context, q models.StatsQuery) (json.RawMessage, error)
	ScoreStats(ctx context.Context, q models.StatsQuery) (json.RawMessage, error)
	GroupStats(ctx context.Context) (json.RawMessage, error)
	JudgeStats(ctx context.Context) (json.RawMessage, error)
	Trends(ctx context.Context, q models.TrendsQuery) (json.RawMessage, error)
	Comparison(ctx context.Context, q models.ComparisonQuery) (json.RawMessage, error)
	SystemStats(ctx context.Context) (json.RawMessage, error)
	ActivityStats(ctx context.Context, q models.ActivityQuery) (json.RawMessage, error)
	ExportReport(ctx context.Context, req models.ReportRequest) (*models.Report, error)
}

// StatisticsStore caches the contest-wide overview plus the raw breakdown
// payloads the board renders as-is.
type StatisticsStore struct {
	mu       sync.Mutex
	api      statisticsAPI
	notifier Notifier
	log      logging.Logger

	overview    *models.Statistics
	realTime    json.RawMessage
	checkin     json.RawMessage
	scores      json.RawMessage
	groups      json.RawMessage
	judges      json.RawMessage
	lastFetched time.Time

	loading  bool
	fetchGen uint64

	now func() time.Time
}

func NewStatisticsStore(api statisticsAPI, notifier Notifier, log logging.Logger) *StatisticsStore {
	return &StatisticsStore{
		api:      api,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (s *StatisticsStore) FetchOverview(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.fetchGen {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	overview, err := s.api.Overview(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch statistics overview", "error", err)
		s.notifier.AddNotification(NotificationError, "Load failed", "Could not load statistics")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return nil
	}
	s.overview = overview
	s.lastFetched = s.now()
	return nil
}

func (s *StatisticsStore) FetchRealTime(ctx context.Context) error {
	raw, err := s.api.RealTime(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch real-time statistics", "error", err)
		return err
	}
	s.mu.Lock()
	s.realTime = raw
	s.lastFetched = s.now()
	s.mu.Unlock()
	return nil
}

func (s *StatisticsStore) FetchCheckinStats(ctx context.Context, q models.StatsQuery) (json.RawMessage, error) {
	raw, err := s.api.CheckinStats(ctx, q)
	if err != nil {
		s.log.Error(ctx, "fetch check-in statistics", "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.checkin = raw
	s.mu.Unlock()
	return raw, nil
}

func (s *StatisticsStore) FetchScoreStats(ctx context.Context, q models.StatsQuery) (json.RawMessage, error) {
	raw, err := s.api.ScoreStats(ctx, q)
	if err != nil {
		s.log.Error(ctx, "fetch score statistics", "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.scores = raw
	s.mu.Unlock()
	return raw, nil
}

func (s *StatisticsStore) FetchGroupStats(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.api.GroupStats(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch group statistics", "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.groups = raw
	s.mu.Unlock()
	return raw, nil
}

func (s *StatisticsStore) FetchJudgeStats(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.api.JudgeStats(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch judge statistics", "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.judges = raw
	s.mu.Unlock()
	return raw, nil
}

func (s *StatisticsStore) Trends(ctx context.Context, q models.TrendsQuery) (json.RawMessage, error) {
	return s.api.Trends(ctx, q)
}

func (s *StatisticsStore) Comparison(ctx context.Context, q models.ComparisonQuery) (json.RawMessage, error) {
	return s.api.Comparison(ctx, q)
}

func (s *StatisticsStore) SystemStats(ctx context.Context) (json.RawMessage, error) {
	return s.api.SystemStats(ctx)
}

func (s *StatisticsStore) ActivityStats(ctx context.Context, q models.ActivityQuery) (json.RawMessage, error) {
	return s.api.ActivityStats(ctx, q)
}

// RefreshAll re-fetches every cached breakdown; individual failures are
// logged but do not stop the rest. Returns the first error seen.
func (s *StatisticsStore) RefreshAll(ctx context.Context) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	keep(s.FetchOverview(ctx))
	keep(s.FetchRealTime(ctx))
	_, err := s.FetchCheckinStats(ctx, models.StatsQuery{})
	keep(err)
	_, err = s.FetchScoreStats(ctx, models.StatsQuery{})
	keep(err)
	_, err = s.FetchGroupStats(ctx)
	keep(err)
	_, err = s.FetchJudgeStats(ctx)
	keep(err)
	return first
}

// ExportReportToFile downloads a report and writes it into dir under the
// server-provided filename.
func (s *StatisticsStore) ExportReportToFile(ctx context.Context, req models.ReportRequest, dir string) (string, error) {
	report, err := s.api.ExportReport(ctx, req)
	if err != nil {
		s.log.Error(ctx, "export report", "error", err)
		s.notifier.AddNotification(NotificationError, "Export failed", "Could not export report")
		return "", err
	}

	path, err := utils.SaveFile(dir, report.Filename, report.Data)
	if err != nil {
		s.log.Error(ctx, "save report", "error", err)
		s.notifier.AddNotification(NotificationError, "Export failed", "Could not save report")
		return "", err
	}

	s.notifier.AddNotification(NotificationSuccess, "Report exported", report.Filename)
	return path, nil
}

// NeedsRefresh reports whether the cached data is older than maxAge (or was
// never fetched).
func (s *StatisticsStore) NeedsRefresh(maxAge time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFetched.IsZero() {
		return true
	}
	return s.now().Sub(s.lastFetched) > maxAge
}

// ClearAll drops every cached value, forcing the next read to refetch.
func (s *StatisticsStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overview = nil
	s.realTime = nil
	s.checkin = nil
	s.scores = nil
	s.groups = nil
	s.judges = nil
	s.lastFetched = time.Time{}
}

func (s *StatisticsStore) Overview() *models.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overview == nil {
		return nil
	}
	overview := *s.overview
	return &overview
}

func (s *StatisticsStore) RealTimeRaw() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.realTime
}

func (s *StatisticsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *StatisticsStore) LastFetched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetched
}
