package store

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/logging"
)

type scoreAPI interface {
	Submit(ctx context.Context, req models.ScoreSubmitRequest) (*models.ScoreSubmitResponse, error)
	List(ctx context.Context, q models.ScoreQuery) (*models.Page[models.Score], error)
	Get(ctx context.Context, id int) (*models.Score, error)
	Update(ctx context.Context, id int, score float64) (*models.Score, error)
	Delete(ctx context.Context, id int) error
	ByParticipant(ctx context.Context, participantID int) ([]models.Score, error)
	ByJudge(ctx context.Context, judgeID int, q models.ScoreQuery) (*models.Page[models.Score], error)
	Ranking(ctx context.Context, groupID, limit int) ([]models.RankingEntry, error)
	GroupRanking(ctx context.Context) ([]models.GroupRankingEntry, error)
	PendingParticipants(ctx context.Context, judgeID int) ([]models.Participant, error)
	RealTimeStats(ctx context.Context) (*models.RealTimeScoreStats, error)
	BatchSubmit(ctx context.Context, req models.BatchSubmitScoresRequest) (*models.BatchResult, error)
}

// distributionRanges are the five fixed score buckets. Every bucket is
// half-open except the last, which includes a perfect 10.
var distributionRanges = [5]string{"0-2", "2-4", "4-6", "6-8", "8-10"}

// ScoreStore caches scores, rankings, the judge's pending list and the
// real-time scoring snapshot.
type ScoreStore struct {
	mu       sync.Mutex
	api      scoreAPI
	notifier Notifier
	log      logging.Logger

	items        []models.Score
	total        int
	ranking      []models.RankingEntry
	groupRanking []models.GroupRankingEntry
	pending      []models.Participant
	realTime     *models.RealTimeScoreStats
	query        models.ScoreQuery

	loading  bool
	fetchGen uint64
}

func NewScoreStore(api scoreAPI, notifier Notifier, log logging.Logger) *ScoreStore {
	return &ScoreStore{
		api:      api,
		notifier: notifier,
		log:      log,
		query:    models.ScoreQuery{Page: 1, Size: 20},
	}
}

func (s *ScoreStore) SetQuery(q models.ScoreQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Page == 0 {
		q.Page = s.query.Page
	}
	if q.Size == 0 {
		q.Size = s.query.Size
	}
	s.query = q
}

func (s *ScoreStore) Query() models.ScoreQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *ScoreStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	q := s.query
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.fetchGen {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	page, err := s.api.List(ctx, q)
	if err != nil {
		s.log.Error(ctx, "fetch scores", "error", err)
		s.notifier.AddNotification(NotificationError, "Load failed", "Could not load scores")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return nil
	}
	s.items = page.Items
	s.total = page.Total
	return nil
}

// Submit sends one score and, once confirmed, re-fetches the real-time
// snapshot so the board reflects the new mark immediately.
func (s *ScoreStore) Submit(ctx context.Context, req models.ScoreSubmitRequest) (*models.Score, error) {
	resp, err := s.api.Submit(ctx, req)
	if err != nil {
		s.log.Error(ctx, "submit score", "participant", req.ParticipantID, "error", err)
		s.notifier.AddNotification(NotificationError, "Submit failed", "Could not submit score")
		return nil, err
	}

	s.mu.Lock()
	s.items = append([]models.Score{resp.Score}, s.items...)
	s.total++
	for i := range s.pending {
		if s.pending[i].ID == req.ParticipantID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Score submitted", resp.Score.ParticipantName)
	s.notifier.UpdateLastUpdateTime()

	if err := s.FetchRealTime(ctx); err != nil {
		s.log.Warn(ctx, "refresh real-time stats after submit", "error", err)
	}
	return &resp.Score, nil
}

func (s *ScoreStore) Update(ctx context.Context, id int, score float64) (*models.Score, error) {
	updated, err := s.api.Update(ctx, id, score)
	if err != nil {
		s.log.Error(ctx, "update score", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Update failed", "Could not update score")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Score updated", "")
	s.notifier.UpdateLastUpdateTime()
	return updated, nil
}

func (s *ScoreStore) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete score", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Delete failed", "Could not delete score")
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.total--
			break
		}
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Score deleted", "")
	s.notifier.UpdateLastUpdateTime()
	return nil
}

func (s *ScoreStore) ByParticipant(ctx context.Context, participantID int) ([]models.Score, error) {
	scores, err := s.api.ByParticipant(ctx, participantID)
	if err != nil {
		s.log.Error(ctx, "fetch participant scores", "participant", participantID, "error", err)
		return nil, err
	}
	return scores, nil
}

func (s *ScoreStore) ByJudge(ctx context.Context, judgeID int, q models.ScoreQuery) (*models.Page[models.Score], error) {
	page, err := s.api.ByJudge(ctx, judgeID, q)
	if err != nil {
		s.log.Error(ctx, "fetch judge scores", "judge", judgeID, "error", err)
		return nil, err
	}
	return page, nil
}

func (s *ScoreStore) FetchRanking(ctx context.Context, groupID, limit int) error {
	ranking, err := s.api.Ranking(ctx, groupID, limit)
	if err != nil {
		s.log.Error(ctx, "fetch ranking", "error", err)
		return err
	}
	s.mu.Lock()
	s.ranking = ranking
	s.mu.Unlock()
	return nil
}

func (s *ScoreStore) FetchGroupRanking(ctx context.Context) error {
	ranking, err := s.api.GroupRanking(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch group ranking", "error", err)
		return err
	}
	s.mu.Lock()
	s.groupRanking = ranking
	s.mu.Unlock()
	return nil
}

// FetchPending loads the entrants the judge still has to score; judgeID zero
// means the logged-in judge.
func (s *ScoreStore) FetchPending(ctx context.Context, judgeID int) error {
	pending, err := s.api.PendingParticipants(ctx, judgeID)
	if err != nil {
		s.log.Error(ctx, "fetch pending participants", "error", err)
		return err
	}
	s.mu.Lock()
	s.pending = pending
	s.mu.Unlock()
	return nil
}

func (s *ScoreStore) FetchRealTime(ctx context.Context) error {
	stats, err := s.api.RealTimeStats(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch real-time stats", "error", err)
		return err
	}
	s.mu.Lock()
	s.realTime = stats
	s.mu.Unlock()
	return nil
}

func (s *ScoreStore) BatchSubmit(ctx context.Context, req models.BatchSubmitScoresRequest) (*models.BatchResult, error) {
	resp, err := s.api.BatchSubmit(ctx, req)
	if err != nil {
		s.log.Error(ctx, "batch submit scores", "error", err)
		s.notifier.AddNotification(NotificationError, "Submit failed", "Could not submit scores")
		return nil, err
	}
	s.notifier.AddNotification(NotificationSuccess, "Scores submitted", "")
	s.notifier.UpdateLastUpdateTime()
	if err := s.Fetch(ctx); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *ScoreStore) Items() []models.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Score, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ScoreStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *ScoreStore) Ranking() []models.RankingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RankingEntry, len(s.ranking))
	copy(out, s.ranking)
	return out
}

func (s *ScoreStore) GroupRanking() []models.GroupRankingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.GroupRankingEntry, len(s.groupRanking))
	copy(out, s.groupRanking)
	return out
}

func (s *ScoreStore) Pending() []models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Participant, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *ScoreStore) RealTime() *models.RealTimeScoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.realTime == nil {
		return nil
	}
	stats := *s.realTime
	return &stats
}

func (s *ScoreStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Distribution buckets the cached scores into the five fixed ranges.
func (s *ScoreStore) Distribution() []models.DistributionBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := [5]int{}
	for _, sc := range s.items {
		counts[bucketIndex(sc.Score)]++
	}

	out := make([]models.DistributionBucket, 5)
	for i := range out {
		out[i] = models.DistributionBucket{Range: distributionRanges[i], Count: counts[i]}
		if len(s.items) > 0 {
			out[i].Percentage = math.Round(float64(counts[i])/float64(len(s.items))*10000) / 100
		}
	}
	return out
}

func bucketIndex(score float64) int {
	switch {
	case score < 2:
		return 0
	case score < 4:
		return 1
	case score < 6:
		return 2
	case score < 8:
		return 3
	default:
		return 4
	}
}

// AvgScore averages the cached scores, rounded to two decimals; 0 when the
// cache is empty.
func (s *ScoreStore) AvgScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return 0
	}
	sum := 0.0
	for _, sc := range s.items {
		sum += sc.Score
	}
	return math.Round(sum/float64(len(s.items))*100) / 100
}

func (s *ScoreStore) MaxScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0.0
	for _, sc := range s.items {
		if sc.Score > max {
			max = sc.Score
		}
	}
	return max
}

func (s *ScoreStore) MinScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return 0
	}
	min := s.items[0].Score
	for _, sc := range s.items[1:] {
		if sc.Score < min {
			min = sc.Score
		}
	}
	return min
}

// JudgeStats aggregates the cached scores per judge, sorted by judge name.
// Averages are rounded to two decimals.
func (s *ScoreStore) JudgeStats() []models.JudgeScoreStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	type acc struct {
		count int
		sum   float64
		max   float64
		min   float64
	}
	byJudge := map[string]*acc{}
	for _, sc := range s.items {
		a, ok := byJudge[sc.JudgeName]
		if !ok {
			a = &acc{max: sc.Score, min: sc.Score}
			byJudge[sc.JudgeName] = a
		}
		a.count++
		a.sum += sc.Score
		if sc.Score > a.max {
			a.max = sc.Score
		}
		if sc.Score < a.min {
			a.min = sc.Score
		}
	}

	out := make([]models.JudgeScoreStat, 0, len(byJudge))
	for name, a := range byJudge {
		out = append(out, models.JudgeScoreStat{
			JudgeName:   name,
			ScoresCount: a.count,
			AvgScore:    math.Round(a.sum/float64(a.count)*100) / 100,
			MaxScore:    a.max,
			MinScore:    a.min,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JudgeName < out[j].JudgeName })
	return out
}
