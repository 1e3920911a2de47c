package store

import (
	"context"
	"sync"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/logging"
)

type judgeAPI interface {
	List(ctx context.Context, q models.JudgeQuery) (*models.Page[models.Judge], error)
	Get(ctx context.Context, id int) (*models.Judge, error)
	Create(ctx context.Context, req models.CreateJudgeRequest) (*models.Judge, error)
	Update(ctx context.Context, id int, req models.UpdateJudgeRequest) (*models.Judge, error)
	Delete(ctx context.Context, id int) error
	SetActive(ctx context.Context, id int, active bool) error
	ResetPassword(ctx context.Context, id int, newPassword string) error
	BatchResetPassword(ctx context.Context, ids []int, newPassword string) (*models.BatchResult, error)
	CheckUsername(ctx context.Context, username string, excludeID int) (*models.UsernameCheckResponse, error)
	Import(ctx context.Context, req models.ImportJudgesRequest) (*models.BatchResult, error)
	ScoringProgress(ctx context.Context, judgeID int) ([]models.ScoringProgress, error)
}

// JudgeStore caches the judge roster and the per-judge scoring progress.
type JudgeStore struct {
	mu       sync.Mutex
	api      judgeAPI
	notifier Notifier
	log      logging.Logger

	items    []models.Judge
	total    int
	progress []models.ScoringProgress
	query    models.JudgeQuery

	loading  bool
	fetchGen uint64
}

func NewJudgeStore(api judgeAPI, notifier Notifier, log logging.Logger) *JudgeStore {
	return &JudgeStore{
		api:      api,
		notifier: notifier,
		log:      log,
		query:    models.JudgeQuery{Page: 1, Size: 20},
	}
}

func (s *JudgeStore) SetQuery(q models.JudgeQuery) {
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

func (s *JudgeStore) Query() models.JudgeQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *JudgeStore) Fetch(ctx context.Context) error {
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
		s.log.Error(ctx, "fetch judges", "error", err)
		s.notifier.AddNotification(NotificationError, "Load failed", "Could not load judges")
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

func (s *JudgeStore) Create(ctx context.Context, req models.CreateJudgeRequest) (*models.Judge, error) {
	j, err := s.api.Create(ctx, req)
	if err != nil {
		s.log.Error(ctx, "create judge", "error", err)
		s.notifier.AddNotification(NotificationError, "Create failed", "Could not create judge")
		return nil, err
	}

	s.mu.Lock()
	s.items = append([]models.Judge{*j}, s.items...)
	s.total++
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Judge created", j.Name)
	s.notifier.UpdateLastUpdateTime()
	return j, nil
}

func (s *JudgeStore) Update(ctx context.Context, id int, req models.UpdateJudgeRequest) (*models.Judge, error) {
	j, err := s.api.Update(ctx, id, req)
	if err != nil {
		s.log.Error(ctx, "update judge", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Update failed", "Could not update judge")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == j.ID {
			s.items[i] = *j
			break
		}
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Judge updated", j.Name)
	s.notifier.UpdateLastUpdateTime()
	return j, nil
}

func (s *JudgeStore) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete judge", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Delete failed", "Could not delete judge")
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

	s.notifier.AddNotification(NotificationSuccess, "Judge deleted", "")
	s.notifier.UpdateLastUpdateTime()
	return nil
}

// SetActive toggles whether the judge may log in and score.
func (s *JudgeStore) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.api.SetActive(ctx, id, active); err != nil {
		s.log.Error(ctx, "set judge active", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Update failed", "Could not change judge status")
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsActive = active
			break
		}
	}
	s.mu.Unlock()

	s.notifier.UpdateLastUpdateTime()
	return nil
}

func (s *JudgeStore) ResetPassword(ctx context.Context, id int, newPassword string) error {
	if err := s.api.ResetPassword(ctx, id, newPassword); err != nil {
		s.log.Error(ctx, "reset judge password", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Reset failed", "Could not reset password")
		return err
	}
	s.notifier.AddNotification(NotificationSuccess, "Password reset", "")
	return nil
}

func (s *JudgeStore) BatchResetPassword(ctx context.Context, ids []int, newPassword string) (*models.BatchResult, error) {
	resp, err := s.api.BatchResetPassword(ctx, ids, newPassword)
	if err != nil {
		s.log.Error(ctx, "batch reset judge passwords", "error", err)
		s.notifier.AddNotification(NotificationError, "Reset failed", "Could not reset passwords")
		return nil, err
	}
	s.notifier.AddNotification(NotificationSuccess, "Passwords reset", "")
	return resp, nil
}

func (s *JudgeStore) CheckUsername(ctx context.Context, username string, excludeID int) (bool, error) {
	resp, err := s.api.CheckUsername(ctx, username, excludeID)
	if err != nil {
		s.log.Error(ctx, "check username", "error", err)
		return false, err
	}
	return resp.Available, nil
}

func (s *JudgeStore) Import(ctx context.Context, req models.ImportJudgesRequest) (*models.BatchResult, error) {
	resp, err := s.api.Import(ctx, req)
	if err != nil {
		s.log.Error(ctx, "import judges", "error", err)
		s.notifier.AddNotification(NotificationError, "Import failed", "")
		return nil, err
	}
	s.notifier.AddNotification(NotificationSuccess, "Import finished", "")
	s.notifier.UpdateLastUpdateTime()
	if err := s.Fetch(ctx); err != nil {
		return resp, err
	}
	return resp, nil
}

// FetchProgress loads scoring progress; judgeID zero means all judges.
func (s *JudgeStore) FetchProgress(ctx context.Context, judgeID int) error {
	progress, err := s.api.ScoringProgress(ctx, judgeID)
	if err != nil {
		s.log.Error(ctx, "fetch scoring progress", "error", err)
		return err
	}
	s.mu.Lock()
	s.progress = progress
	s.mu.Unlock()
	return nil
}

func (s *JudgeStore) Items() []models.Judge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Judge, len(s.items))
	copy(out, s.items)
	return out
}

func (s *JudgeStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *JudgeStore) Progress() []models.ScoringProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ScoringProgress, len(s.progress))
	copy(out, s.progress)
	return out
}

func (s *JudgeStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ActiveCount counts judges allowed to score, over the cached page.
func (s *JudgeStore) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, j := range s.items {
		if j.IsActive {
			count++
		}
	}
	return count
}
