package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unioncup/contestdesk/internal/client/models"
)

type fakeJudgeAPI struct {
	judges    []models.Judge
	listErr   error
	available bool
}

func (f *fakeJudgeAPI) List(ctx context.Context, q models.JudgeQuery) (*models.Page[models.Judge], error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &models.Page[models.Judge]{Items: f.judges, Total: len(f.judges)}, nil
}

func (f *fakeJudgeAPI) Get(ctx context.Context, id int) (*models.Judge, error) {
	return &models.Judge{ID: id}, nil
}

func (f *fakeJudgeAPI) Create(ctx context.Context, req models.CreateJudgeRequest) (*models.Judge, error) {
	return &models.Judge{ID: 20, Name: req.Name, Username: req.Username, IsActive: true}, nil
}

func (f *fakeJudgeAPI) Update(ctx context.Context, id int, req models.UpdateJudgeRequest) (*models.Judge, error) {
	return &models.Judge{ID: id}, nil
}

func (f *fakeJudgeAPI) Delete(ctx context.Context, id int) error { return nil }

func (f *fakeJudgeAPI) SetActive(ctx context.Context, id int, active bool) error { return nil }

func (f *fakeJudgeAPI) ResetPassword(ctx context.Context, id int, newPassword string) error {
	return nil
}

func (f *fakeJudgeAPI) BatchResetPassword(ctx context.Context, ids []int, newPassword string) (*models.BatchResult, error) {
	return &models.BatchResult{SuccessCount: len(ids)}, nil
}

func (f *fakeJudgeAPI) CheckUsername(ctx context.Context, username string, excludeID int) (*models.UsernameCheckResponse, error) {
	return &models.UsernameCheckResponse{Available: f.available}, nil
}

func (f *fakeJudgeAPI) Import(ctx context.Context, req models.ImportJudgesRequest) (*models.BatchResult, error) {
	return &models.BatchResult{SuccessCount: len(req.Judges)}, nil
}

func (f *fakeJudgeAPI) ScoringProgress(ctx context.Context, judgeID int) ([]models.ScoringProgress, error) {
	return []models.ScoringProgress{{JudgeID: 1, ScoredCount: 4, TotalCount: 10, ProgressRate: 40}}, nil
}

func newTestJudgeStore(api *fakeJudgeAPI) (*JudgeStore, *fakeNotifier) {
	n := &fakeNotifier{}
	return NewJudgeStore(api, n, nopLogger()), n
}

func TestJudgeStore_FetchReplaces(t *testing.T) {
	api := &fakeJudgeAPI{judges: []models.Judge{{ID: 1, IsActive: true}, {ID: 2}}}
	s, _ := newTestJudgeStore(api)

	require.NoError(t, s.Fetch(context.Background()))
	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, 1, s.ActiveCount())
}

func TestJudgeStore_FailedFetchKeepsCache(t *testing.T) {
	api := &fakeJudgeAPI{listErr: errors.New("boom")}
	s, n := newTestJudgeStore(api)
	s.items = []models.Judge{{ID: 1}}
	s.total = 1

	require.Error(t, s.Fetch(context.Background()))
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Total())
	assert.False(t, s.Loading())
	assert.Equal(t, []NotificationKind{NotificationError}, n.kinds())
}

func TestJudgeStore_SetActivePatches(t *testing.T) {
	api := &fakeJudgeAPI{}
	s, _ := newTestJudgeStore(api)
	s.items = []models.Judge{{ID: 1, IsActive: true}}

	require.NoError(t, s.SetActive(context.Background(), 1, false))
	assert.False(t, s.Items()[0].IsActive)
	assert.Zero(t, s.ActiveCount())
}

func TestJudgeStore_CreateAndDeleteAdjustTotal(t *testing.T) {
	api := &fakeJudgeAPI{}
	s, _ := newTestJudgeStore(api)

	j, err := s.Create(context.Background(), models.CreateJudgeRequest{Name: "Eve", Username: "eve"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Total())

	require.NoError(t, s.Delete(context.Background(), j.ID))
	assert.Zero(t, s.Total())
	assert.Empty(t, s.Items())
}

func TestJudgeStore_FetchProgress(t *testing.T) {
	api := &fakeJudgeAPI{}
	s, _ := newTestJudgeStore(api)

	require.NoError(t, s.FetchProgress(context.Background(), 0))
	progress := s.Progress()
	require.Len(t, progress, 1)
	assert.Equal(t, 40.0, progress[0].ProgressRate)
}
