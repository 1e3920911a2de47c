package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unioncup/contestdesk/internal/client/models"
)

type fakeParticipantAPI struct {
	mu          sync.Mutex
	listFn      func(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error)
	deleteCalls []int
	deleteErr   error
	createErr   error
}

func (f *fakeParticipantAPI) List(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error) {
	return f.listFn(ctx, q)
}

func (f *fakeParticipantAPI) Get(ctx context.Context, id int) (*models.Participant, error) {
	return &models.Participant{ID: id}, nil
}

func (f *fakeParticipantAPI) GetByQR(ctx context.Context, qrID string) (*models.Participant, error) {
	return &models.Participant{QRCodeID: qrID}, nil
}

func (f *fakeParticipantAPI) GetQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error) {
	return &models.QRCodeResponse{}, nil
}

func (f *fakeParticipantAPI) Create(ctx context.Context, req models.CreateParticipantRequest) (*models.Participant, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Participant{ID: 99, Name: req.Name, Organization: req.Organization}, nil
}

func (f *fakeParticipantAPI) Update(ctx context.Context, id int, req models.UpdateParticipantRequest) (*models.Participant, error) {
	p := &models.Participant{ID: id}
	if req.Name != nil {
		p.Name = *req.Name
	}
	return p, nil
}

func (f *fakeParticipantAPI) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, id)
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeParticipantAPI) UploadPhoto(ctx context.Context, id int, filename string, data []byte) (*models.FileUploadResponse, error) {
	return &models.FileUploadResponse{Filename: filename, Path: "/photos/" + filename}, nil
}

func (f *fakeParticipantAPI) GenerateQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error) {
	return &models.QRCodeResponse{QRCodeID: "qr-new"}, nil
}

func (f *fakeParticipantAPI) GenerateAllQRCodes(ctx context.Context) (*models.BatchResult, error) {
	return &models.BatchResult{SuccessCount: 3}, nil
}

func (f *fakeParticipantAPI) Import(ctx context.Context, req models.ImportParticipantsRequest) (*models.BatchResult, error) {
	return &models.BatchResult{SuccessCount: len(req.Participants)}, nil
}

type fakeCheckinAPI struct {
	verifyFn func(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error)
}

func (f *fakeCheckinAPI) Verify(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error) {
	return f.verifyFn(ctx, req)
}

func (f *fakeCheckinAPI) Stats(ctx context.Context) (*models.CheckinStats, error) {
	return &models.CheckinStats{}, nil
}

func (f *fakeCheckinAPI) Logs(ctx context.Context) ([]models.CheckinLog, error) {
	return nil, nil
}

func pageOf(items ...models.Participant) *models.Page[models.Participant] {
	return &models.Page[models.Participant]{Items: items, Total: len(items), Page: 1, Size: 20}
}

func newTestParticipantStore(api *fakeParticipantAPI, checkin *fakeCheckinAPI) (*ParticipantStore, *fakeNotifier) {
	n := &fakeNotifier{}
	if checkin == nil {
		checkin = &fakeCheckinAPI{}
	}
	return NewParticipantStore(api, checkin, n, nopLogger()), n
}

func TestParticipantStore_FetchReplacesWholesale(t *testing.T) {
	api := &fakeParticipantAPI{}
	api.listFn = func(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error) {
		return pageOf(models.Participant{ID: 3, Name: "Carol"}), nil
	}
	s, _ := newTestParticipantStore(api, nil)

	// Seed stale cache, then fetch.
	s.items = []models.Participant{{ID: 1}, {ID: 2}}
	s.total = 2

	require.NoError(t, s.Fetch(context.Background()))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Carol", items[0].Name)
	assert.Equal(t, 1, s.Total())
	assert.False(t, s.Loading())
}

func TestParticipantStore_FailedFetchKeepsCache(t *testing.T) {
	api := &fakeParticipantAPI{}
	api.listFn = func(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error) {
		return nil, errors.New("boom")
	}
	s, n := newTestParticipantStore(api, nil)
	s.items = []models.Participant{{ID: 1}, {ID: 2}}
	s.total = 2

	err := s.Fetch(context.Background())
	require.Error(t, err)

	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 2, s.Total())
	assert.False(t, s.Loading())
	assert.Equal(t, []NotificationKind{NotificationError}, n.kinds())
}

func TestParticipantStore_StaleFetchDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0

	api := &fakeParticipantAPI{}
	api.listFn = func(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return pageOf(models.Participant{ID: 1, Name: "old"}), nil
		}
		return pageOf(models.Participant{ID: 2, Name: "new"}), nil
	}
	s, _ := newTestParticipantStore(api, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Fetch(context.Background())
	}()
	<-started

	// Second fetch supersedes the first while it is still in flight.
	require.NoError(t, s.Fetch(context.Background()))
	close(release)
	<-done

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Name)
	assert.False(t, s.Loading())
}

func TestParticipantStore_CreateInsertsAtHead(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, n := newTestParticipantStore(api, nil)
	s.items = []models.Participant{{ID: 1}}
	s.total = 1

	p, err := s.Create(context.Background(), models.CreateParticipantRequest{Name: "Dave"})
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, p.ID, items[0].ID)
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, 1, n.updates)
}

func TestParticipantStore_CreateFailureLeavesCache(t *testing.T) {
	api := &fakeParticipantAPI{createErr: errors.New("rejected")}
	s, n := newTestParticipantStore(api, nil)
	s.total = 5

	_, err := s.Create(context.Background(), models.CreateParticipantRequest{})
	require.Error(t, err)
	assert.Equal(t, 5, s.Total())
	assert.Zero(t, n.updates)
}

func TestParticipantStore_DeleteSplicesAndDecrements(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, _ := newTestParticipantStore(api, nil)
	s.items = []models.Participant{{ID: 1}, {ID: 2}, {ID: 3}}
	s.total = 3

	require.NoError(t, s.Delete(context.Background(), 2))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
	assert.Equal(t, 2, s.Total())
}

func TestParticipantStore_DeleteUncachedStillCallsAPI(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, _ := newTestParticipantStore(api, nil)
	s.items = []models.Participant{{ID: 1}}
	s.total = 1

	require.NoError(t, s.Delete(context.Background(), 42))

	assert.Equal(t, []int{42}, api.deleteCalls)
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Total())
}

func TestParticipantStore_CheckinRate(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, _ := newTestParticipantStore(api, nil)

	assert.Zero(t, s.CheckinRate())

	s.items = []models.Participant{
		{ID: 1, IsCheckedIn: true},
		{ID: 2, IsCheckedIn: true},
		{ID: 3, IsCheckedIn: true},
		{ID: 4},
		{ID: 5},
		{ID: 6},
		{ID: 7},
		{ID: 8},
		{ID: 9},
		{ID: 10},
	}
	assert.InDelta(t, 30.0, s.CheckinRate(), 1e-9)
}

func TestParticipantStore_OrganizationStats(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, _ := newTestParticipantStore(api, nil)
	s.items = []models.Participant{
		{ID: 1, Organization: "North", IsCheckedIn: true},
		{ID: 2, Organization: "North"},
		{ID: 3, Organization: "South", IsCheckedIn: true},
	}

	stats := s.OrganizationStats()
	require.Len(t, stats, 2)
	assert.Equal(t, "North", stats[0].Organization)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].CheckedIn)
	assert.InDelta(t, 50.0, stats[0].Rate, 1e-9)
	assert.Equal(t, "South", stats[1].Organization)
	assert.InDelta(t, 100.0, stats[1].Rate, 1e-9)
}

func TestParticipantStore_GroupStats(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, _ := newTestParticipantStore(api, nil)

	assert.Empty(t, s.GroupStats())

	s.items = []models.Participant{
		{ID: 1, GroupName: "Alpha", IsCheckedIn: true},
		{ID: 2, GroupName: "Alpha"},
		{ID: 3, GroupName: "Alpha", IsCheckedIn: true},
		{ID: 4, GroupName: "Beta"},
		{ID: 5, IsCheckedIn: true},
		{ID: 6},
	}

	stats := s.GroupStats()
	require.Len(t, stats, 3)

	assert.Equal(t, "Alpha", stats[0].Group)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, 2, stats[0].CheckedIn)
	assert.InDelta(t, 66.67, stats[0].Rate, 1e-9)

	assert.Equal(t, "Beta", stats[1].Group)
	assert.Zero(t, stats[1].CheckedIn)
	assert.Zero(t, stats[1].Rate)

	// Members without a group share one bucket.
	assert.Equal(t, "Ungrouped", stats[2].Group)
	assert.Equal(t, 2, stats[2].Total)
	assert.Equal(t, 1, stats[2].CheckedIn)
	assert.InDelta(t, 50.0, stats[2].Rate, 1e-9)
}

func TestParticipantStore_CheckInPatchesCache(t *testing.T) {
	api := &fakeParticipantAPI{}
	checkin := &fakeCheckinAPI{
		verifyFn: func(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error) {
			return &models.CheckinVerifyResponse{
				Success:     true,
				Participant: models.Participant{ID: 1, Name: "Alice", IsCheckedIn: true},
			}, nil
		},
	}
	s, n := newTestParticipantStore(api, checkin)
	s.items = []models.Participant{{ID: 1, Name: "Alice"}}

	resp, err := s.CheckIn(context.Background(), models.CheckinVerifyRequest{QRCodeID: "qr1"})
	require.NoError(t, err)
	assert.True(t, resp.Participant.IsCheckedIn)
	assert.True(t, s.Items()[0].IsCheckedIn)
	assert.Equal(t, 1, n.updates)
}

func TestParticipantStore_CheckInFailure(t *testing.T) {
	api := &fakeParticipantAPI{}
	checkin := &fakeCheckinAPI{
		verifyFn: func(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error) {
			return nil, errors.New("identity mismatch")
		},
	}
	s, n := newTestParticipantStore(api, checkin)
	s.items = []models.Participant{{ID: 1}}

	_, err := s.CheckIn(context.Background(), models.CheckinVerifyRequest{})
	require.Error(t, err)
	assert.False(t, s.Items()[0].IsCheckedIn)
	assert.Equal(t, []NotificationKind{NotificationError}, n.kinds())
}

func TestParticipantStore_SetQueryKeepsPaging(t *testing.T) {
	api := &fakeParticipantAPI{}
	s, _ := newTestParticipantStore(api, nil)

	s.SetQuery(models.ParticipantQuery{Organization: "North"})
	q := s.Query()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Size)
	assert.Equal(t, "North", q.Organization)
}
